package metric

import (
	"errors"
	"time"

	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/distance"
	"github.com/katalvlaran/profila/points"
	"github.com/katalvlaran/profila/primitive"
	"github.com/katalvlaran/profila/relation"
	"github.com/katalvlaran/profila/vertical"
)

// ErrNotExecuted indicates Holds or Highlights was called before Execute.
var ErrNotExecuted = errors.New("metric: Execute has not run yet")

var verifierPhases = []string{"build clusters", "verify clusters"}

// Verifier is the Cluster Verifier Primitive: given an lhs_indices/
// rhs_indices pair, a metric, a verification algorithm and a parameter,
// it reports whether every LHS-equivalence cluster's RHS diameter stays
// within parameter, and produces a Highlight per failing cluster.
//
// lhs_indices and rhs_indices are only made available once Fit has run,
// since validating a column index requires a parsed relation to check
// it against; every other option is settable before Fit.
type Verifier struct {
	*primitive.Base

	executed   bool
	holds      bool
	highlights []Highlight
}

// NewVerifier constructs an unfitted Verifier with its option vocabulary
// registered but, for lhs_indices/rhs_indices, not yet available.
func NewVerifier() *Verifier {
	v := &Verifier{Base: primitive.NewBase(verifierPhases)}

	v.Options.Register(config.Option{
		Name:        config.NameMetric,
		Description: "distance family: euclidean, levenshtein, or cosine",
		Required:    true,
		Validate:    config.EnumValidator("euclidean", "levenshtein", "cosine"),
	})
	v.Options.Register(config.Option{
		Name:        config.NameMetricAlgorithm,
		Description: "verification strategy: brute, approx, or calipers",
		Default:     "brute",
		HasDefault:  true,
		Validate:    config.EnumValidator("brute", "approx", "calipers"),
	})
	v.Options.Register(config.Option{
		Name:        config.NameParameter,
		Description: "maximum allowed RHS diameter within a cluster",
		Required:    true,
		Validate:    config.FloatValidator,
	})
	v.Options.Register(config.Option{
		Name:        config.NameQ,
		Description: "q-gram length, used only by the cosine metric",
		Default:     2,
		HasDefault:  true,
		Validate:    config.IntValidator,
	})
	v.Options.Register(config.Option{
		Name:        config.NameDistFromNullIsInfinity,
		Description: "treat any null RHS value as infinitely distant from every other value",
		Default:     true,
		HasDefault:  true,
		Validate:    config.BoolValidator,
	})
	v.Options.Register(config.Option{
		Name:        config.NameEqualNulls,
		Description: "treat two NULLs in the same LHS column as equal when clustering",
		Default:     true,
		HasDefault:  true,
		Validate:    config.BoolValidator,
	})
	v.Options.MakeAvailable(
		config.NameMetric, config.NameMetricAlgorithm, config.NameParameter,
		config.NameQ, config.NameDistFromNullIsInfinity, config.NameEqualNulls,
	)

	v.Options.Register(config.Option{
		Name:        config.NameLhsIndices,
		Description: "left-hand-side column indices",
		Required:    true,
		Validate:    config.IntSliceValidator,
	})
	v.Options.Register(config.Option{
		Name:        config.NameRhsIndices,
		Description: "right-hand-side column indices",
		Required:    true,
		Validate:    config.IntSliceValidator,
	})

	return v
}

// Fit parses stream into the shared relation and unlocks lhs_indices and
// rhs_indices, which can now be validated against the relation's column
// count.
func (v *Verifier) Fit(stream relation.DatasetStream) error {
	if err := v.Base.BeginFit(stream); err != nil {
		return err
	}
	v.Options.MakeAvailable(config.NameLhsIndices, config.NameRhsIndices)
	return nil
}

// Execute builds LHS-equivalence clusters and verifies each one's RHS
// diameter, recording a Holds verdict and a Highlight per failing
// cluster.
func (v *Verifier) Execute() (time.Duration, error) {
	if err := v.Base.BeginExecute(); err != nil {
		return 0, err
	}

	rel := v.Relation()
	n := rel.NumColumns()

	for _, name := range []string{config.NameMetric, config.NameParameter, config.NameLhsIndices, config.NameRhsIndices} {
		if err := v.Options.RequireSet(name); err != nil {
			return 0, err
		}
	}

	lhsIdx, _ := v.Options.GetIntSlice(config.NameLhsIndices)
	rhsIdx, _ := v.Options.GetIntSlice(config.NameRhsIndices)
	lhs, err := vertical.New(n, lhsIdx)
	if err != nil {
		return 0, err
	}

	metricName, _ := v.Options.GetString(config.NameMetric)
	metric, err := distance.ParseMetric(metricName)
	if err != nil {
		return 0, err
	}
	algoName, _ := v.Options.GetString(config.NameMetricAlgorithm)
	algo, err := distance.ParseAlgo(algoName)
	if err != nil {
		return 0, err
	}
	parameter, _ := v.Options.GetFloat(config.NameParameter)
	q, _ := v.Options.GetInt(config.NameQ)
	distNullInf, _ := v.Options.GetBool(config.NameDistFromNullIsInfinity)
	equalNulls, _ := v.Options.GetBool(config.NameEqualNulls)

	if len(rhsIdx) == 0 {
		return 0, vertical.ErrColumnIndex
	}
	for _, idx := range rhsIdx {
		if idx < 0 || idx >= n {
			return 0, vertical.ErrColumnIndex
		}
		colType := rel.Typed[idx].Column.Type
		if err := distance.Validate(metric, algo, len(rhsIdx), colType, q); err != nil {
			return 0, err
		}
	}

	v.Base.AdvancePhase() // build clusters
	clusters := BuildClusters(rel, lhs, equalNulls)

	cfg := Config{
		Metric:                 metric,
		Algo:                   algo,
		Parameter:              parameter,
		Q:                      q,
		DistFromNullIsInfinity: distNullInf,
		RHSIndices:             rhsIdx,
	}
	qcache := points.NewQGramCache(q)

	v.Base.AdvancePhase() // verify clusters
	v.holds = true
	v.highlights = nil
	for _, c := range clusters {
		ok, hl := Verify(rel, c, cfg, qcache)
		if !ok {
			v.holds = false
			v.highlights = append(v.highlights, *hl)
		}
	}
	v.executed = true

	return v.Base.EndExecute(), nil
}

// ResetState clears the last verification result in addition to the
// phase cursor, preserving the fitted relation.
func (v *Verifier) ResetState() {
	v.Base.ResetState()
	v.executed = false
	v.holds = false
	v.highlights = nil
}

// Holds reports whether every cluster satisfied parameter in the most
// recent Execute.
func (v *Verifier) Holds() (bool, error) {
	if !v.executed {
		return false, ErrNotExecuted
	}
	return v.holds, nil
}

// Highlights returns the per-failing-cluster explanations from the most
// recent Execute, in cluster iteration order.
func (v *Verifier) Highlights() ([]Highlight, error) {
	if !v.executed {
		return nil, ErrNotExecuted
	}
	return append([]Highlight(nil), v.highlights...), nil
}
