// Package metric implements the Cluster Verifier and the Highlight
// Calculator: given an LHS Vertical and a set of RHS columns, it
// partitions a relation into LHS-equivalence clusters and checks that
// every cluster's RHS diameter, under the chosen metric, stays within
// parameter. Diameter search borrows its convex-hull and
// rotating-calipers shape from lvlath/tsp's Christofides pipeline, and
// cluster iteration follows lvlath/gridgraph's component-collection
// order so results never depend on map iteration order.
package metric

import (
	"math"

	"github.com/katalvlaran/profila/distance"
	"github.com/katalvlaran/profila/points"
	"github.com/katalvlaran/profila/relation"
)

// Config holds the parameters one Verify call needs to check a single
// cluster's RHS diameter.
type Config struct {
	Metric                 distance.Metric
	Algo                   distance.Algo
	Parameter              float64
	Q                      int
	DistFromNullIsInfinity bool
	RHSIndices             []int
}

// Verify checks one cluster's RHS diameter against cfg. A singleton
// cluster always holds. qcache is shared across clusters within one
// Execute call for cosine distance's q-gram memoization.
func Verify(rel *relation.Relation, cluster Cluster, cfg Config, qcache *points.QGramCache) (holds bool, hl *Highlight) {
	if len(cluster.Rows) < 2 {
		return true, nil
	}

	switch cfg.Metric {
	case distance.Euclidean:
		return verifyEuclidean(rel, cluster, cfg)
	case distance.Levenshtein:
		return verifyLevenshtein(rel, cluster, cfg)
	case distance.Cosine:
		return verifyCosine(rel, cluster, cfg, qcache)
	default:
		return true, nil
	}
}

func verifyEuclidean(rel *relation.Relation, cluster Cluster, cfg Config) (bool, *Highlight) {
	switch len(cfg.RHSIndices) {
	case 1:
		pts, hasNull := points.Numeric1D(rel, cfg.RHSIndices, cluster.Rows)
		if cfg.DistFromNullIsInfinity && hasNull {
			return false, nullHighlight(rel, cluster, cfg.RHSIndices)
		}
		var d float64
		var a, b int
		var ok bool
		switch cfg.Algo {
		case distance.Approx:
			d, a, b = approxVerify(pts, distance.Numeric1D)
			ok = d <= cfg.Parameter
		default:
			d, a, b = diameter1D(pts)
			ok = d <= cfg.Parameter
		}
		if ok {
			return true, nil
		}
		return false, newHighlight(cluster.ID, a, b, d)

	case 2:
		pts, hasNull := points.Numeric2D(rel, cfg.RHSIndices, cluster.Rows)
		if cfg.DistFromNullIsInfinity && hasNull {
			return false, nullHighlight(rel, cluster, cfg.RHSIndices)
		}
		var d float64
		var a, b int
		var holds bool
		switch cfg.Algo {
		case distance.Calipers:
			hull := convexHull(pts)
			d, a, b = rotatingCalipers(hull)
			holds = d <= cfg.Parameter
		case distance.Approx:
			d, a, b = approxVerify(pts, distance.Numeric2D)
			holds = d <= cfg.Parameter
		default:
			d, a, b, holds = bruteVerify(pts, distance.Numeric2D, cfg.Parameter)
		}
		if holds {
			return true, nil
		}
		return false, newHighlight(cluster.ID, a, b, d)

	default:
		pts, hasNull := points.NumericND(rel, cfg.RHSIndices, cluster.Rows)
		if cfg.DistFromNullIsInfinity && hasNull {
			return false, nullHighlight(rel, cluster, cfg.RHSIndices)
		}
		var d float64
		var a, b int
		var holds bool
		if cfg.Algo == distance.Approx {
			d, a, b = approxVerify(pts, distance.NumericND)
			holds = d <= cfg.Parameter
		} else {
			d, a, b, holds = bruteVerify(pts, distance.NumericND, cfg.Parameter)
		}
		if holds {
			return true, nil
		}
		return false, newHighlight(cluster.ID, a, b, d)
	}
}

func verifyLevenshtein(rel *relation.Relation, cluster Cluster, cfg Config) (bool, *Highlight) {
	pts, hasNull := points.Strings(rel, cfg.RHSIndices, cluster.Rows)
	if cfg.DistFromNullIsInfinity && hasNull {
		return false, nullHighlight(rel, cluster, cfg.RHSIndices)
	}
	var d float64
	var a, b int
	var holds bool
	if cfg.Algo == distance.Approx {
		d, a, b = approxVerify(pts, distance.Levenshtein)
		holds = d <= cfg.Parameter
	} else {
		d, a, b, holds = bruteVerify(pts, distance.Levenshtein, cfg.Parameter)
	}
	if holds {
		return true, nil
	}
	return false, newHighlight(cluster.ID, a, b, d)
}

func verifyCosine(rel *relation.Relation, cluster Cluster, cfg Config, qcache *points.QGramCache) (bool, *Highlight) {
	pts, hasNull := points.StringVectors(rel, cfg.RHSIndices, cluster.Rows, qcache)
	if cfg.DistFromNullIsInfinity && hasNull {
		return false, nullHighlight(rel, cluster, cfg.RHSIndices)
	}
	var d float64
	var a, b int
	var holds bool
	if cfg.Algo == distance.Approx {
		d, a, b = approxVerify(pts, distance.Cosine)
		holds = d <= cfg.Parameter
	} else {
		d, a, b, holds = bruteVerify(pts, distance.Cosine, cfg.Parameter)
	}
	if holds {
		return true, nil
	}
	return false, newHighlight(cluster.ID, a, b, d)
}

// nullHighlight builds the immediate-fail Highlight for a cluster
// containing a null RHS value under dist_from_null_is_infinity: a null
// makes every pairwise distance infinite.
func nullHighlight(rel *relation.Relation, cluster Cluster, rhs []int) *Highlight {
	var nullRow, otherRow int
	found := false
	for _, r := range cluster.Rows {
		isNull := false
		for _, c := range rhs {
			if rel.Typed[c].IsNull(r) {
				isNull = true
				break
			}
		}
		if isNull {
			nullRow = r
			found = true
			break
		}
	}
	if !found {
		nullRow = cluster.Rows[0]
	}
	otherRow = cluster.Rows[0]
	if otherRow == nullRow && len(cluster.Rows) > 1 {
		otherRow = cluster.Rows[1]
	}
	return newHighlight(cluster.ID, otherRow, nullRow, math.Inf(1))
}
