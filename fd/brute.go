package fd

import (
	"sync"

	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/vertical"
)

var bruteFDPhases = []string{"generate candidates", "test dependencies"}

// NewBrute returns a brute-force FD discovery Primitive. For each
// right-hand column it tests left-hand candidates in increasing arity
// order, from 0 up to max_lhs, pruning any candidate whose LHS already
// has a known subset FD on the same RHS. Candidates within one arity
// level are tested over a worker pool sized by the threads option;
// results are collected and inserted into the FD Collection in a fixed,
// deterministic order so output never depends on goroutine scheduling.
//
// This is a reference discovery algorithm standing in for the heavier
// Tane/Pyro/HyFD family; its purpose here is to exercise fd.Base, the
// registry, and cross-algorithm fingerprint agreement.
func NewBrute() *Base {
	b := NewBase(bruteFDPhases, func(*Base) error { return nil }, runBrute)
	b.Options.Register(config.Option{
		Name:        config.NameMaxLhs,
		Description: "largest left-hand-side arity to test (-1 = numColumns-1)",
		Default:     -1,
		HasDefault:  true,
		Validate:    config.IntValidator,
	})
	b.Options.Register(config.Option{
		Name:        config.NameThreads,
		Description: "worker pool size for candidate testing",
		Default:     1,
		HasDefault:  true,
		Validate:    config.IntValidator,
	})
	b.Options.MakeAvailable(config.NameMaxLhs, config.NameThreads)
	return b
}

type bruteCandidate struct {
	lhs []int
	rhs int
}

func runBrute(base *Base) error {
	rel := base.Relation()
	n := rel.NumColumns()

	maxLHS, _ := base.Options.GetInt(config.NameMaxLhs)
	if maxLHS < 0 || maxLHS > n-1 {
		maxLHS = n - 1
	}
	threads, _ := base.Options.GetInt(config.NameThreads)
	if threads < 1 {
		threads = 1
	}
	equalNulls := base.EqualNulls()

	base.AdvancePhase() // generate candidates

	for arity := 0; arity <= maxLHS; arity++ {
		candidates := generateCandidates(base.Collection(), n, arity)

		results := make([]bool, len(candidates))
		var wg sync.WaitGroup
		sem := make(chan struct{}, threads)
		for i, cand := range candidates {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, cand bruteCandidate) {
				defer wg.Done()
				defer func() { <-sem }()
				results[i] = holds(rel, cand.lhs, cand.rhs, equalNulls)
			}(i, cand)
		}
		wg.Wait()

		for i, cand := range candidates {
			if !results[i] {
				continue
			}
			v, err := vertical.New(n, cand.lhs)
			if err != nil {
				return err
			}
			if err := base.Add(FD{LHS: v, RHS: cand.rhs}); err != nil {
				return err
			}
		}
	}

	base.AdvancePhase() // test dependencies
	return nil
}

// generateCandidates lists every (lhs, rhs) pair of the given arity not
// already implied by a known, more general FD on the same rhs.
func generateCandidates(known *Collection, n, arity int) []bruteCandidate {
	var out []bruteCandidate
	existing := known.All()
	for rhs := 0; rhs < n; rhs++ {
		others := make([]int, 0, n-1)
		for c := 0; c < n; c++ {
			if c != rhs {
				others = append(others, c)
			}
		}
		for _, lhsCols := range combinations(others, arity) {
			v, err := vertical.New(n, lhsCols)
			if err != nil {
				continue
			}
			redundant := false
			for _, e := range existing {
				if e.RHS == rhs && e.LHS.IsSubsetOf(v) {
					redundant = true
					break
				}
			}
			if !redundant {
				out = append(out, bruteCandidate{lhs: lhsCols, rhs: rhs})
			}
		}
	}
	return out
}
