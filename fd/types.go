// Package fd implements the Functional Dependency data model: the FD
// pair type, a minimal-set Collection with canonical JSON emission and
// Fletcher-16 fingerprinting, key discovery, and the FD Algorithm Base
// that concrete discovery algorithms embed.
package fd

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/katalvlaran/profila/fletcher16"
	"github.com/katalvlaran/profila/vertical"
)

// ErrRhsInLhs indicates a caller tried to add an FD whose RHS is also a
// member of its own LHS: RHS must never appear in LHS.
var ErrRhsInLhs = errors.New("fd: rhs is a member of lhs")

// FD is a functional dependency LHS → RHS over one relation.
type FD struct {
	LHS *vertical.Vertical
	RHS int
}

// Collection holds a set of minimal FDs: no two members share an RHS
// where one's LHS is a strict superset of the other's.
type Collection struct {
	items []FD
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Len reports the number of FDs currently held.
func (c *Collection) Len() int {
	return len(c.items)
}

// All returns the current FDs in undefined order; callers that need a
// stable order should use JSON or iterate GetKeys/sorted copies.
func (c *Collection) All() []FD {
	return append([]FD(nil), c.items...)
}

// Add inserts candidate, maintaining minimality: any existing FD with
// the same RHS whose LHS is a strict superset of candidate's LHS is
// dropped; candidate itself is not inserted if some existing FD with
// the same RHS has a LHS that is a subset of (or equal to) candidate's.
func (c *Collection) Add(candidate FD) error {
	if candidate.LHS.Contains(candidate.RHS) {
		return ErrRhsInLhs
	}

	dominated := false
	kept := c.items[:0:0]
	for _, existing := range c.items {
		if existing.RHS == candidate.RHS {
			if existing.LHS.IsSubsetOf(candidate.LHS) {
				// existing is as general or more general: candidate adds nothing.
				dominated = true
			}
			if candidate.LHS.IsSubsetOf(existing.LHS) && !candidate.LHS.Equals(existing.LHS) {
				// candidate is strictly more general: existing is no longer minimal.
				continue
			}
		}
		kept = append(kept, existing)
	}
	c.items = kept
	if !dominated {
		c.items = append(c.items, candidate)
	}
	return nil
}

// jsonFD is the canonical wire shape for one FD.
type jsonFD struct {
	LHS []int `json:"lhs"`
	RHS int   `json:"rhs"`
}

// sortedCopy returns items sorted lexicographically on (rhs, lhs-tuple),
// the canonical order needed for fingerprint stability.
func (c *Collection) sortedCopy() []FD {
	items := append([]FD(nil), c.items...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].RHS != items[j].RHS {
			return items[i].RHS < items[j].RHS
		}
		li, lj := items[i].LHS.ToSlice(), items[j].LHS.ToSlice()
		for k := 0; k < len(li) && k < len(lj); k++ {
			if li[k] != lj[k] {
				return li[k] < lj[k]
			}
		}
		return len(li) < len(lj)
	})
	return items
}

// JSON renders the Collection as the canonical encoding: an array of
// {"lhs": [...], "rhs": n} objects, LHS ascending, entries ordered
// lexicographically on (rhs, lhs-tuple).
func (c *Collection) JSON() (string, error) {
	items := c.sortedCopy()
	out := make([]jsonFD, len(items))
	for i, f := range items {
		out[i] = jsonFD{LHS: f.LHS.ToSlice(), RHS: f.RHS}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Fletcher16 returns the Fletcher-16 checksum of the canonical JSON
// encoding, usable to compare two independent FD-discovery
// implementations run on the same dataset.
func (c *Collection) Fletcher16() (uint16, error) {
	j, err := c.JSON()
	if err != nil {
		return 0, err
	}
	return fletcher16.Sum([]byte(j)), nil
}

// GetKeys returns the columns that are keys of the relation: column A is
// a key iff {A}→B holds for every other column B. A is reported as a key
// when the number of minimal FDs {A}→· plus the number of constant
// columns (∅→B) equals numColumns-1.
func (c *Collection) GetKeys(numColumns int) []int {
	countPerCol := make(map[int]int)
	constants := 0
	for _, f := range c.items {
		switch f.LHS.Arity() {
		case 0:
			constants++
		case 1:
			col := f.LHS.ToSlice()[0]
			countPerCol[col]++
		}
	}
	var keys []int
	for col, n := range countPerCol {
		if n+1+constants == numColumns {
			keys = append(keys, col)
		}
	}
	sort.Ints(keys)
	return keys
}
