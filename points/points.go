// Package points implements the Points Calculator: it materializes a
// cluster's right-hand-side columns into the typed point representation
// the chosen metric operates over.
package points

import (
	"math"

	"github.com/katalvlaran/profila/relation"
)

// IndexedPoint pairs a row index with a value living in some metric
// space.
type IndexedPoint[T any] struct {
	Row   int
	Value T
}

// Numeric1D extracts one numeric RHS column's values for rows, in the
// order of rows. hasNull reports whether any row's value was null.
func Numeric1D(rel *relation.Relation, rhs []int, rows []int) (pts []IndexedPoint[float64], hasNull bool) {
	col := rel.Typed[rhs[0]]
	pts = make([]IndexedPoint[float64], 0, len(rows))
	for _, r := range rows {
		if col.IsNull(r) {
			hasNull = true
			continue
		}
		pts = append(pts, IndexedPoint[float64]{Row: r, Value: col.Float(r)})
	}
	return pts, hasNull
}

// Numeric2D pairs two numeric RHS columns into util.Point-style [2]float64 values.
func Numeric2D(rel *relation.Relation, rhs []int, rows []int) (pts []IndexedPoint[[2]float64], hasNull bool) {
	colX, colY := rel.Typed[rhs[0]], rel.Typed[rhs[1]]
	pts = make([]IndexedPoint[[2]float64], 0, len(rows))
	for _, r := range rows {
		if colX.IsNull(r) || colY.IsNull(r) {
			hasNull = true
			continue
		}
		pts = append(pts, IndexedPoint[[2]float64]{Row: r, Value: [2]float64{colX.Float(r), colY.Float(r)}})
	}
	return pts, hasNull
}

// NumericND vectors three-or-more numeric RHS columns.
func NumericND(rel *relation.Relation, rhs []int, rows []int) (pts []IndexedPoint[[]float64], hasNull bool) {
	cols := make([]*relation.TypedColumn, len(rhs))
	for i, idx := range rhs {
		cols[i] = rel.Typed[idx]
	}
	pts = make([]IndexedPoint[[]float64], 0, len(rows))
	for _, r := range rows {
		vec := make([]float64, len(cols))
		rowHasNull := false
		for i, c := range cols {
			if c.IsNull(r) {
				rowHasNull = true
				break
			}
			vec[i] = c.Float(r)
		}
		if rowHasNull {
			hasNull = true
			continue
		}
		pts = append(pts, IndexedPoint[[]float64]{Row: r, Value: vec})
	}
	return pts, hasNull
}

// Strings extracts one string RHS column's raw values, for Levenshtein.
func Strings(rel *relation.Relation, rhs []int, rows []int) (pts []IndexedPoint[string], hasNull bool) {
	col := rel.Typed[rhs[0]]
	pts = make([]IndexedPoint[string], 0, len(rows))
	for _, r := range rows {
		if col.IsNull(r) {
			hasNull = true
			continue
		}
		pts = append(pts, IndexedPoint[string]{Row: r, Value: col.String(r)})
	}
	return pts, hasNull
}

// QGramVector is a unit-normalized multiset of length-q substrings,
// keyed by q-gram, used as the point representation for cosine distance.
type QGramVector map[string]float64

// QGramCache builds and caches QGramVectors per distinct string, private
// to one Execute call.
type QGramCache struct {
	q     int
	cache map[string]QGramVector
}

// NewQGramCache returns a cache building length-q q-grams.
func NewQGramCache(q int) *QGramCache {
	return &QGramCache{q: q, cache: make(map[string]QGramVector)}
}

// Vector returns s's q-gram vector, building and caching it on first use.
func (c *QGramCache) Vector(s string) QGramVector {
	if v, ok := c.cache[s]; ok {
		return v
	}
	v := buildQGramVector(s, c.q)
	c.cache[s] = v
	return v
}

func buildQGramVector(s string, q int) QGramVector {
	counts := make(map[string]float64)
	runes := []rune(s)
	if len(runes) < q {
		counts[s]++
	} else {
		for i := 0; i+q <= len(runes); i++ {
			counts[string(runes[i:i+q])]++
		}
	}
	var sumSquares float64
	for _, c := range counts {
		sumSquares += c * c
	}
	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		return counts
	}
	out := make(QGramVector, len(counts))
	for k, c := range counts {
		out[k] = c / norm
	}
	return out
}

// StringVectors extracts one string RHS column's values as q-gram
// vectors drawn from cache.
func StringVectors(rel *relation.Relation, rhs []int, rows []int, cache *QGramCache) (pts []IndexedPoint[QGramVector], hasNull bool) {
	col := rel.Typed[rhs[0]]
	pts = make([]IndexedPoint[QGramVector], 0, len(rows))
	for _, r := range rows {
		if col.IsNull(r) {
			hasNull = true
			continue
		}
		pts = append(pts, IndexedPoint[QGramVector]{Row: r, Value: cache.Vector(col.String(r))})
	}
	return pts, hasNull
}
