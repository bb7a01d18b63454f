package fd

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/profila/relation"
)

// valueString renders one cell as a canonical string for grouping
// purposes. BigDecimal cells are widened to float64, trading precision
// for a simple, fast grouping key in this reference discovery algorithm.
func valueString(col *relation.TypedColumn, row int) string {
	switch col.Column.Type {
	case relation.String:
		return col.String(row)
	case relation.Integer, relation.Double, relation.BigDecimal:
		return strconv.FormatFloat(col.Float(row), 'g', -1, 64)
	default:
		return ""
	}
}

// buildKey renders row's projection onto cols as a grouping key. When
// equalNulls is false and any projected cell is null, unique is true:
// such a row can only equal itself and must form its own singleton
// group.
func buildKey(rel *relation.Relation, cols []int, row int, equalNulls bool) (key string, unique bool) {
	var sb strings.Builder
	for _, c := range cols {
		col := rel.Typed[c]
		if col.IsNull(row) {
			if !equalNulls {
				return "", true
			}
			sb.WriteString("\x00null\x00")
			sb.WriteByte(0x1f)
			continue
		}
		sb.WriteString(valueString(col, row))
		sb.WriteByte(0x1f)
	}
	return sb.String(), false
}

// rhsConstant reports whether rhs takes one consistent value across rows,
// honoring equalNulls for null-vs-null comparisons.
func rhsConstant(rel *relation.Relation, rhs int, rows []int, equalNulls bool) bool {
	col := rel.Typed[rhs]
	ref := rows[0]
	refNull := col.IsNull(ref)
	refVal := ""
	if !refNull {
		refVal = valueString(col, ref)
	}
	for _, r := range rows {
		rNull := col.IsNull(r)
		if rNull || refNull {
			if !(rNull && refNull && equalNulls) {
				return false
			}
			continue
		}
		if valueString(col, r) != refVal {
			return false
		}
	}
	return true
}

// holds reports whether lhs -> rhs is a functional dependency on rel:
// every maximal group of rows that agree on lhs must also agree on rhs.
// Rows forming their own singleton group (per buildKey's null policy)
// trivially satisfy the dependency.
func holds(rel *relation.Relation, lhs []int, rhs int, equalNulls bool) bool {
	groups := make(map[string][]int)
	for row := 0; row < rel.RowCount; row++ {
		key, unique := buildKey(rel, lhs, row, equalNulls)
		if unique {
			continue
		}
		groups[key] = append(groups[key], row)
	}
	for _, rows := range groups {
		if len(rows) < 2 {
			continue
		}
		if !rhsConstant(rel, rhs, rows, equalNulls) {
			return false
		}
	}
	return true
}

// combinations returns every size-k subset of items, preserving items'
// order within each subset, in lexicographic generation order.
func combinations(items []int, k int) [][]int {
	if k == 0 {
		return [][]int{{}}
	}
	if k > len(items) {
		return nil
	}
	var out [][]int
	var rec func(start int, chosen []int)
	rec = func(start int, chosen []int) {
		if len(chosen) == k {
			out = append(out, append([]int(nil), chosen...))
			return
		}
		for i := start; i <= len(items)-(k-len(chosen)); i++ {
			rec(i+1, append(chosen, items[i]))
		}
	}
	rec(0, nil)
	return out
}
