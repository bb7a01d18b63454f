package metric

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/profila/relation"
	"github.com/katalvlaran/profila/vertical"
)

// Cluster is a set of row indices sharing a common LHS value.
type Cluster struct {
	ID   int
	Rows []int
}

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

func buildLHSKey(rel *relation.Relation, cols []int, row int, equalNulls bool) (key string, singleton bool) {
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

// BuildClusters partitions rel's rows into LHS equivalence classes:
// equivalence is governed by equalNulls; when false, any row with a
// null in lhs forms its own singleton cluster. Cluster and row order
// follow first appearance in rel, so output never depends on map
// iteration order.
func BuildClusters(rel *relation.Relation, lhs *vertical.Vertical, equalNulls bool) []Cluster {
	cols := lhs.ToSlice()
	firstSeen := make(map[string]int, rel.RowCount)
	var clusters []Cluster

	for row := 0; row < rel.RowCount; row++ {
		key, singleton := buildLHSKey(rel, cols, row, equalNulls)
		if singleton {
			clusters = append(clusters, Cluster{Rows: []int{row}})
			continue
		}
		idx, ok := firstSeen[key]
		if !ok {
			idx = len(clusters)
			firstSeen[key] = idx
			clusters = append(clusters, Cluster{})
		}
		clusters[idx].Rows = append(clusters[idx].Rows, row)
	}
	for i := range clusters {
		clusters[i].ID = i
	}
	return clusters
}
