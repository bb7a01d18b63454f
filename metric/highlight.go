package metric

import "sort"

// Highlight explains why one cluster failed verification: the pair of
// rows whose distance exceeded parameter, and the distance itself.
// Passing clusters produce no Highlight.
type Highlight struct {
	ClusterID                   int
	DataIndex                   int
	FurthestDataIndex           int
	MaxDistance                 float64
	FurthestDataIndexForSorting int
}

// SortBy selects one of the six stable sort disciplines the Highlight
// Calculator supports.
type SortBy int

const (
	ByMaxDistanceAsc SortBy = iota
	ByMaxDistanceDesc
	ByFurthestIndexAsc
	ByFurthestIndexDesc
	ByDataIndexAsc
	ByDataIndexDesc
)

// Sort orders highlights in place according to by, stably.
func Sort(highlights []Highlight, by SortBy) {
	var less func(i, j int) bool
	switch by {
	case ByMaxDistanceAsc:
		less = func(i, j int) bool { return highlights[i].MaxDistance < highlights[j].MaxDistance }
	case ByMaxDistanceDesc:
		less = func(i, j int) bool { return highlights[i].MaxDistance > highlights[j].MaxDistance }
	case ByFurthestIndexAsc:
		less = func(i, j int) bool {
			return highlights[i].FurthestDataIndexForSorting < highlights[j].FurthestDataIndexForSorting
		}
	case ByFurthestIndexDesc:
		less = func(i, j int) bool {
			return highlights[i].FurthestDataIndexForSorting > highlights[j].FurthestDataIndexForSorting
		}
	case ByDataIndexAsc:
		less = func(i, j int) bool { return highlights[i].DataIndex < highlights[j].DataIndex }
	case ByDataIndexDesc:
		less = func(i, j int) bool { return highlights[i].DataIndex > highlights[j].DataIndex }
	default:
		return
	}
	sort.SliceStable(highlights, less)
}

func newHighlight(clusterID, a, b int, dist float64) *Highlight {
	return &Highlight{
		ClusterID:                   clusterID,
		DataIndex:                   a,
		FurthestDataIndex:           b,
		MaxDistance:                 dist,
		FurthestDataIndexForSorting: b,
	}
}
