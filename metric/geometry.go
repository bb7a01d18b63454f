package metric

import (
	"math"
	"sort"

	"github.com/katalvlaran/profila/points"
)

// diameter1D finds the two rows farthest apart on the real line by
// sorting once; the extremes are always the min and max.
func diameter1D(pts []points.IndexedPoint[float64]) (dist float64, a, b int) {
	if len(pts) == 0 {
		return 0, 0, 0
	}
	if len(pts) == 1 {
		return 0, pts[0].Row, pts[0].Row
	}
	sorted := append([]points.IndexedPoint[float64](nil), pts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	lo, hi := sorted[0], sorted[len(sorted)-1]
	return hi.Value - lo.Value, lo.Row, hi.Row
}

// bruteVerify tests every pair of points under dist. On success it
// returns the true diameter pair; on failure it returns the first pair
// encountered whose distance exceeds parameter — a failing cluster's
// Highlight need not carry the globally farthest pair.
func bruteVerify[T any](pts []points.IndexedPoint[T], dist func(a, b T) float64, parameter float64) (diameter float64, a, b int, holds bool) {
	if len(pts) == 0 {
		return 0, 0, 0, true
	}
	holds = true
	maxA, maxB := pts[0].Row, pts[0].Row
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			d := dist(pts[i].Value, pts[j].Value)
			if d > diameter {
				diameter = d
				maxA, maxB = pts[i].Row, pts[j].Row
			}
			if d > parameter {
				return d, pts[i].Row, pts[j].Row, false
			}
		}
	}
	return diameter, maxA, maxB, holds
}

// approxVerify estimates a farthest pair with a 2-approximation: start
// from an arbitrary point, repeatedly jump to the farthest point from
// the current one, and stop once no jump improves on the best pair
// found (see DESIGN.md for the accuracy/determinism tradeoff).
func approxVerify[T any](pts []points.IndexedPoint[T], dist func(a, b T) float64) (diameter float64, a, b int) {
	if len(pts) == 0 {
		return 0, 0, 0
	}
	if len(pts) == 1 {
		return 0, pts[0].Row, pts[0].Row
	}
	cur := 0
	bestA, bestB := pts[0].Row, pts[0].Row
	var best float64
	for {
		farIdx, farDist := cur, 0.0
		for i := range pts {
			if i == cur {
				continue
			}
			d := dist(pts[cur].Value, pts[i].Value)
			if d > farDist {
				farDist = d
				farIdx = i
			}
		}
		if farDist <= best {
			break
		}
		best = farDist
		bestA, bestB = pts[cur].Row, pts[farIdx].Row
		if farIdx == cur {
			break
		}
		cur = farIdx
	}
	return best, bestA, bestB
}

// convexHull returns pts' convex hull via the monotone chain algorithm,
// ordered counter-clockwise starting from the lexicographically least
// point, so that rotatingCalipers sees a deterministic vertex order
// regardless of input order.
func convexHull(pts []points.IndexedPoint[[2]float64]) []points.IndexedPoint[[2]float64] {
	n := len(pts)
	if n < 3 {
		return append([]points.IndexedPoint[[2]float64](nil), pts...)
	}
	sorted := append([]points.IndexedPoint[[2]float64](nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value[0] != sorted[j].Value[0] {
			return sorted[i].Value[0] < sorted[j].Value[0]
		}
		return sorted[i].Value[1] < sorted[j].Value[1]
	})

	cross := func(o, a, b [2]float64) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	hull := make([]points.IndexedPoint[[2]float64], 0, 2*n)
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2].Value, hull[len(hull)-1].Value, p.Value) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2].Value, hull[len(hull)-1].Value, p.Value) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

func triangleArea2(o, a, b [2]float64) float64 {
	return math.Abs((a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0]))
}

func dist2D(a, b [2]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// rotatingCalipers finds the exact diameter of a convex polygon given in
// counter-clockwise order, in O(hull size).
func rotatingCalipers(hull []points.IndexedPoint[[2]float64]) (dist float64, a, b int) {
	n := len(hull)
	if n == 0 {
		return 0, 0, 0
	}
	if n == 1 {
		return 0, hull[0].Row, hull[0].Row
	}
	if n == 2 {
		return dist2D(hull[0].Value, hull[1].Value), hull[0].Row, hull[1].Row
	}

	k := 1
	var maxDist float64
	var maxA, maxB int
	consider := func(i, j int) {
		d := dist2D(hull[i].Value, hull[j].Value)
		if d > maxDist {
			maxDist = d
			maxA, maxB = hull[i].Row, hull[j].Row
		}
	}
	for i := 0; i < n; i++ {
		ni := (i + 1) % n
		for triangleArea2(hull[i].Value, hull[ni].Value, hull[(k+1)%n].Value) > triangleArea2(hull[i].Value, hull[ni].Value, hull[k].Value) {
			k = (k + 1) % n
		}
		consider(i, k)
		consider(ni, k)
	}
	return maxDist, maxA, maxB
}
