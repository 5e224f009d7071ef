package opt

import "math"

// nearestNeighborOrder greedily visits candidates by minimum matrix distance
// from the current position, starting at matrix index start. Ties break on
// the lower index, which keeps the construction deterministic. The early
// break on a missing candidate cannot fire on a complete matrix but guards
// against pathological inputs.
func nearestNeighborOrder(mat [][]float64, start int, candidates []int) []int {
	order := make([]int, 0, len(candidates))
	visited := make([]bool, len(mat))
	curr := start
	for len(order) < len(candidates) {
		bestIdx := -1
		bestDist := math.MaxFloat64
		for _, c := range candidates {
			if visited[c] {
				continue
			}
			if d := mat[curr][c]; d < bestDist {
				bestDist = d
				bestIdx = c
			}
		}
		if bestIdx < 0 {
			break
		}
		visited[bestIdx] = true
		order = append(order, bestIdx)
		curr = bestIdx
	}
	return order
}
