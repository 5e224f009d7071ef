package opt

// DefaultMaxPasses caps 2-opt improvement passes. A safety bound against
// pathological inputs, overridable per call.
const DefaultMaxPasses = 1000

const improveEps = 1e-9

// improveTour2Opt runs 2-opt local search over a closed tour
// [start, order..., start]. Every interior pair (i, j) is tried; a segment
// reversal is kept only when it strictly shortens the tour, recomputed via
// pairwise sums over the matrix. The loop ends when a full pass yields no
// improving move or the pass cap is hit, whichever comes first. No
// randomization: the result is deterministic for a given initial tour.
// Returns the improved order, the number of passes run, and whether the cap
// cut the search short.
func improveTour2Opt(mat [][]float64, start int, order []int, maxPasses int) ([]int, int, bool) {
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	best := append([]int(nil), order...)
	bestDist := closedTourDistance(mat, start, best)
	passes := 0
	capped := false
	for {
		if passes >= maxPasses {
			capped = true
			break
		}
		passes++
		improved := false
		for i := 0; i < len(best)-1; i++ {
			for j := i + 1; j < len(best); j++ {
				cand := reverseSegment(best, i, j)
				if d := closedTourDistance(mat, start, cand); d+improveEps < bestDist {
					best = cand
					bestDist = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best, passes, capped
}

// reverseSegment returns a copy of ord with ord[i..j] reversed.
func reverseSegment(ord []int, i, j int) []int {
	out := make([]int, len(ord))
	copy(out, ord[:i])
	pos := i
	for k := j; k >= i; k-- {
		out[pos] = ord[k]
		pos++
	}
	copy(out[pos:], ord[j+1:])
	return out
}

// closedTourDistance sums start -> order[0] -> ... -> order[n-1] -> start.
func closedTourDistance(mat [][]float64, start int, order []int) float64 {
	if len(order) == 0 {
		return 0
	}
	total := mat[start][order[0]]
	for i := 0; i < len(order)-1; i++ {
		total += mat[order[i]][order[i+1]]
	}
	total += mat[order[len(order)-1]][start]
	return total
}
