package opt

// Algorithm is the closed set of routing strategies.
type Algorithm int

const (
	// AlgoTSP builds a nearest-neighbor tour and improves it with 2-opt.
	AlgoTSP Algorithm = iota
	// AlgoNearest builds a nearest-neighbor tour with no improvement pass.
	AlgoNearest
	// AlgoAisle traverses aisles in an S-shape sweep.
	AlgoAisle
	// AlgoZone clusters by zone and runs nearest-neighbor within each.
	AlgoZone
)

func (a Algorithm) String() string {
	switch a {
	case AlgoTSP:
		return "tsp"
	case AlgoAisle:
		return "aisle"
	case AlgoZone:
		return "zone"
	default:
		return "nearest"
	}
}

// ParseAlgorithm maps a wire string to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "tsp":
		return AlgoTSP, true
	case "nearest":
		return AlgoNearest, true
	case "aisle":
		return AlgoAisle, true
	case "zone":
		return AlgoZone, true
	}
	return AlgoNearest, false
}

// Selection thresholds. Empirical tuning constants carried over from
// operational use; open tuning parameters, not derived values.
const (
	tspTaskLimit     = 10 // at or below this many tasks, exhaustive-ish TSP is cheap
	zoneSpreadLimit  = 2  // more distinct zones than this favors zone clustering
	aisleSpreadLimit = 3  // more distinct aisles than this favors the S-shape sweep
)

// SelectAlgorithm picks a strategy from task count and spatial spread.
// The check order is a fixed priority: zone spread dominates aisle spread
// because crossing zones costs more than crossing aisles.
func SelectAlgorithm(locs []BinLocation) Algorithm {
	if len(locs) <= tspTaskLimit {
		return AlgoTSP
	}
	zones := map[string]struct{}{}
	aisles := map[int]struct{}{}
	for _, l := range locs {
		zones[l.Zone] = struct{}{}
		aisles[l.Aisle] = struct{}{}
	}
	if len(zones) > zoneSpreadLimit {
		return AlgoZone
	}
	if len(aisles) > aisleSpreadLimit {
		return AlgoAisle
	}
	return AlgoNearest
}
