package opt

import (
	"sort"
	"sync"
)

// Options tunes a single optimization call.
type Options struct {
	Algorithm     *Algorithm // nil selects automatically from task shape
	MaxIterations int        // 2-opt pass cap; 0 uses DefaultMaxPasses
}

// Engine holds the active warehouse config. Optimization itself is pure and
// call-local; the engine exists only so the config can be hot-swapped
// between calls. SetConfig replaces the value wholesale under a lock, so a
// swap happens-before any subsequent Optimize call; concurrent Optimize
// calls are independent and need no coordination among themselves.
type Engine struct {
	mu  sync.RWMutex
	cfg WarehouseConfig
}

func NewEngine(cfg WarehouseConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the active warehouse config.
func (e *Engine) Config() WarehouseConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// SetConfig replaces the active config wholesale.
func (e *Engine) SetConfig(cfg WarehouseConfig) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// Optimize computes a visiting order for the given tasks from startLocation
// (empty means the Depot sentinel) and assembles the sequenced, timed route.
// Any unparseable bin location aborts the whole call; no partial route is
// returned. An empty task list yields an empty route with just the start and
// return-to-start waypoints.
func (e *Engine) Optimize(tasks []Task, startLocation string, opts Options) (Route, error) {
	return OptimizeWithConfig(e.Config(), tasks, startLocation, opts)
}

// OptimizeWithConfig is Optimize against an explicit config snapshot. All
// working state (distance matrix, visited sets, candidate tours) is local
// to the call.
func OptimizeWithConfig(cfg WarehouseConfig, tasks []Task, startLocation string, opts Options) (Route, error) {
	if startLocation == "" {
		startLocation = Depot
	}
	start, err := ParseLocation(startLocation)
	if err != nil {
		return Route{}, err
	}

	parsed := make([]BinLocation, len(tasks))
	for i, t := range tasks {
		loc, err := ParseLocation(t.Location)
		if err != nil {
			return Route{}, err
		}
		parsed[i] = loc
	}

	algo := SelectAlgorithm(parsed)
	if opts.Algorithm != nil {
		algo = *opts.Algorithm
	}

	// Group tasks sharing a bin before the walk so duplicate bins never
	// produce duplicate matrix entries. First-seen order is kept.
	locs := []BinLocation{start}
	groups := [][]int{}
	seen := map[string]int{} // canonical -> matrix index
	for i, loc := range parsed {
		key := loc.Canonical()
		idx, ok := seen[key]
		if !ok {
			locs = append(locs, loc)
			groups = append(groups, nil)
			idx = len(locs) - 1
			seen[key] = idx
		}
		groups[idx-1] = append(groups[idx-1], i)
	}

	mat := buildDistanceMatrix(locs, cfg)

	candidates := make([]int, len(locs)-1)
	for i := range candidates {
		candidates[i] = i + 1
	}

	var tour []int
	passes := 0
	capped := false
	switch algo {
	case AlgoTSP:
		tour = nearestNeighborOrder(mat, 0, candidates)
		tour, passes, capped = improveTour2Opt(mat, 0, tour, opts.MaxIterations)
	case AlgoAisle:
		tour = aisleSweepOrder(locs[1:], candidates, start)
	case AlgoZone:
		tour = zoneClusterOrder(locs, mat, start)
	default:
		tour = nearestNeighborOrder(mat, 0, candidates)
	}

	return assembleRoute(cfg, tasks, locs, groups, mat, tour, algo, passes, capped)
}

// zoneClusterOrder partitions distinct bins by zone, visits zones in order
// of zone-index distance from the start's zone, and runs nearest-neighbor
// within each zone seeded from the previous zone's exit bin.
func zoneClusterOrder(locs []BinLocation, mat [][]float64, start BinLocation) []int {
	byZone := map[string][]int{}
	for i := 1; i < len(locs); i++ {
		byZone[locs[i].Zone] = append(byZone[locs[i].Zone], i)
	}
	zones := make([]string, 0, len(byZone))
	for z := range byZone {
		zones = append(zones, z)
	}
	startIdx := start.ZoneIndex()
	sort.Slice(zones, func(i, j int) bool {
		di := absInt(int(zones[i][0]-'A') - startIdx)
		dj := absInt(int(zones[j][0]-'A') - startIdx)
		if di != dj {
			return di < dj
		}
		return zones[i] < zones[j]
	})
	order := make([]int, 0, len(locs)-1)
	curr := 0
	for _, z := range zones {
		sub := nearestNeighborOrder(mat, curr, byZone[z])
		order = append(order, sub...)
		if len(sub) > 0 {
			curr = sub[len(sub)-1]
		}
	}
	return order
}
