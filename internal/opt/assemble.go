package opt

import "time"

// assembleRoute maps a location-ordered tour back onto the original tasks.
// Every task at a visited bin is emitted at that bin's position in the tour,
// preserving input order among same-bin tasks, so the output is always a
// permutation of the input with duplicates intact. TotalDistance includes
// the closing leg back to the start; EstimatedTime is the sum of per-task
// times and does not.
func assembleRoute(cfg WarehouseConfig, tasks []Task, locs []BinLocation, groups [][]int,
	mat [][]float64, tour []int, algo Algorithm, passes int, capped bool) (Route, error) {

	start := locs[0]
	r := Route{
		Algorithm:    algo,
		TwoOptPasses: passes,
		CapHit:       capped,
		Tasks:        make([]RouteTask, 0, len(tasks)),
		Waypoints:    make([]Waypoint, 0, len(tour)+2),
	}
	sx, sy, sz := start.Coordinates(cfg)
	r.Waypoints = append(r.Waypoints, Waypoint{
		Location: start.Canonical(), Kind: WaypointStart, Sequence: 0, X: sx, Y: sy, Z: sz,
	})

	pick := time.Duration(cfg.PickTimeSec * float64(time.Second))
	prev := 0
	seq := 0
	for w, cur := range tour {
		leg := mat[prev][cur]
		legTime, err := TravelTime(leg, cfg)
		if err != nil {
			return Route{}, err
		}
		loc := locs[cur]
		x, y, z := loc.Coordinates(cfg)
		r.Waypoints = append(r.Waypoints, Waypoint{
			Location: loc.Canonical(), Kind: WaypointPickup, Sequence: w + 1, X: x, Y: y, Z: z,
		})
		for k, ti := range groups[cur-1] {
			seq++
			rt := RouteTask{
				Task:         tasks[ti],
				Sequence:     seq,
				FromLocation: locs[prev].Canonical(),
				ToLocation:   loc.Canonical(),
				Time:         pick,
			}
			if k == 0 {
				// only the first task at a shared bin carries the leg
				rt.Distance = leg
				rt.Time += legTime
			}
			r.TotalDistance += rt.Distance
			r.EstimatedTime += rt.Time
			r.Tasks = append(r.Tasks, rt)
		}
		prev = cur
	}
	r.TotalDistance += mat[prev][0]
	r.Waypoints = append(r.Waypoints, Waypoint{
		Location: start.Canonical(), Kind: WaypointEnd, Sequence: len(tour) + 1, X: sx, Y: sy, Z: sz,
	})
	return r, nil
}
