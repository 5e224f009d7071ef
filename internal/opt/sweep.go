package opt

import "sort"

// aisleSweepOrder implements the S-shape traversal over distinct locations.
// Aisles are visited in order of absolute aisle-number distance from the
// entry aisle; within each aisle locations sort by shelf, walking away from
// the side the aisle is entered on. The entry side is whichever shelf end of
// the aisle sits nearer the current position (ties go low), so full sweeps
// through consecutive aisles alternate direction and the walk never
// backtracks inside an aisle.
// indices returned are matrix indices for locs (offset already applied by
// the caller via the idx slice).
func aisleSweepOrder(locs []BinLocation, idx []int, start BinLocation) []int {
	byAisle := map[int][]int{} // aisle number -> positions into locs/idx
	for i, l := range locs {
		byAisle[l.Aisle] = append(byAisle[l.Aisle], i)
	}
	aisles := make([]int, 0, len(byAisle))
	for a := range byAisle {
		aisles = append(aisles, a)
	}
	sort.Slice(aisles, func(i, j int) bool {
		di, dj := absInt(aisles[i]-start.Aisle), absInt(aisles[j]-start.Aisle)
		if di != dj {
			return di < dj
		}
		return aisles[i] < aisles[j]
	})

	order := make([]int, 0, len(locs))
	curShelf := start.Shelf
	for _, a := range aisles {
		ps := byAisle[a]
		lo, hi := locs[ps[0]].Shelf, locs[ps[0]].Shelf
		for _, p := range ps {
			if s := locs[p].Shelf; s < lo {
				lo = s
			} else if s > hi {
				hi = s
			}
		}
		ascending := curShelf-lo <= hi-curShelf
		sort.Slice(ps, func(i, j int) bool {
			if ascending {
				return locs[ps[i]].Shelf < locs[ps[j]].Shelf
			}
			return locs[ps[i]].Shelf > locs[ps[j]].Shelf
		})
		for _, p := range ps {
			order = append(order, idx[p])
		}
		curShelf = locs[ps[len(ps)-1]].Shelf
	}
	return order
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
