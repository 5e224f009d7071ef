package opt

import (
	"fmt"
	"math"
	"time"
)

// Distance returns the travel cost between two bins: Manhattan aisle/shelf
// movement plus a single zone-transition penalty when the zones differ.
// The penalty is charged exactly once per pair regardless of how far apart
// the zones are.
func Distance(a, b BinLocation, cfg WarehouseConfig) float64 {
	d := math.Abs(float64(a.Aisle-b.Aisle))*cfg.AisleWidth +
		math.Abs(float64(a.Shelf-b.Shelf))*cfg.ShelfDepth
	if a.Zone != b.Zone {
		d += cfg.ZoneTransitionPenalty
	}
	return d
}

// TravelTime converts a distance to walking time. Fails when the configured
// walking speed cannot support the computation.
func TravelTime(dist float64, cfg WarehouseConfig) (time.Duration, error) {
	if cfg.WalkingSpeed <= 0 {
		return 0, fmt.Errorf("%w: walkingSpeed must be > 0, got %v", ErrBadGeometry, cfg.WalkingSpeed)
	}
	return time.Duration(dist / cfg.WalkingSpeed * float64(time.Second)), nil
}

// buildDistanceMatrix computes the symmetric pairwise matrix over an ordered
// location list. The lower triangle mirrors the upper so symmetry is exact
// by construction, and the diagonal is zero.
func buildDistanceMatrix(locs []BinLocation, cfg WarehouseConfig) [][]float64 {
	n := len(locs)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(locs[i], locs[j], cfg)
			mat[i][j] = d
			mat[j][i] = d
		}
	}
	return mat
}
