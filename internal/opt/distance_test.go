package opt

import (
	"errors"
	"math"
	"testing"
	"time"
)

func mustParse(t *testing.T, raw string) BinLocation {
	t.Helper()
	l, err := ParseLocation(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return l
}

func TestDistanceManhattan(t *testing.T) {
	cfg := DefaultConfig()
	a := mustParse(t, "A-1-1")
	b := mustParse(t, "A-3-5")
	want := 2*cfg.AisleWidth + 4*cfg.ShelfDepth
	if d := Distance(a, b, cfg); d != want {
		t.Fatalf("want %v, got %v", want, d)
	}
}

func TestDistanceZonePenaltyOnce(t *testing.T) {
	cfg := DefaultConfig()
	a := mustParse(t, "A-1-1")
	// same aisle and shelf in a zone two letters away: pure penalty, once
	c := mustParse(t, "C-1-1")
	if d := Distance(a, c, cfg); d != cfg.ZoneTransitionPenalty {
		t.Fatalf("cross-zone pair should cost one penalty, got %v", d)
	}
}

func TestDistanceSymmetricZeroDiagonal(t *testing.T) {
	cfg := DefaultConfig()
	locs := []BinLocation{
		mustParse(t, "DEPOT"),
		mustParse(t, "A-1-1"),
		mustParse(t, "B-4-2"),
		mustParse(t, "C-9-7"),
	}
	mat := buildDistanceMatrix(locs, cfg)
	for i := range mat {
		if mat[i][i] != 0 {
			t.Fatalf("diagonal [%d][%d] not zero", i, i)
		}
		for j := range mat {
			if mat[i][j] != mat[j][i] {
				t.Fatalf("matrix not symmetric at %d,%d", i, j)
			}
		}
	}
}

func TestTravelTime(t *testing.T) {
	cfg := DefaultConfig()
	d, err := TravelTime(14.0, cfg)
	if err != nil {
		t.Fatalf("travel time failed: %v", err)
	}
	want := time.Duration(14.0 / cfg.WalkingSpeed * float64(time.Second))
	if math.Abs(float64(d-want)) > float64(time.Millisecond) {
		t.Fatalf("want ~%v, got %v", want, d)
	}
}

func TestTravelTimeBadSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WalkingSpeed = 0
	if _, err := TravelTime(1, cfg); !errors.Is(err, ErrBadGeometry) {
		t.Fatalf("want ErrBadGeometry, got %v", err)
	}
}
