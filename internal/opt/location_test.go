package opt

import (
	"errors"
	"testing"
)

func TestParseLocation(t *testing.T) {
	l, err := ParseLocation("A-03-12L")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if l.Zone != "A" || l.Aisle != 3 || l.Shelf != 12 || l.Side != "L" {
		t.Fatalf("parsed wrong: %+v", l)
	}
	if l.Canonical() != "A-03-12" {
		t.Fatalf("canonical should keep padding and drop side, got %s", l.Canonical())
	}
}

func TestParseLocationDepot(t *testing.T) {
	l, err := ParseLocation("DEPOT")
	if err != nil {
		t.Fatalf("depot should parse: %v", err)
	}
	if !l.IsDepot() || l.Zone != "A" || l.Aisle != 0 || l.Shelf != 0 {
		t.Fatalf("depot mapped wrong: %+v", l)
	}
	if l.Canonical() != "DEPOT" {
		t.Fatalf("depot canonical should be the sentinel, got %s", l.Canonical())
	}
}

func TestParseLocationMalformed(t *testing.T) {
	for _, raw := range []string{"", "A-1", "AB-1-1", "a-1-1", "A-1-1X", "A--1", "A-1-1-1", "depot", "A-0-5"} {
		if _, err := ParseLocation(raw); !errors.Is(err, ErrMalformedLocation) {
			t.Fatalf("%q: want ErrMalformedLocation, got %v", raw, err)
		}
	}
}

func TestCanonicalReparse(t *testing.T) {
	l, err := ParseLocation("B-007-2R")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	l2, err := ParseLocation(l.Canonical())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if l2.Zone != l.Zone || l2.Aisle != l.Aisle || l2.Shelf != l.Shelf {
		t.Fatalf("reparse changed coordinates: %+v vs %+v", l, l2)
	}
	if l2.Canonical() != l.Canonical() {
		t.Fatalf("canonical not idempotent: %s vs %s", l.Canonical(), l2.Canonical())
	}
}

func TestZoneIndex(t *testing.T) {
	l, _ := ParseLocation("C-1-1")
	if l.ZoneIndex() != 2 {
		t.Fatalf("zone C should index 2, got %d", l.ZoneIndex())
	}
}

func TestCoordinates(t *testing.T) {
	cfg := DefaultConfig()
	l, _ := ParseLocation("B-2-5")
	x, y, z := l.Coordinates(cfg)
	if x != 2*cfg.AisleWidth || y != 1 || z != 5*cfg.ShelfHeight {
		t.Fatalf("coordinates wrong: %v %v %v", x, y, z)
	}
}
