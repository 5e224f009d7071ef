// Package opt implements the warehouse pick-route optimizer: bin-location
// parsing, the travel-distance model, tour construction heuristics, 2-opt
// local search, strategy selection, and route assembly.
package opt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Depot is the reserved start/end sentinel. It bypasses the bin grammar and
// maps to the warehouse reference corner (zone A, aisle 0, shelf 0).
const Depot = "DEPOT"

// ErrMalformedLocation reports a bin identifier that does not match the
// ZONE-AISLE-SHELF grammar. Multi-letter and non-alphabetic zones fall under
// the same error; they are unsupported input, not a coordinate of 0.
var ErrMalformedLocation = errors.New("malformed bin location")

var binLocationRe = regexp.MustCompile(`^([A-Z])-(\d+)-(\d+)([LR])?$`)

// BinLocation is the parsed form of a bin identifier such as "A-03-12L".
// The raw digit groups are retained so Canonical preserves zero padding.
type BinLocation struct {
	Zone  string
	Aisle int
	Shelf int
	Side  string // "L", "R", or empty

	depot    bool
	aisleRaw string
	shelfRaw string
}

// ParseLocation parses a raw bin identifier. The Depot sentinel is accepted
// without matching the grammar.
func ParseLocation(raw string) (BinLocation, error) {
	if raw == Depot {
		return BinLocation{Zone: "A", depot: true, aisleRaw: "0", shelfRaw: "0"}, nil
	}
	m := binLocationRe.FindStringSubmatch(raw)
	if m == nil {
		return BinLocation{}, fmt.Errorf("%w: %q", ErrMalformedLocation, raw)
	}
	aisle, err := strconv.Atoi(m[2])
	if err != nil {
		return BinLocation{}, fmt.Errorf("%w: %q: aisle: %v", ErrMalformedLocation, raw, err)
	}
	if aisle < 1 {
		return BinLocation{}, fmt.Errorf("%w: %q: aisle must be positive", ErrMalformedLocation, raw)
	}
	shelf, err := strconv.Atoi(m[3])
	if err != nil {
		return BinLocation{}, fmt.Errorf("%w: %q: shelf: %v", ErrMalformedLocation, raw, err)
	}
	return BinLocation{
		Zone:     m[1],
		Aisle:    aisle,
		Shelf:    shelf,
		Side:     m[4],
		aisleRaw: m[2],
		shelfRaw: m[3],
	}, nil
}

// Canonical returns the ZONE-AISLE-SHELF form with the input's zero padding
// intact. The side suffix is not part of the canonical form. Depot canonicalizes
// to the sentinel itself.
func (l BinLocation) Canonical() string {
	if l.depot {
		return Depot
	}
	return l.Zone + "-" + l.aisleRaw + "-" + l.shelfRaw
}

// IsDepot reports whether the location is the reserved start/end sentinel.
func (l BinLocation) IsDepot() bool { return l.depot }

// ZoneIndex maps the zone letter to its 0-based alphabetical index.
func (l BinLocation) ZoneIndex() int {
	if l.Zone == "" {
		return 0
	}
	return int(l.Zone[0] - 'A')
}

// Coordinates projects the location into warehouse space. Zones are modeled
// as parallel bands along Y indexed by zone letter; this is a known
// approximation, not a full floor map.
func (l BinLocation) Coordinates(cfg WarehouseConfig) (x, y, z float64) {
	x = float64(l.Aisle) * cfg.AisleWidth
	y = float64(l.ZoneIndex())
	z = float64(l.Shelf) * cfg.ShelfHeight
	return x, y, z
}
