package opt

import (
	"errors"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// ErrBadGeometry reports configuration that cannot support the requested
// computation (for example a non-positive walking speed). It surfaces at
// call time, not at config-update time: a bad field may never be exercised
// by a given call's algorithm path.
var ErrBadGeometry = errors.New("invalid warehouse geometry")

// ZoneSpec describes one zone band: the aisle numbers it spans and the
// anchor coordinate of its entry point.
type ZoneSpec struct {
	AisleFrom int     `json:"aisleFrom" yaml:"aisleFrom"`
	AisleTo   int     `json:"aisleTo" yaml:"aisleTo"`
	AnchorX   float64 `json:"anchorX" yaml:"anchorX"`
	AnchorY   float64 `json:"anchorY" yaml:"anchorY"`
}

// WarehouseConfig holds the geometry and timing constants the distance model
// reads. It is construct-once, read-many; replacement happens wholesale via
// Engine.SetConfig, never by mutating a shared instance.
type WarehouseConfig struct {
	AisleWidth            float64             `json:"aisleWidth" yaml:"aisleWidth"`   // spatial units between aisle centerlines
	ShelfDepth            float64             `json:"shelfDepth" yaml:"shelfDepth"`   // spatial units between shelf slots
	ShelfHeight           float64             `json:"shelfHeight" yaml:"shelfHeight"` // vertical spacing, used by Coordinates only
	WalkingSpeed          float64             `json:"walkingSpeed" yaml:"walkingSpeed"` // spatial units per second
	PickTimeSec           float64             `json:"pickTimeSec" yaml:"pickTimeSec"`   // fixed handling cost per stop
	ZoneTransitionPenalty float64             `json:"zoneTransitionPenalty" yaml:"zoneTransitionPenalty"`
	ZoneLayout            map[string]ZoneSpec `json:"zoneLayout,omitempty" yaml:"zoneLayout,omitempty"`
}

// DefaultConfig returns the stock geometry used when no file or tenant
// override is present.
func DefaultConfig() WarehouseConfig {
	return WarehouseConfig{
		AisleWidth:            3.0,
		ShelfDepth:            0.5,
		ShelfHeight:           0.4,
		WalkingSpeed:          1.4,
		PickTimeSec:           10,
		ZoneTransitionPenalty: 10,
		ZoneLayout: map[string]ZoneSpec{
			"A": {AisleFrom: 1, AisleTo: 10, AnchorX: 0, AnchorY: 0},
			"B": {AisleFrom: 11, AisleTo: 20, AnchorX: 0, AnchorY: 1},
			"C": {AisleFrom: 21, AisleTo: 30, AnchorX: 0, AnchorY: 2},
		},
	}
}

// ConfigPatch is a partial warehouse config. Nil fields are left unchanged.
// ZoneLayout replacement is whole-object: a patch carrying any zone layout
// replaces the existing map entirely rather than merging per zone.
type ConfigPatch struct {
	AisleWidth            *float64            `json:"aisleWidth,omitempty"`
	ShelfDepth            *float64            `json:"shelfDepth,omitempty"`
	ShelfHeight           *float64            `json:"shelfHeight,omitempty"`
	WalkingSpeed          *float64            `json:"walkingSpeed,omitempty"`
	PickTimeSec           *float64            `json:"pickTimeSec,omitempty"`
	ZoneTransitionPenalty *float64            `json:"zoneTransitionPenalty,omitempty"`
	ZoneLayout            map[string]ZoneSpec `json:"zoneLayout,omitempty"`
}

// Apply returns a copy of c with the patch's set fields overlaid
// (shallow merge of top-level fields only).
func (c WarehouseConfig) Apply(p ConfigPatch) WarehouseConfig {
	out := c
	if p.AisleWidth != nil {
		out.AisleWidth = *p.AisleWidth
	}
	if p.ShelfDepth != nil {
		out.ShelfDepth = *p.ShelfDepth
	}
	if p.ShelfHeight != nil {
		out.ShelfHeight = *p.ShelfHeight
	}
	if p.WalkingSpeed != nil {
		out.WalkingSpeed = *p.WalkingSpeed
	}
	if p.PickTimeSec != nil {
		out.PickTimeSec = *p.PickTimeSec
	}
	if p.ZoneTransitionPenalty != nil {
		out.ZoneTransitionPenalty = *p.ZoneTransitionPenalty
	}
	if p.ZoneLayout != nil {
		out.ZoneLayout = p.ZoneLayout
	}
	return out
}

// LoadConfigFile reads a YAML geometry file over the defaults. Fields absent
// from the file keep their default values.
func LoadConfigFile(path string) (WarehouseConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
