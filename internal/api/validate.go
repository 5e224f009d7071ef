package api

import (
	"fmt"

	"pickroute/internal/model"
	"pickroute/internal/opt"
)

func validateOptimizeRequest(req *model.OptimizeRequest) error {
	if len(req.Tasks) > 10000 {
		return fmt.Errorf("too many tasks: %d (max 10000)", len(req.Tasks))
	}
	for i, t := range req.Tasks {
		if t.TaskID == "" {
			return fmt.Errorf("tasks[%d]: taskId required", i)
		}
		if t.BinLocation == "" {
			return fmt.Errorf("tasks[%d]: binLocation required", i)
		}
		if t.Quantity < 0 {
			return fmt.Errorf("tasks[%d]: quantity must be >= 0", i)
		}
		if t.Weight < 0 {
			return fmt.Errorf("tasks[%d]: weight must be >= 0", i)
		}
	}
	if req.Options != nil {
		if req.Options.Algorithm != "" {
			if _, ok := opt.ParseAlgorithm(req.Options.Algorithm); !ok {
				return fmt.Errorf("invalid algorithm: %s (allowed: tsp,nearest,aisle,zone)", req.Options.Algorithm)
			}
		}
		if req.Options.MaxIterations < 0 {
			return fmt.Errorf("maxIterations must be >= 0")
		}
	}
	return nil
}

func validateConfigPatch(p *opt.ConfigPatch) error {
	check := func(name string, v *float64) error {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be > 0", name)
		}
		return nil
	}
	if err := check("aisleWidth", p.AisleWidth); err != nil {
		return err
	}
	if err := check("shelfDepth", p.ShelfDepth); err != nil {
		return err
	}
	if err := check("shelfHeight", p.ShelfHeight); err != nil {
		return err
	}
	if p.PickTimeSec != nil && *p.PickTimeSec < 0 {
		return fmt.Errorf("pickTimeSec must be >= 0")
	}
	if p.ZoneTransitionPenalty != nil && *p.ZoneTransitionPenalty < 0 {
		return fmt.Errorf("zoneTransitionPenalty must be >= 0")
	}
	// Walking speed is accepted here even when non-positive; the optimizer
	// rejects it at call time if the value is actually exercised.
	for z, spec := range p.ZoneLayout {
		if spec.AisleFrom > spec.AisleTo {
			return fmt.Errorf("zoneLayout[%s]: aisleFrom > aisleTo", z)
		}
	}
	return nil
}
