package opt

import (
	"errors"
	"math"
	"testing"
)

func forced(a Algorithm) Options { return Options{Algorithm: &a} }

func taskAt(id, loc string) Task { return Task{ID: id, Location: loc} }

func TestOptimizeNearestScenario(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("t1", "A-1-1"),
		taskAt("t2", "A-1-2"),
		taskAt("t3", "A-2-1"),
	}
	r, err := e.Optimize(tasks, "DEPOT", forced(AlgoNearest))
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	// nearest from the depot walks A-1-1 (3.5), A-1-2 (0.5), A-2-1 (3.5),
	// return leg 6.5: total 14.0
	if math.Abs(r.TotalDistance-14.0) > 1e-9 {
		t.Fatalf("want total 14.0, got %v", r.TotalDistance)
	}
	wantOrder := []string{"t1", "t2", "t3"}
	for i, rt := range r.Tasks {
		if rt.ID != wantOrder[i] {
			t.Fatalf("visit order wrong at %d: %s", i, rt.ID)
		}
		if rt.Sequence != i+1 {
			t.Fatalf("sequence must be 1-based consecutive, got %d at %d", rt.Sequence, i)
		}
	}
	if r.Tasks[0].FromLocation != "DEPOT" || r.Tasks[0].ToLocation != "A-1-1" {
		t.Fatalf("first leg endpoints wrong: %s -> %s", r.Tasks[0].FromLocation, r.Tasks[0].ToLocation)
	}
	if len(r.Waypoints) != 5 {
		t.Fatalf("want start+3+end waypoints, got %d", len(r.Waypoints))
	}
	if r.Waypoints[0].Kind != WaypointStart || r.Waypoints[4].Kind != WaypointEnd {
		t.Fatalf("waypoint kinds wrong: %+v", r.Waypoints)
	}
	if r.Algorithm != AlgoNearest {
		t.Fatalf("algorithm label wrong: %s", r.Algorithm)
	}
}

func TestOptimizeTasksArePermutation(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("a", "C-9-3"), taskAt("b", "A-2-1"), taskAt("c", "B-12-8"),
		taskAt("d", "A-2-1"), taskAt("e", "B-3-4"),
	}
	for _, algo := range []Algorithm{AlgoTSP, AlgoNearest, AlgoAisle, AlgoZone} {
		r, err := e.Optimize(tasks, "", forced(algo))
		if err != nil {
			t.Fatalf("%s failed: %v", algo, err)
		}
		if len(r.Tasks) != len(tasks) {
			t.Fatalf("%s: want %d tasks, got %d", algo, len(tasks), len(r.Tasks))
		}
		seen := map[string]bool{}
		for _, rt := range r.Tasks {
			if seen[rt.ID] {
				t.Fatalf("%s: task %s emitted twice", algo, rt.ID)
			}
			seen[rt.ID] = true
		}
	}
}

func TestOptimizeDuplicateBins(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("t1", "A-1-1"),
		taskAt("t2", "A-1-1"),
		taskAt("t3", "A-1-2"),
	}
	r, err := e.Optimize(tasks, "DEPOT", forced(AlgoNearest))
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	// two distinct bins -> start + 2 pickups + end
	if len(r.Waypoints) != 4 {
		t.Fatalf("duplicate bin should not add a waypoint, got %d", len(r.Waypoints))
	}
	if r.Tasks[0].ID != "t1" || r.Tasks[1].ID != "t2" {
		t.Fatalf("same-bin tasks must keep input order: %s, %s", r.Tasks[0].ID, r.Tasks[1].ID)
	}
	if r.Tasks[0].Distance != 3.5 || r.Tasks[1].Distance != 0 {
		t.Fatalf("only first task at a bin carries the leg: %v, %v", r.Tasks[0].Distance, r.Tasks[1].Distance)
	}
	pick := 10.0 // DefaultConfig PickTimeSec
	if r.Tasks[1].Time.Seconds() != pick {
		t.Fatalf("second task at a bin should cost pick time only, got %v", r.Tasks[1].Time)
	}
	// 3.5 + 0.5 + return 4.0
	if math.Abs(r.TotalDistance-8.0) > 1e-9 {
		t.Fatalf("want total 8.0, got %v", r.TotalDistance)
	}
}

func TestOptimizeAisleSweep(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("t1", "A-1-3"),
		taskAt("t2", "A-1-1"),
		taskAt("t3", "A-2-5"),
		taskAt("t4", "A-2-2"),
	}
	r, err := e.Optimize(tasks, "DEPOT", forced(AlgoAisle))
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	// aisle 1 entered from shelf 0 (low side, ascending, exit at shelf 3);
	// aisle 2 entered from shelf 3, nearer its low shelf 2, ascending again
	want := []string{"t2", "t1", "t4", "t3"}
	for i, rt := range r.Tasks {
		if rt.ID != want[i] {
			t.Fatalf("sweep order wrong: want %v, got %s at %d", want, rt.ID, i)
		}
	}
}

func TestOptimizeAisleSweepHighSideEntry(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("t1", "A-1-3"),
		taskAt("t2", "A-1-1"),
		taskAt("t3", "A-2-5"),
		taskAt("t4", "A-2-2"),
	}
	r, err := e.Optimize(tasks, "A-1-9", forced(AlgoAisle))
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	// aisle 1 entered from shelf 9 (high side, descending, exit at shelf 1);
	// aisle 2 entered from shelf 1, nearer its low shelf 2, ascending
	want := []string{"t1", "t2", "t4", "t3"}
	for i, rt := range r.Tasks {
		if rt.ID != want[i] {
			t.Fatalf("sweep order wrong: want %v, got %s at %d", want, rt.ID, i)
		}
	}
}

func TestOptimizeZoneClustering(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("b1", "B-1-1"),
		taskAt("a1", "A-1-1"),
		taskAt("c1", "C-1-1"),
		taskAt("a2", "A-2-1"),
	}
	r, err := e.Optimize(tasks, "DEPOT", forced(AlgoZone))
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	// depot is zone A: both A bins come before B, B before C
	want := []string{"a1", "a2", "b1", "c1"}
	for i, rt := range r.Tasks {
		if rt.ID != want[i] {
			t.Fatalf("zone order wrong: want %v, got %s at %d", want, rt.ID, i)
		}
	}
}

func TestOptimizeMalformedLocationAborts(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{taskAt("ok", "A-1-1"), taskAt("bad", "A-1")}
	if _, err := e.Optimize(tasks, "", Options{}); !errors.Is(err, ErrMalformedLocation) {
		t.Fatalf("want ErrMalformedLocation, got %v", err)
	}
}

func TestOptimizeBadStartLocation(t *testing.T) {
	e := NewEngine(DefaultConfig())
	if _, err := e.Optimize(nil, "Z-1", Options{}); !errors.Is(err, ErrMalformedLocation) {
		t.Fatalf("want ErrMalformedLocation for bad start, got %v", err)
	}
}

func TestOptimizeBadWalkingSpeedSurfacesAtCallTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WalkingSpeed = 0
	e := NewEngine(cfg)
	if _, err := e.Optimize([]Task{taskAt("t1", "A-1-1")}, "", Options{}); !errors.Is(err, ErrBadGeometry) {
		t.Fatalf("want ErrBadGeometry, got %v", err)
	}
}

func TestOptimizeEmptyTasks(t *testing.T) {
	e := NewEngine(DefaultConfig())
	r, err := e.Optimize(nil, "", Options{})
	if err != nil {
		t.Fatalf("empty optimize failed: %v", err)
	}
	if len(r.Tasks) != 0 || r.TotalDistance != 0 || r.EstimatedTime != 0 {
		t.Fatalf("empty route should be zero-valued: %+v", r)
	}
	if len(r.Waypoints) != 2 || r.Waypoints[0].Sequence != 0 || r.Waypoints[1].Sequence != 1 {
		t.Fatalf("empty route keeps start/end waypoints: %+v", r.Waypoints)
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())
	tasks := []Task{
		taskAt("a", "A-5-2"), taskAt("b", "B-2-9"), taskAt("c", "A-1-4"),
		taskAt("d", "C-7-1"), taskAt("e", "B-2-2"),
	}
	r1, err := e.Optimize(tasks, "", Options{})
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	r2, err := e.Optimize(tasks, "", Options{})
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	if r1.TotalDistance != r2.TotalDistance {
		t.Fatalf("distance varies: %v vs %v", r1.TotalDistance, r2.TotalDistance)
	}
	for i := range r1.Tasks {
		if r1.Tasks[i].ID != r2.Tasks[i].ID {
			t.Fatalf("order varies at %d", i)
		}
	}
}

func TestEngineSetConfig(t *testing.T) {
	e := NewEngine(DefaultConfig())
	cfg := e.Config()
	cfg.ZoneTransitionPenalty = 100
	e.SetConfig(cfg)
	if e.Config().ZoneTransitionPenalty != 100 {
		t.Fatalf("config swap not visible")
	}
}
