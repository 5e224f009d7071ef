package opt

import "time"

// WaypointKind is the role of a waypoint on the assembled route.
type WaypointKind string

const (
	WaypointStart  WaypointKind = "start"
	WaypointPickup WaypointKind = "pickup"
	WaypointEnd    WaypointKind = "end"
)

// Waypoint is a point along the route with its role and projected
// coordinates.
type Waypoint struct {
	Location string
	Kind     WaypointKind
	Sequence int
	X, Y, Z  float64
}

// RouteTask is one input task annotated with its place on the route.
// Distance is the incremental leg into this task's bin; when several tasks
// share a bin only the first carries the leg, the rest carry zero.
type RouteTask struct {
	Task
	Sequence     int
	FromLocation string
	ToLocation   string
	Distance     float64
	Time         time.Duration // travel time for the leg plus fixed pick time
}

// Route is the optimizer output. Tasks always holds every input task exactly
// once; Waypoints holds one entry per visited bin plus the start and the
// return-to-start.
type Route struct {
	Tasks         []RouteTask
	Waypoints     []Waypoint
	TotalDistance float64
	EstimatedTime time.Duration
	Algorithm     Algorithm
	TwoOptPasses  int
	CapHit        bool // 2-opt pass cap reached; diagnostic, not a failure
}
