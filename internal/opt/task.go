package opt

import "strings"

// Priority is the urgency of a pick task. It rides along for the caller's
// benefit; the optimizer orders by travel cost, not priority.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	default:
		return "NORMAL"
	}
}

// ParsePriority maps a wire string to a Priority. Unknown or empty input
// defaults to NORMAL.
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow
	case "HIGH":
		return PriorityHigh
	case "URGENT":
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// Task is an immutable pick request at one bin location. The optimizer never
// mutates tasks; it reorders and annotates copies.
type Task struct {
	ID       string
	OrderID  string
	SKU      string
	Quantity int
	Location string // raw bin identifier, parsed during optimization
	Priority Priority
	Weight   float64
}
