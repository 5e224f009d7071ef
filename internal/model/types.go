package model

// Wire-level types for the pick-route API.

type PickTaskIn struct {
	TaskID      string  `json:"taskId"`
	OrderID     string  `json:"orderId,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	BinLocation string  `json:"binLocation"`
	Priority    string  `json:"priority,omitempty"` // LOW, NORMAL, HIGH, URGENT
	Weight      float64 `json:"weight,omitempty"`
}

type OptimizeOptions struct {
	Algorithm     string `json:"algorithm,omitempty"` // tsp, nearest, aisle, zone
	MaxIterations int    `json:"maxIterations,omitempty"`
}

type OptimizeRequest struct {
	TenantID      string           `json:"tenantId,omitempty"`
	Tasks         []PickTaskIn     `json:"tasks"`
	StartLocation string           `json:"startLocation,omitempty"` // defaults to DEPOT
	Options       *OptimizeOptions `json:"options,omitempty"`
}

type OptimizedPickTask struct {
	TaskID          string  `json:"taskId"`
	OrderID         string  `json:"orderId,omitempty"`
	SKU             string  `json:"sku,omitempty"`
	Quantity        int     `json:"quantity,omitempty"`
	BinLocation     string  `json:"binLocation"`
	Priority        string  `json:"priority"`
	Weight          float64 `json:"weight,omitempty"`
	Sequence        int     `json:"sequence"`
	FromLocation    string  `json:"fromLocation"`
	ToLocation      string  `json:"toLocation"`
	Distance        float64 `json:"distance"`
	EstimatedTimeMs int64   `json:"estimatedTimeMs"`
}

type Waypoint struct {
	Location string  `json:"location"`
	Type     string  `json:"type"` // start, pickup, end
	Sequence int     `json:"sequence"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
}

type OptimizedRoute struct {
	ID              string              `json:"id,omitempty"`
	TenantID        string              `json:"tenantId,omitempty"`
	StartLocation   string              `json:"startLocation"`
	Tasks           []OptimizedPickTask `json:"tasks"`
	Waypoints       []Waypoint          `json:"waypoints"`
	TotalDistance   float64             `json:"totalDistance"`
	EstimatedTimeMs int64               `json:"estimatedTimeMs"`
	Algorithm       string              `json:"algorithm"`
	IterationCapHit bool                `json:"iterationCapHit,omitempty"`
	CreatedAt       string              `json:"createdAt,omitempty"`
}

// Webhook subscriptions

type SubscriptionRequest struct {
	TenantID string   `json:"tenantId"`
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	Secret   string   `json:"secret"`
}

type Subscription struct {
	ID       string   `json:"id"`
	TenantID string   `json:"tenantId"`
	URL      string   `json:"url"`
	Events   []string `json:"events"`
	Secret   string   `json:"secret,omitempty"`
}
