package opt

import "sync"

// RunStats captures per-call diagnostics for the admin plan-stats endpoint.
type RunStats struct {
	Algorithm     string  `json:"algorithm"`
	Tasks         int     `json:"tasks"`
	Locations     int     `json:"locations"`
	TwoOptPasses  int     `json:"twoOptPasses"`
	CapHit        bool    `json:"capHit"`
	TotalDistance float64 `json:"totalDistance"`
	EstimatedMs   int64   `json:"estimatedMs"`
}

type statsKey struct {
	Tenant string
	Algo   string
}

var (
	statsMu    sync.Mutex
	statsStore = map[statsKey]RunStats{}
)

// RecordRun stores the latest run diagnostics for a tenant/algorithm pair.
func RecordRun(tenant string, s RunStats) {
	statsMu.Lock()
	statsStore[statsKey{Tenant: tenant, Algo: s.Algorithm}] = s
	statsMu.Unlock()
}

// GetRuns returns the latest diagnostics per algorithm for a tenant.
func GetRuns(tenant string) map[string]RunStats {
	statsMu.Lock()
	defer statsMu.Unlock()
	out := map[string]RunStats{}
	for k, v := range statsStore {
		if k.Tenant == tenant {
			out[k.Algo] = v
		}
	}
	return out
}
