package api

import (
	"os"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// tenantLimiters throttles optimize calls per tenant. Tuned via RATE_RPS and
// RATE_BURST; zero RATE_RPS disables limiting.
type tenantLimiters struct {
	mu    sync.Mutex
	byTen map[string]*rate.Limiter
	rps   float64
	burst int
}

func newTenantLimiters() *tenantLimiters {
	rps := 50.0
	if v := os.Getenv("RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			rps = f
		}
	}
	burst := 100
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			burst = n
		}
	}
	return &tenantLimiters{byTen: map[string]*rate.Limiter{}, rps: rps, burst: burst}
}

// Allow reports whether the tenant may make a call now.
func (t *tenantLimiters) Allow(tenant string) bool {
	if t == nil || t.rps <= 0 {
		return true
	}
	t.mu.Lock()
	lim, ok := t.byTen[tenant]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(t.rps), t.burst)
		t.byTen[tenant] = lim
	}
	t.mu.Unlock()
	return lim.Allow()
}
