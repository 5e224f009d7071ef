package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pickroute/internal/model"
	"pickroute/internal/opt"
)

// Memory is a simple in-memory store used when no DATABASE_URL is set.
type Memory struct {
	mu       sync.Mutex
	routes   map[string]model.OptimizedRoute // id -> route
	byTen    map[string][]string             // tenant -> route ids, insertion order
	cfg      map[string]opt.ConfigPatch      // tenant -> saved config patch
	subs     map[string][]model.Subscription // tenant -> subscriptions
	delivs   map[string]*memDelivery         // id -> delivery state
	delivIDs []string                        // insertion order for due scans
}

func NewMemory() *Memory {
	return &Memory{
		routes: map[string]model.OptimizedRoute{},
		byTen:  map[string][]string{},
		cfg:    map[string]opt.ConfigPatch{},
		subs:   map[string][]model.Subscription{},
		delivs: map[string]*memDelivery{},
	}
}

// memDelivery augments WebhookDelivery with scheduling state.
type memDelivery struct {
	WebhookDelivery
	NextAttemptAt time.Time
	LastError     string
	ResponseCode  int
	LatencyMs     int
}

func (m *Memory) SaveRoute(ctx context.Context, tenantID string, route model.OptimizedRoute) (model.OptimizedRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	route.ID = uuid.New().String()
	route.TenantID = tenantID
	route.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	m.routes[route.ID] = route
	m.byTen[tenantID] = append(m.byTen[tenantID], route.ID)
	return route, nil
}

func (m *Memory) GetRoute(ctx context.Context, tenantID, routeID string) (model.OptimizedRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.routes[routeID]
	if !ok || r.TenantID != tenantID {
		return model.OptimizedRoute{}, ErrNotFound
	}
	return r, nil
}

func (m *Memory) ListRoutes(ctx context.Context, tenantID, cursor string, limit int) ([]model.OptimizedRoute, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.byTen[tenantID]
	start := 0
	if cursor != "" {
		for i, id := range ids {
			if id == cursor {
				start = i + 1
				break
			}
		}
	}
	if limit <= 0 {
		limit = 100
	}
	out := []model.OptimizedRoute{}
	var next string
	for i := start; i < len(ids) && len(out) < limit; i++ {
		out = append(out, m.routes[ids[i]])
		next = ids[i]
	}
	if start+len(out) >= len(ids) {
		next = ""
	}
	return out, next, nil
}

func (m *Memory) GetWarehouseConfig(ctx context.Context, tenantID string) (*opt.ConfigPatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.cfg[tenantID]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (m *Memory) SaveWarehouseConfig(ctx context.Context, tenantID string, patch opt.ConfigPatch) error {
	m.mu.Lock()
	m.cfg[tenantID] = patch
	m.mu.Unlock()
	return nil
}

func (m *Memory) CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := model.Subscription{ID: uuid.New().String(), TenantID: req.TenantID, URL: req.URL, Events: req.Events, Secret: req.Secret}
	m.subs[req.TenantID] = append(m.subs[req.TenantID], s)
	return s, nil
}

func (m *Memory) GetSubscriptionsForEvent(ctx context.Context, tenantID, eventType string) ([]model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Subscription
	for _, s := range m.subs[tenantID] {
		for _, e := range s.Events {
			if e == eventType {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (m *Memory) ListSubscriptions(ctx context.Context, tenantID, cursor string, limit int) ([]model.Subscription, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subs[tenantID]
	start := 0
	if cursor != "" {
		for i, s := range subs {
			if s.ID == cursor {
				start = i + 1
				break
			}
		}
	}
	if limit <= 0 {
		limit = 100
	}
	out := []model.Subscription{}
	var next string
	for i := start; i < len(subs) && len(out) < limit; i++ {
		out = append(out, subs[i])
		next = subs[i].ID
	}
	if start+len(out) >= len(subs) {
		next = ""
	}
	return out, next, nil
}

func (m *Memory) DeleteSubscription(ctx context.Context, tenantID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	subs := m.subs[tenantID]
	for i, s := range subs {
		if s.ID == id {
			m.subs[tenantID] = append(subs[:i], subs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) EnqueueWebhook(ctx context.Context, tenantID, subscriptionID, eventType, url, secret string, payload []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.delivs[id] = &memDelivery{
		WebhookDelivery: WebhookDelivery{
			ID: id, TenantID: tenantID, SubscriptionID: subscriptionID,
			EventType: eventType, URL: url, Secret: secret, Payload: payload,
			Status: "pending",
		},
		NextAttemptAt: time.Now(),
	}
	m.delivIDs = append(m.delivIDs, id)
	return id, nil
}

func (m *Memory) FetchDueWebhookDeliveries(ctx context.Context, limit int) ([]WebhookDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	out := []WebhookDelivery{}
	for _, id := range m.delivIDs {
		d := m.delivs[id]
		if d.Status != "pending" || d.NextAttemptAt.After(now) {
			continue
		}
		out = append(out, d.WebhookDelivery)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) MarkWebhookDelivery(ctx context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.delivs[id]
	if !ok {
		return ErrNotFound
	}
	d.Attempts++
	d.LastError = lastError
	d.ResponseCode = responseCode
	d.LatencyMs = latencyMs
	if success {
		d.Status = "delivered"
	} else if nextAttemptAt != nil {
		d.NextAttemptAt = *nextAttemptAt
	}
	return nil
}

func (m *Memory) FailWebhookDelivery(ctx context.Context, id string, lastError string, responseCode int, latencyMs int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.delivs[id]
	if !ok {
		return ErrNotFound
	}
	d.Attempts++
	d.Status = "failed"
	d.LastError = lastError
	d.ResponseCode = responseCode
	d.LatencyMs = latencyMs
	return nil
}
