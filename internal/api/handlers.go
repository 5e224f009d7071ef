package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pickroute/internal/integrations"
	"pickroute/internal/metrics"
	"pickroute/internal/model"
	"pickroute/internal/opt"
)

// OptimizeHandler handles POST /v1/optimize
func (s *Server) OptimizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p := s.getPrincipal(r)
	if !p.CanDispatch() {
		writeProblem(w, 403, "Forbidden", "dispatcher or admin required", r.URL.Path)
		return
	}
	var req model.OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
		return
	}
	if err := validateOptimizeRequest(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid optimize request", err.Error(), r.URL.Path)
		return
	}
	if req.TenantID == "" {
		_, req.TenantID = s.withTenant(r)
	}
	if !s.limits.Allow(req.TenantID) {
		writeProblem(w, http.StatusTooManyRequests, "Rate limited", "optimize call budget exhausted", r.URL.Path)
		return
	}

	cfg := s.effectiveConfig(r.Context(), req.TenantID)
	tasks := make([]opt.Task, len(req.Tasks))
	for i, t := range req.Tasks {
		tasks[i] = opt.Task{
			ID:       t.TaskID,
			OrderID:  t.OrderID,
			SKU:      t.SKU,
			Quantity: t.Quantity,
			Location: t.BinLocation,
			Priority: opt.ParsePriority(t.Priority),
			Weight:   t.Weight,
		}
	}
	var opts opt.Options
	if req.Options != nil {
		if req.Options.Algorithm != "" {
			a, _ := opt.ParseAlgorithm(req.Options.Algorithm)
			opts.Algorithm = &a
		}
		opts.MaxIterations = req.Options.MaxIterations
	}

	started := time.Now()
	route, err := opt.OptimizeWithConfig(cfg, tasks, req.StartLocation, opts)
	if err != nil {
		metrics.OptimizeRequests.WithLabelValues("none", "error").Inc()
		writeOptimizeError(w, err, r.URL.Path)
		return
	}
	algo := route.Algorithm.String()
	metrics.OptimizeRequests.WithLabelValues(algo, "ok").Inc()
	metrics.OptimizeDuration.WithLabelValues(algo).Observe(time.Since(started).Seconds())
	metrics.RouteDistance.Observe(route.TotalDistance)

	out := toModelRoute(route, req)
	saved, err := s.Store.SaveRoute(r.Context(), req.TenantID, out)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Save route failed", err.Error(), r.URL.Path)
		return
	}
	opt.RecordRun(req.TenantID, opt.RunStats{
		Algorithm:     algo,
		Tasks:         len(req.Tasks),
		Locations:     len(route.Waypoints),
		TwoOptPasses:  route.TwoOptPasses,
		CapHit:        route.CapHit,
		TotalDistance: route.TotalDistance,
		EstimatedMs:   saved.EstimatedTimeMs,
	})
	evtData := map[string]any{
		"routeId":         saved.ID,
		"algorithm":       saved.Algorithm,
		"totalDistance":   saved.TotalDistance,
		"estimatedTimeMs": saved.EstimatedTimeMs,
		"tasks":           len(saved.Tasks),
		"ts":              saved.CreatedAt,
	}
	s.Pub.Emit(r.Context(), req.TenantID, "route.optimized", evtData)
	s.Broker.Publish(req.TenantID, SSEEvent{Type: "route.optimized", Data: evtData})
	writeJSON(w, http.StatusOK, saved)
}

func toModelRoute(route opt.Route, req model.OptimizeRequest) model.OptimizedRoute {
	start := req.StartLocation
	if start == "" {
		start = opt.Depot
	}
	out := model.OptimizedRoute{
		StartLocation:   start,
		Tasks:           make([]model.OptimizedPickTask, len(route.Tasks)),
		Waypoints:       make([]model.Waypoint, len(route.Waypoints)),
		TotalDistance:   route.TotalDistance,
		EstimatedTimeMs: route.EstimatedTime.Milliseconds(),
		Algorithm:       route.Algorithm.String(),
		IterationCapHit: route.CapHit,
	}
	for i, t := range route.Tasks {
		out.Tasks[i] = model.OptimizedPickTask{
			TaskID:          t.ID,
			OrderID:         t.OrderID,
			SKU:             t.SKU,
			Quantity:        t.Quantity,
			BinLocation:     t.Location,
			Priority:        t.Priority.String(),
			Weight:          t.Weight,
			Sequence:        t.Sequence,
			FromLocation:    t.FromLocation,
			ToLocation:      t.ToLocation,
			Distance:        t.Distance,
			EstimatedTimeMs: t.Time.Milliseconds(),
		}
	}
	for i, wp := range route.Waypoints {
		out.Waypoints[i] = model.Waypoint{
			Location: wp.Location,
			Type:     string(wp.Kind),
			Sequence: wp.Sequence,
			X:        wp.X,
			Y:        wp.Y,
			Z:        wp.Z,
		}
	}
	return out
}

// OptimizerConfigHandler returns the effective optimizer configuration
// (engine defaults overlaid with the tenant's saved patch).
func (s *Server) OptimizerConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/optimizer/config" || r.Method != http.MethodGet {
		writeProblem(w, 404, "Not Found", "", r.URL.Path)
		return
	}
	p := s.getPrincipal(r)
	cfg := s.effectiveConfig(r.Context(), p.Tenant)
	writeJSON(w, 200, map[string]any{"config": cfg})
}

// AdminOptimizerConfigHandler gets/sets the tenant's config patch.
// PUT merges the body's set fields over the saved patch; a zoneLayout in the
// body replaces the saved layout wholesale.
func (s *Server) AdminOptimizerConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/admin/optimizer/config" {
		writeProblem(w, 404, "Not Found", "", r.URL.Path)
		return
	}
	p := s.getPrincipal(r)
	if !p.IsAdmin() {
		writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path)
		return
	}
	switch r.Method {
	case http.MethodGet:
		patch, err := s.Store.GetWarehouseConfig(r.Context(), p.Tenant)
		if err != nil {
			writeProblem(w, 500, "Load config failed", err.Error(), r.URL.Path)
			return
		}
		if patch == nil {
			patch = &opt.ConfigPatch{}
		}
		writeJSON(w, 200, map[string]any{"config": patch})
	case http.MethodPut:
		var in opt.ConfigPatch
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeProblem(w, 400, "Invalid JSON", err.Error(), r.URL.Path)
			return
		}
		if err := validateConfigPatch(&in); err != nil {
			writeProblem(w, 400, "Invalid config", err.Error(), r.URL.Path)
			return
		}
		merged := in
		if existing, err := s.Store.GetWarehouseConfig(r.Context(), p.Tenant); err == nil && existing != nil {
			merged = mergePatch(*existing, in)
		}
		if err := s.Store.SaveWarehouseConfig(r.Context(), p.Tenant, merged); err != nil {
			writeProblem(w, 500, "Save failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, 200, map[string]any{"config": merged})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// mergePatch overlays the incoming patch's set fields onto the stored one.
func mergePatch(base, in opt.ConfigPatch) opt.ConfigPatch {
	out := base
	if in.AisleWidth != nil {
		out.AisleWidth = in.AisleWidth
	}
	if in.ShelfDepth != nil {
		out.ShelfDepth = in.ShelfDepth
	}
	if in.ShelfHeight != nil {
		out.ShelfHeight = in.ShelfHeight
	}
	if in.WalkingSpeed != nil {
		out.WalkingSpeed = in.WalkingSpeed
	}
	if in.PickTimeSec != nil {
		out.PickTimeSec = in.PickTimeSec
	}
	if in.ZoneTransitionPenalty != nil {
		out.ZoneTransitionPenalty = in.ZoneTransitionPenalty
	}
	if in.ZoneLayout != nil {
		out.ZoneLayout = in.ZoneLayout
	}
	return out
}

// RoutesIndexHandler handles GET /v1/routes
func (s *Server) RoutesIndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/routes" {
		writeProblem(w, http.StatusNotFound, "Not Found", "", r.URL.Path)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_, tenant := s.withTenant(r)
	cursor := r.URL.Query().Get("cursor")
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	items, next, err := s.Store.ListRoutes(r.Context(), tenant, cursor, limit)
	if err != nil {
		writeProblem(w, 500, "List routes failed", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, 200, map[string]any{"items": items, "nextCursor": next})
}

// RouteByIDHandler handles GET /v1/routes/{id}
func (s *Server) RouteByIDHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/routes/")
	if rest == r.URL.Path || rest == "" {
		writeProblem(w, http.StatusNotFound, "Not Found", "missing id", r.URL.Path)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_, tenant := s.withTenant(r)
	route, err := s.Store.GetRoute(r.Context(), tenant, rest)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Route not found", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

// RouteEventsStreamHandler streams the tenant's route events over SSE.
func (s *Server) RouteEventsStreamHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	_, tenant := s.withTenant(r)
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, 500, "Streaming unsupported", "", r.URL.Path)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	ch := s.Broker.Subscribe(tenant)
	defer s.Broker.Unsubscribe(tenant, ch)
	// initial heartbeat
	fmt.Fprintf(w, "event: heartbeat\n")
	fmt.Fprintf(w, "data: {\"ts\":\"%s\"}\n\n", time.Now().Format(time.RFC3339))
	flusher.Flush()
	notify := r.Context().Done()
	for {
		select {
		case <-notify:
			return
		case evt := <-ch:
			b, _ := json.Marshal(evt.Data)
			fmt.Fprintf(w, "event: %s\n", evt.Type)
			fmt.Fprintf(w, "data: %s\n\n", string(b))
			flusher.Flush()
		case <-time.After(15 * time.Second):
			fmt.Fprintf(w, "event: heartbeat\n")
			fmt.Fprintf(w, "data: {\"ts\":\"%s\"}\n\n", time.Now().Format(time.RFC3339))
			flusher.Flush()
		}
	}
}

// TasksImportHandler handles POST /v1/tasks/import with a CSV body.
func (s *Server) TasksImportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	p := s.getPrincipal(r)
	if !p.CanDispatch() {
		writeProblem(w, 403, "Forbidden", "dispatcher or admin required", r.URL.Path)
		return
	}
	tasks, err := integrations.ParseTasksCSV(r.Body)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid CSV", err.Error(), r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
}

// SubscriptionsHandler handles POST/GET /v1/subscriptions
func (s *Server) SubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	p := s.getPrincipal(r)
	if !p.IsAdmin() {
		writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path)
		return
	}
	switch r.Method {
	case http.MethodPost:
		var req model.SubscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error(), r.URL.Path)
			return
		}
		if req.TenantID == "" {
			req.TenantID = p.Tenant
		}
		if req.URL == "" || len(req.Events) == 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid subscription", "url and events required", r.URL.Path)
			return
		}
		sub, err := s.Store.CreateSubscription(r.Context(), req)
		if err != nil {
			writeProblem(w, http.StatusInternalServerError, "Create subscription failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, http.StatusCreated, sub)
	case http.MethodGet:
		cursor := r.URL.Query().Get("cursor")
		limit := 100
		if v := r.URL.Query().Get("limit"); v != "" {
			fmt.Sscanf(v, "%d", &limit)
		}
		items, next, err := s.Store.ListSubscriptions(r.Context(), p.Tenant, cursor, limit)
		if err != nil {
			writeProblem(w, 500, "List subscriptions failed", err.Error(), r.URL.Path)
			return
		}
		writeJSON(w, 200, map[string]any{"items": items, "nextCursor": next})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// SubscriptionByIDHandler handles DELETE /v1/subscriptions/{id}
func (s *Server) SubscriptionByIDHandler(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/v1/subscriptions/") {
		writeProblem(w, 404, "Not Found", "", r.URL.Path)
		return
	}
	if r.Method != http.MethodDelete {
		w.WriteHeader(405)
		return
	}
	p := s.getPrincipal(r)
	if !p.IsAdmin() {
		writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/subscriptions/")
	if err := s.Store.DeleteSubscription(r.Context(), p.Tenant, id); err != nil {
		writeProblem(w, 500, "Delete subscription failed", err.Error(), r.URL.Path)
		return
	}
	w.WriteHeader(204)
}

// PlanStatsHandler returns the latest per-algorithm run diagnostics.
func (s *Server) PlanStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v1/admin/plan-stats" || r.Method != http.MethodGet {
		writeProblem(w, 404, "Not Found", "", r.URL.Path)
		return
	}
	p := s.getPrincipal(r)
	if !p.IsAdmin() {
		writeProblem(w, 403, "Forbidden", "admin required", r.URL.Path)
		return
	}
	writeJSON(w, 200, map[string]any{"runs": opt.GetRuns(p.Tenant)})
}

// Health
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	// Check DB connectivity when using Postgres store
	type pinger interface {
		Ping(ctx context.Context) error
	}
	if pg, ok := s.Store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := pg.Ping(ctx); err != nil {
			writeProblem(w, 503, "Not Ready", err.Error(), r.URL.Path)
			return
		}
	}
	writeJSON(w, 200, map[string]string{"status": "ready"})
}
