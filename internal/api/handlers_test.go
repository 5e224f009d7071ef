package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pickroute/internal/auth"
	"pickroute/internal/model"
	"pickroute/internal/opt"
	"pickroute/internal/store"
	"pickroute/internal/webhooks"
)

func newTestServer() *Server {
	st := store.NewMemory()
	return &Server{
		Store:  st,
		Engine: opt.NewEngine(opt.DefaultConfig()),
		Pub:    webhooks.NewPublisher(st),
		Auth:   auth.NewVerifierFromEnv(),
		Broker: NewBroker(),
		limits: newTenantLimiters(),
	}
}

func doJSON(t *testing.T, h http.HandlerFunc, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestOptimizeHandlerHappyPath(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{
		Tasks: []model.PickTaskIn{
			{TaskID: "t1", BinLocation: "A-1-1"},
			{TaskID: "t2", BinLocation: "A-1-2"},
			{TaskID: "t3", BinLocation: "A-2-1"},
		},
		StartLocation: "DEPOT",
		Options:       &model.OptimizeOptions{Algorithm: "nearest"},
	}
	rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil)
	if rr.Code != 200 {
		t.Fatalf("want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var out model.OptimizedRoute
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID == "" || out.Algorithm != "nearest" {
		t.Fatalf("route not persisted/labeled: %+v", out)
	}
	if out.TotalDistance != 14.0 {
		t.Fatalf("want total 14.0, got %v", out.TotalDistance)
	}
	if len(out.Tasks) != 3 || out.Tasks[0].Sequence != 1 {
		t.Fatalf("tasks wrong: %+v", out.Tasks)
	}
	if len(out.Waypoints) != 5 {
		t.Fatalf("want 5 waypoints, got %d", len(out.Waypoints))
	}

	// round trip through the store
	rr2 := doJSON(t, s.RouteByIDHandler, http.MethodGet, "/v1/routes/"+out.ID, nil, nil)
	if rr2.Code != 200 {
		t.Fatalf("get route: want 200, got %d", rr2.Code)
	}
}

func TestOptimizeHandlerMalformedLocation(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{Tasks: []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1"}}}
	rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil)
	if rr.Code != 400 {
		t.Fatalf("malformed bin should 400, got %d: %s", rr.Code, rr.Body.String())
	}
	var p Problem
	_ = json.Unmarshal(rr.Body.Bytes(), &p)
	if !strings.Contains(p.Title, "Malformed") {
		t.Fatalf("unexpected problem: %+v", p)
	}
}

func TestOptimizeHandlerBadWalkingSpeed(t *testing.T) {
	s := newTestServer()
	cfg := s.Engine.Config()
	cfg.WalkingSpeed = 0
	s.Engine.SetConfig(cfg)
	req := model.OptimizeRequest{Tasks: []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1-1"}}}
	rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil)
	if rr.Code != 500 {
		t.Fatalf("bad geometry should 500, got %d", rr.Code)
	}
}

func TestOptimizeHandlerForbiddenRole(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{Tasks: []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1-1"}}}
	rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, map[string]string{"X-Role": "picker"})
	if rr.Code != 403 {
		t.Fatalf("picker should be forbidden, got %d", rr.Code)
	}
}

func TestOptimizeHandlerInvalidAlgorithm(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{
		Tasks:   []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1-1"}},
		Options: &model.OptimizeOptions{Algorithm: "annealing"},
	}
	rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil)
	if rr.Code != 400 {
		t.Fatalf("unknown algorithm should 400, got %d", rr.Code)
	}
}

func TestAdminOptimizerConfigMerge(t *testing.T) {
	s := newTestServer()
	rr := doJSON(t, s.AdminOptimizerConfigHandler, http.MethodPut, "/v1/admin/optimizer/config",
		map[string]any{"walkingSpeed": 2.0}, nil)
	if rr.Code != 200 {
		t.Fatalf("put 1: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	// second patch touches a different field; first must survive
	rr = doJSON(t, s.AdminOptimizerConfigHandler, http.MethodPut, "/v1/admin/optimizer/config",
		map[string]any{"pickTimeSec": 5.0}, nil)
	if rr.Code != 200 {
		t.Fatalf("put 2: want 200, got %d", rr.Code)
	}
	rr = doJSON(t, s.OptimizerConfigHandler, http.MethodGet, "/v1/optimizer/config", nil, nil)
	if rr.Code != 200 {
		t.Fatalf("get: want 200, got %d", rr.Code)
	}
	var out struct {
		Config opt.WarehouseConfig `json:"config"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out.Config.WalkingSpeed != 2.0 || out.Config.PickTimeSec != 5.0 {
		t.Fatalf("merged config wrong: %+v", out.Config)
	}
	if out.Config.AisleWidth != 3.0 {
		t.Fatalf("untouched fields must keep defaults: %+v", out.Config)
	}
}

func TestAdminOptimizerConfigRejectsBadPatch(t *testing.T) {
	s := newTestServer()
	rr := doJSON(t, s.AdminOptimizerConfigHandler, http.MethodPut, "/v1/admin/optimizer/config",
		map[string]any{"aisleWidth": -1.0}, nil)
	if rr.Code != 400 {
		t.Fatalf("negative aisleWidth should 400, got %d", rr.Code)
	}
}

func TestAdminOptimizerConfigRequiresAdmin(t *testing.T) {
	s := newTestServer()
	rr := doJSON(t, s.AdminOptimizerConfigHandler, http.MethodGet, "/v1/admin/optimizer/config", nil,
		map[string]string{"X-Role": "dispatcher"})
	if rr.Code != 403 {
		t.Fatalf("dispatcher should be forbidden, got %d", rr.Code)
	}
}

func TestRoutesListAndGet(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{Tasks: []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1-1"}}}
	if rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil); rr.Code != 200 {
		t.Fatalf("optimize: %d", rr.Code)
	}
	rr := doJSON(t, s.RoutesIndexHandler, http.MethodGet, "/v1/routes", nil, nil)
	if rr.Code != 200 {
		t.Fatalf("list: want 200, got %d", rr.Code)
	}
	var out struct {
		Items []model.OptimizedRoute `json:"items"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if len(out.Items) != 1 {
		t.Fatalf("want 1 route, got %d", len(out.Items))
	}
	rr = doJSON(t, s.RouteByIDHandler, http.MethodGet, "/v1/routes/missing", nil, nil)
	if rr.Code != 404 {
		t.Fatalf("missing route should 404, got %d", rr.Code)
	}
}

func TestPlanStats(t *testing.T) {
	s := newTestServer()
	req := model.OptimizeRequest{
		TenantID: "t_plan",
		Tasks:    []model.PickTaskIn{{TaskID: "t1", BinLocation: "A-1-1"}},
	}
	if rr := doJSON(t, s.OptimizeHandler, http.MethodPost, "/v1/optimize", req, nil); rr.Code != 200 {
		t.Fatalf("optimize: %d", rr.Code)
	}
	rr := doJSON(t, s.PlanStatsHandler, http.MethodGet, "/v1/admin/plan-stats", nil,
		map[string]string{"X-Tenant-Id": "t_plan"})
	if rr.Code != 200 {
		t.Fatalf("stats: want 200, got %d", rr.Code)
	}
	var out struct {
		Runs map[string]opt.RunStats `json:"runs"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out.Runs["tsp"].Tasks != 1 {
		t.Fatalf("expected a recorded tsp run: %+v", out.Runs)
	}
}

func TestSubscriptionsCreateAndDelete(t *testing.T) {
	s := newTestServer()
	rr := doJSON(t, s.SubscriptionsHandler, http.MethodPost, "/v1/subscriptions",
		model.SubscriptionRequest{URL: "https://example.test/hook", Events: []string{"route.optimized"}, Secret: "s"}, nil)
	if rr.Code != 201 {
		t.Fatalf("create: want 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var sub model.Subscription
	_ = json.Unmarshal(rr.Body.Bytes(), &sub)
	if sub.ID == "" {
		t.Fatalf("subscription id missing")
	}
	rr = doJSON(t, s.SubscriptionByIDHandler, http.MethodDelete, "/v1/subscriptions/"+sub.ID, nil, nil)
	if rr.Code != 204 {
		t.Fatalf("delete: want 204, got %d", rr.Code)
	}
}

func TestTasksImport(t *testing.T) {
	s := newTestServer()
	csv := "taskId,binLocation,quantity\nt1,A-1-1,2\nt2,B-3-4R,1\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/tasks/import", strings.NewReader(csv))
	rr := httptest.NewRecorder()
	s.TasksImportHandler(rr, req)
	if rr.Code != 200 {
		t.Fatalf("import: want 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var out struct {
		Count int `json:"count"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	if out.Count != 2 {
		t.Fatalf("want 2 tasks, got %d", out.Count)
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer()
	rr := doJSON(t, s.HealthHandler, http.MethodGet, "/healthz", nil, nil)
	if rr.Code != 200 {
		t.Fatalf("want 200, got %d", rr.Code)
	}
	rr = doJSON(t, s.ReadyHandler, http.MethodGet, "/readyz", nil, nil)
	if rr.Code != 200 {
		t.Fatalf("memory store should always be ready, got %d", rr.Code)
	}
}
