package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"pickroute/internal/auth"
	"pickroute/internal/opt"
	"pickroute/internal/store"
	"pickroute/internal/webhooks"
)

type Server struct {
	Store  store.Store
	Engine *opt.Engine
	Pub    *webhooks.Publisher
	Auth   *auth.Verifier
	Broker EventBroker
	limits *tenantLimiters
}

// NewServer creates a Server. If DATABASE_URL is unset, uses in-memory store.
// WAREHOUSE_CONFIG points at an optional YAML geometry file.
func NewServer() (*Server, error) {
	dsn := os.Getenv("DATABASE_URL")
	var s store.Store
	if strings.TrimSpace(dsn) == "" {
		s = store.NewMemory()
	} else {
		sp, err := store.NewPostgres(dsn)
		if err != nil {
			return nil, err
		}
		if os.Getenv("DB_MIGRATE") != "false" {
			if err := sp.Migrate(context.Background()); err != nil {
				return nil, err
			}
		}
		s = sp
	}

	cfg := opt.DefaultConfig()
	if path := os.Getenv("WAREHOUSE_CONFIG"); path != "" {
		loaded, err := opt.LoadConfigFile(path)
		if err != nil {
			log.Printf("warehouse config %s: %v (using defaults)", path, err)
		} else {
			cfg = loaded
		}
	}

	var broker EventBroker
	if os.Getenv("REDIS_URL") != "" {
		if rb, err := NewRedisBroker(); err == nil {
			broker = rb
		} else {
			broker = NewBroker()
		}
	} else {
		broker = NewBroker()
	}
	return &Server{
		Store:  s,
		Engine: opt.NewEngine(cfg),
		Pub:    webhooks.NewPublisher(s),
		Auth:   auth.NewVerifierFromEnv(),
		Broker: broker,
		limits: newTenantLimiters(),
	}, nil
}

func (s *Server) withTenant(r *http.Request) (context.Context, string) {
	// For now, get tenant from header; in production decode from JWT.
	tenant := r.Header.Get("X-Tenant-Id")
	if tenant == "" {
		tenant = "t_demo"
	}
	ctx := context.WithValue(r.Context(), ctxKeyTenant{}, tenant)
	return ctx, tenant
}

type ctxKeyTenant struct{}

// effectiveConfig overlays the tenant's saved patch on the engine config.
func (s *Server) effectiveConfig(ctx context.Context, tenant string) opt.WarehouseConfig {
	cfg := s.Engine.Config()
	if patch, err := s.Store.GetWarehouseConfig(ctx, tenant); err == nil && patch != nil {
		cfg = cfg.Apply(*patch)
	}
	return cfg
}

// NewWebhookWorker creates a background worker for webhook deliveries.
func (s *Server) NewWebhookWorker() *webhooks.Worker {
	return webhooks.NewWorker(s.Store)
}
