package store

import (
	"context"
	"errors"
	"time"

	"pickroute/internal/model"
	"pickroute/internal/opt"
)

// Store is the persistence interface used by the API server.
type Store interface {
	// Optimized routes
	SaveRoute(ctx context.Context, tenantID string, route model.OptimizedRoute) (model.OptimizedRoute, error)
	GetRoute(ctx context.Context, tenantID, routeID string) (model.OptimizedRoute, error)
	ListRoutes(ctx context.Context, tenantID, cursor string, limit int) ([]model.OptimizedRoute, string, error)

	// Per-tenant warehouse config override (nil when none saved)
	GetWarehouseConfig(ctx context.Context, tenantID string) (*opt.ConfigPatch, error)
	SaveWarehouseConfig(ctx context.Context, tenantID string, patch opt.ConfigPatch) error

	// Webhook subscriptions
	CreateSubscription(ctx context.Context, req model.SubscriptionRequest) (model.Subscription, error)
	GetSubscriptionsForEvent(ctx context.Context, tenantID, eventType string) ([]model.Subscription, error)
	ListSubscriptions(ctx context.Context, tenantID, cursor string, limit int) ([]model.Subscription, string, error)
	DeleteSubscription(ctx context.Context, tenantID, id string) error

	// Webhook delivery queue
	EnqueueWebhook(ctx context.Context, tenantID, subscriptionID, eventType, url, secret string, payload []byte) (string, error)
	FetchDueWebhookDeliveries(ctx context.Context, limit int) ([]WebhookDelivery, error)
	MarkWebhookDelivery(ctx context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error
	FailWebhookDelivery(ctx context.Context, id string, lastError string, responseCode int, latencyMs int) error
}

var ErrNotFound = errors.New("not found")
