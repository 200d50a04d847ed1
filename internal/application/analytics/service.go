package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/forecast"
	reportapp "github.com/Rushi-chippa/SalesERPFullProject/internal/application/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/cache"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/telemetry"
)

const spanService = "analytics"

// DefaultTTL applies when the service is built without a TTL.
const DefaultTTL = 5 * time.Minute

// Service wraps a Source with caching. A nil cache disables caching.
type Service struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	// epoch and generation are part of every key. Invalidate orphans all
	// entries at once; a new process never reads a predecessor's entries from
	// a shared cache.
	epoch      string
	generation atomic.Uint64
}

// Option configures a Service
type Option func(*Service)

// WithCache sets the cache and entry TTL
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates an analytics service over source
func NewService(source Source, opts ...Option) *Service {
	s := &Service{source: source, ttl: DefaultTTL, logger: zap.NewNop(), epoch: uuid.NewString()}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("analytics")
	return s
}

// Invalidate drops every cached response. Call it after a store mutation.
func (s *Service) Invalidate() {
	s.generation.Add(1)
}

func (s *Service) key(name string, parts ...string) string {
	k := fmt.Sprintf("%s:g%d:%s", s.epoch, s.generation.Load(), name)
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

func fetch[T any](ctx context.Context, s *Service, key, method string, load func(context.Context) (T, error)) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, method)
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheKey, key)

	loaded := false
	v, err := cache.FetchJSON(ctx, s.cache, key, s.ttl, func(ctx context.Context) (T, error) {
		loaded = true
		return load(ctx)
	})
	telemetry.SetAttributes(span, telemetry.SpanAttrCacheHit, !loaded)
	if err != nil {
		telemetry.RecordError(span, err)
		return v, fmt.Errorf("%s: %w", method, err)
	}
	return v, nil
}

// DashboardStats returns the backend dashboard tiles
func (s *Service) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	return fetch(ctx, s, s.key("dashboard-stats"), "DashboardStats", s.source.DashboardStats)
}

// Reports returns the backend report bundle for the optional date range
func (s *Service) Reports(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	return fetch(ctx, s, s.key("reports", startDate, endDate), "Reports", func(ctx context.Context) (json.RawMessage, error) {
		return s.source.Reports(ctx, startDate, endDate)
	})
}

// Leaderboard returns the backend leaderboard
func (s *Service) Leaderboard(ctx context.Context) (report.ServerLeaderboard, error) {
	return fetch(ctx, s, s.key("leaderboard"), "Leaderboard", s.source.Leaderboard)
}

// ExecutiveKPI returns the executive KPI tiles
func (s *Service) ExecutiveKPI(ctx context.Context) (report.ExecutiveKPI, error) {
	return fetch(ctx, s, s.key("kpi-executive"), "ExecutiveKPI", s.source.ExecutiveKPI)
}

// ProductABC returns the ABC classification of products
func (s *Service) ProductABC(ctx context.Context) ([]report.ABCRow, error) {
	return fetch(ctx, s, s.key("products-abc"), "ProductABC", s.source.ProductABC)
}

// CustomerRFM returns the RFM segmentation of customers
func (s *Service) CustomerRFM(ctx context.Context) ([]report.RFMRow, error) {
	return fetch(ctx, s, s.key("customers-rfm"), "CustomerRFM", s.source.CustomerRFM)
}

// SalesmanConsistency returns each salesman's revenue variation
func (s *Service) SalesmanConsistency(ctx context.Context) ([]report.ConsistencyRow, error) {
	return fetch(ctx, s, s.key("salesmen-consistency"), "SalesmanConsistency", s.source.SalesmanConsistency)
}

// Prediction returns the server-side forecast
func (s *Service) Prediction(ctx context.Context) (*report.Prediction, error) {
	return fetch(ctx, s, s.key("predict-sales"), "Prediction", s.source.Predictions)
}

// Forecast prefers the server prediction. When the endpoint fails or returns
// no forecast points, the local estimate over the snapshot is used.
func (s *Service) Forecast(ctx context.Context, snap sales.Snapshot, now time.Time) report.Forecast {
	local := reportapp.LocalForecast(snap, now)
	server, err := s.Prediction(ctx)
	if err != nil {
		s.logger.Warn("Server prediction unavailable, using local estimate", zap.Error(err))
		return local
	}
	return forecast.Resolve(server, local)
}
