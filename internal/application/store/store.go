// Package store keeps the in-memory mirror of the sales backend's four
// collections. Reads are served from a snapshot; every write goes to the
// backend first and touches local state only once the backend has accepted it.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/telemetry"
)

const spanService = "store"

// Store is safe for concurrent use. Concurrent mutations of the same id race
// at the backend and the last response to arrive wins locally.
type Store struct {
	backend Backend
	logger  *zap.Logger
	ops     *telemetry.Operations

	mu       sync.RWMutex
	snap     sales.Snapshot
	loadedAt time.Time
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOperations sets the metrics the store records into
func WithOperations(ops *telemetry.Operations) Option {
	return func(s *Store) {
		s.ops = ops
	}
}

// New creates an empty store over backend. Call Load to populate it.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("store")
	return s
}

// Load fetches all four collections concurrently and, only when every fetch
// succeeds, replaces the whole snapshot at once. On failure the previous
// snapshot is kept and the first error is returned.
func (s *Store) Load(ctx context.Context) (sales.Snapshot, error) {
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "load")
	defer span.End()

	var (
		next sales.Snapshot
		g    errgroup.Group
	)
	g.Go(func() (err error) {
		next.Products, err = s.backend.ListProducts(ctx)
		return wrap(err, "load products")
	})
	g.Go(func() (err error) {
		next.Salesmen, err = s.backend.ListSalesmen(ctx)
		return wrap(err, "load salesmen")
	})
	g.Go(func() (err error) {
		next.Customers, err = s.backend.ListCustomers(ctx)
		return wrap(err, "load customers")
	})
	g.Go(func() (err error) {
		next.Sales, err = s.backend.ListSales(ctx)
		return wrap(err, "load sales")
	})

	err := g.Wait()
	s.ops.Record(ctx, "load", "all", started, err)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Load failed, keeping previous snapshot", zap.Error(err))
		return s.Snapshot(), err
	}

	s.mu.Lock()
	s.snap = next.Clone()
	s.loadedAt = time.Now()
	s.mu.Unlock()

	telemetry.SetAttributes(span,
		"products", len(next.Products),
		"salesmen", len(next.Salesmen),
		"customers", len(next.Customers),
		"sales", len(next.Sales),
	)
	s.logger.Info("Snapshot loaded",
		zap.Int("products", len(next.Products)),
		zap.Int("salesmen", len(next.Salesmen)),
		zap.Int("customers", len(next.Customers)),
		zap.Int("sales", len(next.Sales)),
		zap.Duration("took", time.Since(started)),
	)
	return next, nil
}

// Snapshot returns a copy of the current collections.
func (s *Store) Snapshot() sales.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// LoadedAt returns when the last successful Load finished, zero before the first.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Add creates data at the backend and appends the returned record.
// data must be the concrete record type of kind.
func (s *Store) Add(ctx context.Context, kind sales.Kind, data sales.Entity) (sales.Entity, error) {
	checkPayload(kind, data)
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "add",
		telemetry.WithAttribute(telemetry.SpanAttrKind, string(kind)))
	defer span.End()

	created, err := s.mutate(ctx, "add", kind, started, func() (sales.Entity, error) {
		if err := sales.Validate(data); err != nil {
			return nil, err
		}
		return s.backend.Create(ctx, kind, data)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.mu.Lock()
	s.snap = appendEntity(s.snap, created)
	s.mu.Unlock()

	telemetry.SetAttributes(span, telemetry.SpanAttrEntityID, created.EntityID().String())
	return created, nil
}

// Update replaces the record with id at the backend, then in place locally.
// A record no longer present locally is appended. Customers cannot be updated.
func (s *Store) Update(ctx context.Context, kind sales.Kind, id sales.ID, data sales.Entity) (sales.Entity, error) {
	checkPayload(kind, data)
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "update",
		telemetry.WithAttribute(telemetry.SpanAttrKind, string(kind)),
		telemetry.WithAttribute(telemetry.SpanAttrEntityID, id.String()))
	defer span.End()

	updated, err := s.mutate(ctx, "update", kind, started, func() (sales.Entity, error) {
		if kind == sales.KindCustomer {
			return nil, shared.NewValidationError("customers cannot be updated")
		}
		if err := sales.Validate(data); err != nil {
			return nil, err
		}
		return s.backend.Update(ctx, kind, id, data)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.mu.Lock()
	s.snap = replaceEntity(s.snap, id, updated)
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes the record at the backend, then locally.
func (s *Store) Remove(ctx context.Context, kind sales.Kind, id sales.ID) error {
	kind.MustValid()
	started := time.Now()
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "remove",
		telemetry.WithAttribute(telemetry.SpanAttrKind, string(kind)),
		telemetry.WithAttribute(telemetry.SpanAttrEntityID, id.String()))
	defer span.End()

	_, err := s.mutate(ctx, "remove", kind, started, func() (sales.Entity, error) {
		return nil, s.backend.Delete(ctx, kind, id)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.mu.Lock()
	s.snap = removeEntity(s.snap, kind, id)
	s.mu.Unlock()
	return nil
}

func (s *Store) mutate(ctx context.Context, op string, kind sales.Kind, started time.Time, call func() (sales.Entity, error)) (sales.Entity, error) {
	entity, err := call()
	if err == nil && op != "remove" {
		entity = normalize(entity)
		// A backend that answers with another record type is broken.
		checkPayload(kind, entity)
	}
	s.ops.Record(ctx, op, string(kind), started, err)
	if err != nil {
		s.logger.Warn("Mutation rejected",
			zap.String("op", op),
			zap.String("kind", string(kind)),
			zap.String("code", shared.CodeOf(err)),
			zap.Error(err),
		)
		return nil, err
	}
	s.logger.Debug("Mutation applied", zap.String("op", op), zap.String("kind", string(kind)))
	return entity, nil
}

func checkPayload(kind sales.Kind, data sales.Entity) {
	kind.MustValid()
	if data == nil || data.EntityKind() != kind {
		panic(fmt.Sprintf("store: %s payload expected, got %T", kind, data))
	}
}

func wrap(err error, what string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", what, err)
}
