// Package backend opens the configured source of sales records.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/analytics"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/assistant"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/store"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/client"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/demo"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/persistence"
)

// Categories lists the backend's product categories
type Categories interface {
	Categories(ctx context.Context) ([]sales.Category, error)
}

// Source is an opened backend. Analytics and Remote are only set for the
// REST source, the only one that serves server-side analytics.
type Source struct {
	Name       string
	Store      store.Backend
	Categories Categories
	Analytics  analytics.Source
	Remote     assistant.Remote

	close func() error
}

// Close releases the source's connections
func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Options carries the optional collaborators of Open
type Options struct {
	Logger   *zap.Logger
	Registry prometheus.Registerer
	Now      func() time.Time
}

// Open connects to the source named by cfg.Backend.Source
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Source, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	switch cfg.Backend.Source {
	case config.SourceREST, "":
		clientOpts := []client.Option{client.WithLogger(log)}
		if opts.Registry != nil {
			clientOpts = append(clientOpts, client.WithMetrics(client.NewMetrics(opts.Registry)))
		}
		c, err := client.New(cfg.Client, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("sales backend client: %w", err)
		}
		log.Info("Using REST sales backend", zap.String("base_url", cfg.Client.BaseURL))
		return &Source{
			Name:       config.SourceREST,
			Store:      c,
			Categories: c,
			Analytics:  c,
			Remote:     c,
		}, nil

	case config.SourceSQL:
		db, err := persistence.Open(cfg.Database, persistence.WithLogger(log, cfg.Log.Level))
		if err != nil {
			return nil, fmt.Errorf("sales database: %w", err)
		}
		// A SQLite file is a local sandbox; Postgres schemas belong to the backend.
		if cfg.Database.Driver == "sqlite" {
			if err := db.Migrate(ctx); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("sales database: %w", err)
			}
		}
		b := persistence.NewBackend(db)
		log.Info("Using SQL sales backend",
			zap.String("driver", cfg.Database.Driver),
			zap.Int64("company_id", cfg.Database.CompanyID))
		return &Source{
			Name:       config.SourceSQL,
			Store:      b,
			Categories: b,
			close:      db.Close,
		}, nil

	case config.SourceDemo:
		b := demo.Seed(cfg.Backend.DemoSeed, cfg.Backend.DemoSales, now())
		log.Info("Using generated demo data",
			zap.Int64("seed", cfg.Backend.DemoSeed),
			zap.Int("sales", cfg.Backend.DemoSales))
		return &Source{
			Name:       config.SourceDemo,
			Store:      b,
			Categories: b,
		}, nil
	}
	return nil, fmt.Errorf("unknown backend source %q", cfg.Backend.Source)
}
