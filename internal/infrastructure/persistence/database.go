// Package persistence implements the store backend directly on the sales
// database with gorm.
package persistence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/logger"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/persistence/models"
)

// slowQueryThreshold marks statements worth a warning in the log
const slowQueryThreshold = 200 * time.Millisecond

// Database holds the database connection and the company every query is scoped to
type Database struct {
	DB        *gorm.DB
	companyID int64
}

// Option configures Open
type Option func(*options)

type options struct {
	logger   *zap.Logger
	logLevel string
}

// WithLogger routes gorm's statement log through the given zap logger at the
// gorm level derived from the application level.
func WithLogger(l *zap.Logger, appLevel string) Option {
	return func(o *options) {
		o.logger = l
		o.logLevel = appLevel
	}
}

// Open connects to the database described by cfg and verifies the connection.
func Open(cfg config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := options{logger: zap.NewNop(), logLevel: "warn"}
	for _, opt := range opts {
		opt(&o)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres", "":
		dialector = postgres.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewGormLogger(o.logger, o.logLevel, slowQueryThreshold),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db, companyID: cfg.CompanyID}, nil
}

// NewDatabase wraps an already opened gorm connection
func NewDatabase(db *gorm.DB, companyID int64) *Database {
	return &Database{DB: db, companyID: companyID}
}

// CompanyID returns the company the connection is scoped to, 0 for all
func (d *Database) CompanyID() int64 {
	return d.companyID
}

// Scoped returns a session bound to ctx, filtered to the configured company.
func (d *Database) Scoped(ctx context.Context) *gorm.DB {
	tx := d.DB.WithContext(ctx)
	if d.companyID != 0 {
		tx = tx.Where("company_id = ?", d.companyID)
	}
	return tx
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates the tables the backend reads. Only local SQLite sandboxes
// need it; the production schema is owned by the sales backend.
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.DB.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
