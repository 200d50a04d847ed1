package backend

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/config"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/demo"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }

	t.Run("demo", func(t *testing.T) {
		cfg := &config.Config{Backend: config.BackendConfig{Source: config.SourceDemo, DemoSeed: 42, DemoSales: 30}}
		src, err := Open(ctx, cfg, Options{Now: now})
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, config.SourceDemo, src.Name)
		assert.Nil(t, src.Analytics)
		assert.Nil(t, src.Remote)
		list, err := src.Store.ListSales(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 30)
		cats, err := src.Categories.Categories(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, cats)
	})

	t.Run("rest", func(t *testing.T) {
		cfg := &config.Config{
			Backend: config.BackendConfig{Source: config.SourceREST},
			Client:  config.ClientConfig{BaseURL: "http://localhost:8000"},
		}
		src, err := Open(ctx, cfg, Options{Registry: prometheus.NewRegistry()})
		require.NoError(t, err)
		assert.NotNil(t, src.Analytics)
		assert.NotNil(t, src.Remote)
		assert.NoError(t, src.Close())
	})

	t.Run("rest without base URL", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{Backend: config.BackendConfig{Source: config.SourceREST}}, Options{})
		assert.Error(t, err)
	})

	t.Run("sql", func(t *testing.T) {
		cfg := &config.Config{
			Backend:  config.BackendConfig{Source: config.SourceSQL},
			Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", MaxOpenConns: 1},
		}
		src, err := Open(ctx, cfg, Options{})
		require.NoError(t, err)
		assert.Equal(t, config.SourceSQL, src.Name)
		assert.NoError(t, src.Close())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, &config.Config{Backend: config.BackendConfig{Source: "ftp"}}, Options{})
		assert.ErrorContains(t, err, `unknown backend source "ftp"`)
	})
}

func TestDemoMatchesSeed(t *testing.T) {
	at := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	cfg := &config.Config{Backend: config.BackendConfig{Source: config.SourceDemo, DemoSeed: 9, DemoSales: 10}}
	src, err := Open(context.Background(), cfg, Options{Now: func() time.Time { return at }})
	require.NoError(t, err)

	want, err := demo.Seed(9, 10, at).ListSales(context.Background())
	require.NoError(t, err)
	got, err := src.Store.ListSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
