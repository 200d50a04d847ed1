package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/demo"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/infrastructure/export"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type serverForecast struct{}

func (serverForecast) Forecast(context.Context, sales.Snapshot, time.Time) report.Forecast {
	return report.Forecast{Source: report.ForecastServer, Period: "2024-07", Amount: decimal.NewFromInt(1)}
}

func snapshot(t *testing.T) sales.Snapshot {
	t.Helper()
	ctx := context.Background()
	b := demo.Seed(42, 80, now)
	var (
		snap sales.Snapshot
		err  error
	)
	snap.Products, err = b.ListProducts(ctx)
	require.NoError(t, err)
	snap.Salesmen, err = b.ListSalesmen(ctx)
	require.NoError(t, err)
	snap.Customers, err = b.ListCustomers(ctx)
	require.NoError(t, err)
	snap.Sales, err = b.ListSales(ctx)
	require.NoError(t, err)
	return snap
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	snap := snapshot(t)

	v, err := build(ctx, reportDashboard, snap, options{Recent: 3}, now, nil)
	require.NoError(t, err)
	d := v.(report.DashboardSummary)
	assert.Len(t, d.RecentSales, 3)
	assert.Equal(t, int64(80), d.TotalOrders)

	v, err = build(ctx, reportDashboard, snap, options{}, now, serverForecast{})
	require.NoError(t, err)
	assert.Equal(t, report.ForecastServer, v.(report.DashboardSummary).Forecast.Source)

	v, err = build(ctx, reportSales, snap, options{Range: "30d"}, now, nil)
	require.NoError(t, err)
	assert.Equal(t, "30d", v.(report.SalesReport).Range)

	_, err = build(ctx, reportSales, snap, options{Range: "2w"}, now, nil)
	assert.True(t, shared.IsValidation(err))

	v, err = build(ctx, reportLeaderboard, snap, options{}, now, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, v.(report.Leaderboard).Entries)

	v, err = build(ctx, reportForecast, snap, options{}, now, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-07", v.(report.Forecast).Period)

	_, err = build(ctx, "inventory", snap, options{}, now, nil)
	assert.ErrorContains(t, err, `unknown report "inventory"`)
}

func TestBuild_ExportsAsCSV(t *testing.T) {
	v, err := build(context.Background(), reportLeaderboard, snapshot(t), options{}, now, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export.Encode(&buf, export.FormatCSV, v))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "rank,"))
}
