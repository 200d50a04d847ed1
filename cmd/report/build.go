package main

import (
	"context"
	"fmt"
	"time"

	reportapp "github.com/Rushi-chippa/SalesERPFullProject/internal/application/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Report names accepted on the command line.
const (
	reportDashboard   = "dashboard"
	reportSales       = "sales"
	reportLeaderboard = "leaderboard"
	reportForecast    = "forecast"
)

type options struct {
	Range  string
	From   string
	To     string
	Recent int
}

type forecaster interface {
	Forecast(ctx context.Context, snap sales.Snapshot, now time.Time) report.Forecast
}

// build assembles the named report. A nil forecaster keeps the local estimate.
func build(ctx context.Context, name string, snap sales.Snapshot, opts options, now time.Time, f forecaster) (any, error) {
	switch name {
	case reportDashboard:
		d := reportapp.DashboardSummary(snap, opts.Recent, now)
		if f != nil {
			d.Forecast = f.Forecast(ctx, snap, now)
		}
		return d, nil
	case reportSales:
		r, err := reportapp.ParseRange(opts.Range, opts.From, opts.To)
		if err != nil {
			return nil, err
		}
		return reportapp.SalesReport(snap, r, now), nil
	case reportLeaderboard:
		return reportapp.Leaderboard(snap), nil
	case reportForecast:
		if f != nil {
			return f.Forecast(ctx, snap, now), nil
		}
		return reportapp.LocalForecast(snap, now), nil
	}
	return nil, fmt.Errorf("unknown report %q", name)
}
