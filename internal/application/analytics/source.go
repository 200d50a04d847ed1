// Package analytics serves the analytics the sales backend computes, through a
// read-through cache, and resolves the revenue forecast.
package analytics

import (
	"context"
	"encoding/json"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
)

// Source fetches server-side analytics. The portal consumes these shapes; it
// never computes ABC, RFM or consistency locally.
type Source interface {
	DashboardStats(ctx context.Context) (json.RawMessage, error)
	// Reports takes optional YYYY-MM-DD bounds; empty means open.
	Reports(ctx context.Context, startDate, endDate string) (json.RawMessage, error)
	Leaderboard(ctx context.Context) (report.ServerLeaderboard, error)
	ExecutiveKPI(ctx context.Context) (report.ExecutiveKPI, error)
	ProductABC(ctx context.Context) ([]report.ABCRow, error)
	CustomerRFM(ctx context.Context) ([]report.RFMRow, error)
	SalesmanConsistency(ctx context.Context) ([]report.ConsistencyRow, error)
	Predictions(ctx context.Context) (*report.Prediction, error)
}
