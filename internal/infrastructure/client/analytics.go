package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Backend paths outside the entity collections.
const (
	pathDashboardStats = "/api/analytics/dashboard-stats"
	pathReports        = "/api/analytics/reports"
	pathLeaderboard    = "/api/analytics/leaderboard"
	pathExecutiveKPI   = "/api/analytics/kpi/executive"
	pathProductABC     = "/api/analytics/products/abc"
	pathCustomerRFM    = "/api/analytics/customers/rfm"
	pathConsistency    = "/api/analytics/salesmen/consistency"
	pathPredictSales   = "/api/predict-sales"
	pathAsk            = "/api/ai/ask"
	pathCategories     = "/api/categories"
)

func getJSON[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	var out T
	err := c.do(ctx, request{method: http.MethodGet, path: path, route: path, query: q}, &out)
	return out, err
}

// DashboardStats implements analytics.Source
func (c *Client) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	return getJSON[json.RawMessage](ctx, c, pathDashboardStats, nil)
}

// Reports implements analytics.Source
func (c *Client) Reports(ctx context.Context, startDate, endDate string) (json.RawMessage, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	return getJSON[json.RawMessage](ctx, c, pathReports, q)
}

// Leaderboard implements analytics.Source
func (c *Client) Leaderboard(ctx context.Context) (report.ServerLeaderboard, error) {
	return getJSON[report.ServerLeaderboard](ctx, c, pathLeaderboard, nil)
}

// ExecutiveKPI implements analytics.Source
func (c *Client) ExecutiveKPI(ctx context.Context) (report.ExecutiveKPI, error) {
	return getJSON[report.ExecutiveKPI](ctx, c, pathExecutiveKPI, nil)
}

// ProductABC implements analytics.Source
func (c *Client) ProductABC(ctx context.Context) ([]report.ABCRow, error) {
	return getJSON[[]report.ABCRow](ctx, c, pathProductABC, nil)
}

// CustomerRFM implements analytics.Source
func (c *Client) CustomerRFM(ctx context.Context) ([]report.RFMRow, error) {
	return getJSON[[]report.RFMRow](ctx, c, pathCustomerRFM, nil)
}

// SalesmanConsistency implements analytics.Source
func (c *Client) SalesmanConsistency(ctx context.Context) ([]report.ConsistencyRow, error) {
	return getJSON[[]report.ConsistencyRow](ctx, c, pathConsistency, nil)
}

// Predictions implements analytics.Source
func (c *Client) Predictions(ctx context.Context) (*report.Prediction, error) {
	p, err := getJSON[report.Prediction](ctx, c, pathPredictSales, nil)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ask implements assistant.Remote
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var out struct {
		Answer string `json:"answer"`
	}
	req := request{method: http.MethodPost, path: pathAsk, route: pathAsk, body: map[string]string{"question": question}}
	if err := c.do(ctx, req, &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

// Categories lists the backend's product categories
func (c *Client) Categories(ctx context.Context) ([]sales.Category, error) {
	items, err := getJSON[[]wireCategory](ctx, c, pathCategories, nil)
	if err != nil {
		return nil, err
	}
	out := make([]sales.Category, len(items))
	for i, w := range items {
		out[i] = w.domain()
	}
	return out, nil
}
