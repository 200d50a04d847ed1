package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// The shapes below are computed by the sales backend and consumed as-is.

// ABCRow classifies a product by its share of revenue
type ABCRow struct {
	ProductID json.Number     `json:"product_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Class     string          `json:"class"`
}

// RFMRow is one customer's recency/frequency/monetary segmentation
type RFMRow struct {
	CustomerName string          `json:"customer_name"`
	Recency      int             `json:"recency"`
	Frequency    int             `json:"frequency"`
	Monetary     decimal.Decimal `json:"monetary"`
	Segment      string          `json:"segment"`
}

// ExecutiveKPI holds the executive dashboard tiles
type ExecutiveKPI struct {
	RunRate             decimal.Decimal `json:"run_rate"`
	ActiveSalesmenRatio float64         `json:"active_salesmen_ratio"`
	TopMoverID          *json.Number    `json:"top_mover_id"`
}

// ConsistencyRow is a salesman's revenue coefficient of variation
type ConsistencyRow struct {
	UserID json.Number `json:"user_id"`
	Name   string      `json:"name"`
	Std    float64     `json:"std"`
	Mean   float64     `json:"mean"`
	Count  int         `json:"count"`
	CV     float64     `json:"cv"`
}

// ServerLeaderboardRow is the backend's own leaderboard row
type ServerLeaderboardRow struct {
	Rank            int             `json:"rank"`
	Name            string          `json:"name"`
	Avatar          string          `json:"avatar,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	Quantity        int64           `json:"quantity"`
	SalesTarget     decimal.Decimal `json:"sales_target"`
	AchievedPercent decimal.Decimal `json:"achieved_percent"`
}

// ServerLeaderboard wraps the backend leaderboard rows
type ServerLeaderboard struct {
	CompanyName string                 `json:"company_name,omitempty"`
	Rows        []ServerLeaderboardRow `json:"leaderboard"`
}

// PredictionPoint is one historical day of the server-side forecast input
type PredictionPoint struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// PredictedPoint is one forecast day
type PredictedPoint struct {
	Date            string          `json:"date"`
	PredictedAmount decimal.Decimal `json:"predicted_amount"`
}

// Prediction is the server-side sales forecast
type Prediction struct {
	History  []PredictionPoint `json:"history"`
	Forecast []PredictedPoint  `json:"forecast"`
	Summary  json.RawMessage   `json:"summary,omitempty"`
}

// Total sums the predicted amounts
func (p *Prediction) Total() decimal.Decimal {
	total := decimal.Zero
	if p == nil {
		return total
	}
	for _, f := range p.Forecast {
		total = total.Add(f.PredictedAmount)
	}
	return total
}

// HasForecast reports whether the server produced any forecast points
func (p *Prediction) HasForecast() bool {
	return p != nil && len(p.Forecast) > 0
}

// Next returns the first predicted period
func (p *Prediction) Next() (PredictedPoint, bool) {
	if !p.HasForecast() {
		return PredictedPoint{}, false
	}
	return p.Forecast[0], true
}
