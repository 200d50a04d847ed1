package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// SalesSummary provides aggregated sales statistics
type SalesSummary struct {
	PeriodStart   *time.Time      `json:"period_start,omitempty"`
	PeriodEnd     *time.Time      `json:"period_end,omitempty"`
	TotalOrders   int64           `json:"total_orders"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// TrendPoint is one bucket of a time series, keyed by day (YYYY-MM-DD) or month (YYYY-MM)
type TrendPoint struct {
	Period   string          `json:"period"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int64           `json:"quantity"`
	Deals    int64           `json:"deals"`
}

// ProductSalesRanking represents product sales ranking
type ProductSalesRanking struct {
	Rank          int             `json:"rank"`
	ProductID     sales.ID        `json:"product_id"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name,omitempty"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderCount    int64           `json:"order_count"`
}

// SalesmanPerformance is one row of the salesman table and of the leaderboard
type SalesmanPerformance struct {
	Rank            int             `json:"rank"`
	SalesmanID      sales.ID        `json:"salesman_id"`
	Name            string          `json:"name"`
	Region          string          `json:"region,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	Quantity        int64           `json:"quantity"`
	Deals           int64           `json:"deals"`
	AvgDealSize     decimal.Decimal `json:"avg_deal_size"`
	Target          decimal.Decimal `json:"target"`
	AchievedPercent decimal.Decimal `json:"achieved_percent"`
}

// CategoryBreakdown is revenue attributed to one product category
type CategoryBreakdown struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity int64           `json:"quantity"`
	Deals    int64           `json:"deals"`
}

// StatusBreakdown counts sales per status
type StatusBreakdown struct {
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// RecentSale is a sale decorated with display labels for the recent-sales list
type RecentSale struct {
	sales.Sale
	ProductName  string `json:"productName"`
	SalesmanName string `json:"salesmanName"`
}

// EntityCounts are the collection sizes shown on dashboard tiles
type EntityCounts struct {
	Products  int `json:"products"`
	Salesmen  int `json:"salesmen"`
	Customers int `json:"customers"`
}

// DashboardSummary is the dashboard KPI view
type DashboardSummary struct {
	SalesSummary
	Counts       EntityCounts          `json:"counts"`
	TopProducts  []ProductSalesRanking `json:"top_products"`
	RecentSales  []RecentSale          `json:"recent_sales"`
	CurrentMonth []TrendPoint          `json:"current_month"`
	LastMonths   []TrendPoint          `json:"last_months"`
	Forecast     Forecast              `json:"forecast"`
}

// SalesReport is the time-ranged sales report view
type SalesReport struct {
	Summary    SalesSummary          `json:"summary"`
	Range      string                `json:"range"`
	Monthly    []TrendPoint          `json:"monthly"`
	Daily      []TrendPoint          `json:"daily"`
	Salesmen   []SalesmanPerformance `json:"salesmen"`
	Products   []ProductSalesRanking `json:"products"`
	Categories []CategoryBreakdown   `json:"categories"`
	Status     StatusBreakdown       `json:"status"`

	// Chart slices, a prefix of Salesmen and Products
	TopSalesmen []SalesmanPerformance `json:"top_salesmen"`
	TopProducts []ProductSalesRanking `json:"top_products"`
}

// Leaderboard is the ranked salesman list split for podium rendering
type Leaderboard struct {
	Entries  []SalesmanPerformance `json:"entries"`
	TopThree []SalesmanPerformance `json:"top_three"`
	Rest     []SalesmanPerformance `json:"rest"`
}

// ForecastSource tells where a forecast came from
type ForecastSource string

const (
	ForecastServer ForecastSource = "server"
	ForecastLocal  ForecastSource = "local"
	ForecastNone   ForecastSource = "none"
)

// Forecast is a next-period revenue prediction. Amount is meaningless when Source is none.
type Forecast struct {
	Source  ForecastSource  `json:"source"`
	Period  string          `json:"period,omitempty"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message,omitempty"`
}

// Available reports whether the forecast carries a prediction
func (f Forecast) Available() bool {
	return f.Source != ForecastNone && f.Source != ""
}
