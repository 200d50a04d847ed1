// Package report assembles the portal's named report views from a store
// snapshot. Every function here is pure: the caller supplies the data and,
// where a view depends on the calendar, the current time.
package report

import (
	"slices"
	"time"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/aggregation"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/filter"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/application/forecast"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// View sizes used by the dashboard and the charts.
const (
	TopProducts   = 5
	ChartLimit    = 8
	PodiumSize    = 3
	HistoryMonths = 6
	DefaultRecent = 5
)

// Summary totals a sale set. The average is zero for an empty set.
func Summary(list []sales.Sale) report.SalesSummary {
	total := aggregation.Total(list)
	return report.SalesSummary{
		TotalOrders:   total.Count,
		TotalQuantity: total.Quantity,
		TotalRevenue:  total.Amount,
		AvgOrderValue: total.Average(),
	}
}

// DashboardSummary builds the dashboard view: totals, top products, the
// recentLimit most recent sales, the day-filled trend of the month of now and
// a local forecast for the next month from the last months with sales.
func DashboardSummary(snap sales.Snapshot, recentLimit int, now time.Time) report.DashboardSummary {
	products := aggregation.NewProductIndex(snap.Products)
	history := aggregation.LastMonths(snap.Sales, HistoryMonths)

	return report.DashboardSummary{
		SalesSummary: Summary(snap.Sales),
		Counts: report.EntityCounts{
			Products:  len(snap.Products),
			Salesmen:  len(snap.Salesmen),
			Customers: len(snap.Customers),
		},
		TopProducts:  aggregation.Top(aggregation.ProductRanking(snap.Sales, products), TopProducts),
		RecentSales:  RecentSales(snap, recentLimit),
		CurrentMonth: aggregation.TrendPoints(aggregation.DailyTrend(snap.Sales, now.Year(), now.Month())),
		LastMonths:   aggregation.TrendPoints(history),
		Forecast:     forecast.Local(Periods(history), forecast.NextMonth(now)),
	}
}

// LocalForecast estimates next month's revenue from the last months with sales.
func LocalForecast(snap sales.Snapshot, now time.Time) report.Forecast {
	history := aggregation.LastMonths(snap.Sales, HistoryMonths)
	return forecast.Local(Periods(history), forecast.NextMonth(now))
}

// Periods converts month groups to forecast input
func Periods(groups []aggregation.Group) []forecast.Period {
	out := make([]forecast.Period, len(groups))
	for i, g := range groups {
		out[i] = forecast.Period{Period: g.Key, Amount: g.Amount}
	}
	return out
}

// RecentSales returns up to limit sales, most recent first. Sales on the same
// day keep their collection order.
func RecentSales(snap sales.Snapshot, limit int) []report.RecentSale {
	if limit <= 0 {
		return []report.RecentSale{}
	}
	ordered := slices.Clone(snap.Sales)
	slices.SortStableFunc(ordered, func(a, b sales.Sale) int {
		return b.Date.Compare(a.Date)
	})
	ordered = aggregation.Top(ordered, limit)

	products := aggregation.NewProductIndex(snap.Products)
	salesmen := aggregation.NewSalesmanIndex(snap.Salesmen)
	out := make([]report.RecentSale, len(ordered))
	for i, s := range ordered {
		out[i] = report.RecentSale{
			Sale:         s,
			ProductName:  sales.DisplayName(products.Lookup(s.ProductID)),
			SalesmanName: sales.SalesmanName(salesmen.Lookup(s.SalesmanID)),
		}
	}
	return out
}

// SalesReport narrows the sales to r and builds the sales report view.
// Sales whose product no longer exists still count towards the totals but
// are left out of the category breakdown.
func SalesReport(snap sales.Snapshot, r Range, now time.Time) report.SalesReport {
	from, to := r.Bounds(now)
	list := filter.Apply(snap.Sales, filter.Between(from, to))
	products := aggregation.NewProductIndex(snap.Products)

	summary := Summary(list)
	summary.PeriodStart = dayPtr(from)
	summary.PeriodEnd = dayPtr(to)

	salesmen := aggregation.Leaderboard(list, snap.Salesmen)
	ranking := aggregation.ProductRanking(list, products)
	return report.SalesReport{
		Summary:     summary,
		Range:       r.Label(),
		Monthly:     aggregation.TrendPoints(aggregation.MonthlyTrend(list)),
		Daily:       aggregation.TrendPoints(aggregation.DayTrend(list)),
		Salesmen:    salesmen,
		Products:    ranking,
		Categories:  aggregation.CategoryBreakdown(list, products),
		Status:      aggregation.CountByStatus(list),
		TopSalesmen: aggregation.Top(salesmen, ChartLimit),
		TopProducts: aggregation.Top(ranking, ChartLimit),
	}
}

// Leaderboard ranks every salesman with sales in snap and splits the podium
// from the rest.
func Leaderboard(snap sales.Snapshot) report.Leaderboard {
	entries := aggregation.Leaderboard(snap.Sales, snap.Salesmen)
	top := aggregation.Top(entries, PodiumSize)
	return report.Leaderboard{
		Entries:  entries,
		TopThree: top,
		Rest:     entries[len(top):],
	}
}

func dayPtr(day string) *time.Time {
	if day == "" {
		return nil
	}
	t, err := sales.ParseDay(day)
	if err != nil {
		return nil
	}
	return &t
}
