package aggregation

import (
	"sort"
	"time"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// DailyTrend returns one group per calendar day of the given month, including
// days without sales (zero metrics). Sales dated outside the month are ignored.
// This is the only aggregation that fills gaps.
func DailyTrend(list []sales.Sale, year int, month time.Month) []Group {
	days := sales.DaysIn(year, month)
	out := make([]Group, days)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i].Key = sales.DayKey(first.AddDate(0, 0, i))
	}
	for _, s := range list {
		if s.Date.IsZero() || s.Date.Year() != year || s.Date.Month() != month {
			continue
		}
		out[s.Date.Day()-1].add(s)
	}
	return out
}

// MonthlyTrend groups by calendar month, oldest first. Months without sales are omitted.
func MonthlyTrend(list []sales.Sale) []Group {
	groups := Aggregate(list, ByMonth)
	SortByKey(groups)
	return groups
}

// DayTrend groups by calendar day, oldest first. Days without sales are omitted.
func DayTrend(list []sales.Sale) []Group {
	groups := Aggregate(list, ByDay)
	SortByKey(groups)
	return groups
}

// LastMonths returns the n most recent months that have sales, oldest first.
// It feeds the dashboard's forecast chart and history.
func LastMonths(list []sales.Sale, n int) []Group {
	months := MonthlyTrend(list)
	if n <= 0 {
		return nil
	}
	if len(months) > n {
		months = months[len(months)-n:]
	}
	return months
}

// SortByKey orders groups by key ascending. Day and month keys sort chronologically.
func SortByKey(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
}

// TrendPoints converts groups to time-series points
func TrendPoints(groups []Group) []report.TrendPoint {
	out := make([]report.TrendPoint, len(groups))
	for i, g := range groups {
		out[i] = g.TrendPoint()
	}
	return out
}
