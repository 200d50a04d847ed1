package aggregation

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

var hundred = decimal.NewFromInt(100)

// Leaderboard ranks salesmen by revenue, highest first. Only salesmen with at
// least one sale appear. Ties keep the order of the salesman collection; sales
// attributed to a salesman that no longer exists follow, labelled "N/A", in
// order of first appearance. Rank is the 1-based position.
func Leaderboard(list []sales.Sale, salesmen []sales.Salesman) []report.SalesmanPerformance {
	groups := Aggregate(list, BySalesman)
	byID := make(map[string]Group, len(groups))
	for _, g := range groups {
		byID[g.Key] = g
	}

	rows := make([]report.SalesmanPerformance, 0, len(groups))
	known := make(map[string]bool, len(salesmen))
	for i := range salesmen {
		sm := salesmen[i]
		key := string(sm.ID)
		known[key] = true
		g, ok := byID[key]
		if !ok {
			continue
		}
		rows = append(rows, performanceRow(g, &sm))
	}
	for _, g := range groups {
		if !known[g.Key] {
			rows = append(rows, performanceRow(g, nil))
		}
	}

	slices.SortStableFunc(rows, func(a, b report.SalesmanPerformance) int {
		return b.Revenue.Cmp(a.Revenue)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func performanceRow(g Group, sm *sales.Salesman) report.SalesmanPerformance {
	row := report.SalesmanPerformance{
		SalesmanID:      sales.ID(g.Key),
		Name:            sales.SalesmanName(sm),
		Revenue:         g.Amount,
		Quantity:        g.Quantity,
		Deals:           g.Count,
		AvgDealSize:     g.Average(),
		Target:          decimal.Zero,
		AchievedPercent: decimal.Zero,
	}
	if sm != nil {
		row.Region = sm.Region
		row.Target = sm.TargetOrZero()
	}
	if row.Target.IsPositive() {
		row.AchievedPercent = row.Revenue.Div(row.Target).Mul(hundred).Round(2)
	}
	return row
}

// ProductRanking ranks products by revenue, highest first, ties in order of
// first sale. A product that no longer resolves is labelled "Unknown".
func ProductRanking(list []sales.Sale, products ProductIndex) []report.ProductSalesRanking {
	groups := Aggregate(list, ByProduct)
	rows := make([]report.ProductSalesRanking, len(groups))
	for i, g := range groups {
		p := products.Lookup(sales.ID(g.Key))
		rows[i] = report.ProductSalesRanking{
			ProductID:     sales.ID(g.Key),
			ProductName:   sales.DisplayName(p),
			TotalQuantity: g.Quantity,
			TotalAmount:   g.Amount,
			OrderCount:    g.Count,
		}
		if p != nil {
			rows[i].CategoryName = p.Category
		}
	}

	slices.SortStableFunc(rows, func(a, b report.ProductSalesRanking) int {
		return b.TotalAmount.Cmp(a.TotalAmount)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// CategoryBreakdown attributes revenue to product categories in order of first
// appearance. Sales whose product cannot be resolved are excluded.
func CategoryBreakdown(list []sales.Sale, products ProductIndex) []report.CategoryBreakdown {
	groups := Aggregate(list, ByCategory(products))
	out := make([]report.CategoryBreakdown, len(groups))
	for i, g := range groups {
		out[i] = report.CategoryBreakdown{
			Category: g.Key,
			Revenue:  g.Amount,
			Quantity: g.Quantity,
			Deals:    g.Count,
		}
	}
	return out
}
