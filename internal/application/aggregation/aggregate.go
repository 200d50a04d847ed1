// Package aggregation groups sales by a key and reduces each group to revenue,
// quantity, deal count and average deal size. It also builds the ranked
// salesman and product tables, category breakdowns and time-bucketed trends.
package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// Metrics are the reduced values of one group
type Metrics struct {
	Amount   decimal.Decimal `json:"amount"`
	Quantity int64           `json:"quantity"`
	Count    int64           `json:"count"`
}

// Average returns Amount / Count, or zero for an empty group
func (m Metrics) Average() decimal.Decimal {
	if m.Count == 0 {
		return decimal.Zero
	}
	return m.Amount.Div(decimal.NewFromInt(m.Count))
}

// Plus returns the element-wise sum of two metrics
func (m Metrics) Plus(o Metrics) Metrics {
	return Metrics{
		Amount:   m.Amount.Add(o.Amount),
		Quantity: m.Quantity + o.Quantity,
		Count:    m.Count + o.Count,
	}
}

func (m *Metrics) add(s sales.Sale) {
	m.Amount = m.Amount.Add(s.Amount)
	m.Quantity += int64(s.Quantity)
	m.Count++
}

// Group is the reduced result for one key
type Group struct {
	Key string `json:"key"`
	Metrics
}

// TrendPoint converts the group to a time-series point
func (g Group) TrendPoint() report.TrendPoint {
	return report.TrendPoint{
		Period:   g.Key,
		Revenue:  g.Amount,
		Quantity: g.Quantity,
		Deals:    g.Count,
	}
}

// KeyFunc maps a sale to its group key. ok=false drops the sale from the aggregation.
type KeyFunc func(s sales.Sale) (key string, ok bool)

// BySalesman keys by salesman id
func BySalesman(s sales.Sale) (string, bool) { return string(s.SalesmanID), true }

// ByProduct keys by product id
func ByProduct(s sales.Sale) (string, bool) { return string(s.ProductID), true }

// ByDay keys by calendar day (YYYY-MM-DD)
func ByDay(s sales.Sale) (string, bool) { return s.Day() }

// ByMonth keys by calendar month (YYYY-MM)
func ByMonth(s sales.Sale) (string, bool) {
	if s.Date.IsZero() {
		return "", false
	}
	return s.Month(), true
}

// ByCategory keys by the category of the sale's product. A sale whose product
// cannot be resolved has no category and is left out.
func ByCategory(products ProductIndex) KeyFunc {
	return func(s sales.Sale) (string, bool) {
		p, ok := products[s.ProductID]
		if !ok {
			return "", false
		}
		return p.Category, true
	}
}

// Aggregate groups sales by key and reduces each group. Groups appear in the
// order their key is first seen; keys without sales do not appear.
func Aggregate(list []sales.Sale, key KeyFunc) []Group {
	groups := make([]Group, 0)
	pos := make(map[string]int)
	for _, s := range list {
		k, ok := key(s)
		if !ok {
			continue
		}
		i, seen := pos[k]
		if !seen {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].add(s)
	}
	return groups
}

// Total reduces the whole collection to one set of metrics
func Total(list []sales.Sale) Metrics {
	var m Metrics
	for _, s := range list {
		m.add(s)
	}
	return m
}

// CountByStatus tallies completed and pending sales
func CountByStatus(list []sales.Sale) report.StatusBreakdown {
	var b report.StatusBreakdown
	for _, s := range list {
		switch s.Status {
		case sales.StatusPending:
			b.Pending++
		default:
			b.Completed++
		}
	}
	return b
}

// Top returns the first n rows. It is a plain slice of an already ordered
// sequence and never re-sorts.
func Top[T any](rows []T, n int) []T {
	if n <= 0 {
		return rows[:0]
	}
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}
