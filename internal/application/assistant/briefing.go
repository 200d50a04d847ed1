package assistant

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	reportapp "github.com/Rushi-chippa/SalesERPFullProject/internal/application/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// briefingRows bounds the product and salesman lists in a briefing.
const briefingRows = 5

// Briefing renders the dashboard and leaderboard as compact plain text for a
// language model prompt.
func Briefing(snap sales.Snapshot, now time.Time) string {
	p := message.NewPrinter(language.English)
	dash := reportapp.DashboardSummary(snap, 0, now)
	board := reportapp.Leaderboard(snap)

	var b strings.Builder
	p.Fprintf(&b, "Sales overview as of %s\n", sales.DayKey(now))
	p.Fprintf(&b, "Total revenue: %s\n", money(p, dash.TotalRevenue))
	p.Fprintf(&b, "Total orders: %d\n", dash.TotalOrders)
	p.Fprintf(&b, "Average order value: %s\n", money(p, dash.AvgOrderValue))
	p.Fprintf(&b, "Products: %d, salesmen: %d, customers: %d\n",
		dash.Counts.Products, dash.Counts.Salesmen, dash.Counts.Customers)

	if len(dash.TopProducts) > 0 {
		b.WriteString("Top products by revenue:\n")
		for _, r := range dash.TopProducts {
			p.Fprintf(&b, "%d. %s: %s (%d units)\n", r.Rank, r.ProductName, money(p, r.TotalAmount), r.TotalQuantity)
		}
	}

	if len(board.Entries) > 0 {
		b.WriteString("Top salesmen by revenue:\n")
		for i, r := range board.Entries {
			if i == briefingRows {
				break
			}
			p.Fprintf(&b, "%d. %s: %s across %d deals", r.Rank, r.Name, money(p, r.Revenue), r.Deals)
			if r.Target.IsPositive() {
				p.Fprintf(&b, " (%s%% of target)", r.AchievedPercent.StringFixed(1))
			}
			b.WriteString("\n")
		}
	}

	if len(dash.LastMonths) > 0 {
		b.WriteString("Monthly revenue:\n")
		for _, m := range dash.LastMonths {
			p.Fprintf(&b, "%s: %s\n", m.Period, money(p, m.Revenue))
		}
	}

	if f := dash.Forecast; f.Available() {
		p.Fprintf(&b, "Forecast for %s: %s\n", f.Period, money(p, f.Amount))
	} else {
		p.Fprintf(&b, "Forecast: %s\n", f.Message)
	}
	return b.String()
}

func money(p *message.Printer, d decimal.Decimal) string {
	return p.Sprintf("%.2f", d.InexactFloat64())
}
