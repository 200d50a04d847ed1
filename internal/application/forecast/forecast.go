// Package forecast extrapolates next-period revenue from the last two periods.
//
// This is a naive single-step growth projection, not a statistical model. It is
// only a fallback: when the sales backend supplies its own prediction, that
// prediction is used instead (see Resolve).
package forecast

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
)

// NotEnoughData is the message attached to a forecast that could not be made
const NotEnoughData = "Not enough data for prediction"

// DefaultGrowth is applied when there is a single period or the previous period is zero.
var DefaultGrowth = decimal.NewFromFloat(0.10)

// Period is one historical bucket, oldest first in any sequence passed here
type Period struct {
	Period string
	Amount decimal.Decimal
}

// Next predicts the amount of the period following the last one. ok is false
// when periods is empty.
//
//	one period:   round(last × 1.10)
//	two or more:  g = (last − prev) / prev, or 0.10 when prev is zero
//	              round(last × (1 + g))
func Next(periods []Period) (decimal.Decimal, bool) {
	if len(periods) == 0 {
		return decimal.Zero, false
	}
	last := periods[len(periods)-1].Amount
	growth := DefaultGrowth
	if len(periods) >= 2 {
		prev := periods[len(periods)-2].Amount
		if !prev.IsZero() {
			growth = last.Sub(prev).Div(prev)
		}
	}
	return last.Mul(decimal.NewFromInt(1).Add(growth)).Round(0), true
}

// Local builds a forecast from trailing period totals. period names the
// predicted bucket, e.g. the next month key.
func Local(periods []Period, period string) report.Forecast {
	amount, ok := Next(periods)
	if !ok {
		return report.Forecast{Source: report.ForecastNone, Amount: decimal.Zero, Message: NotEnoughData}
	}
	return report.Forecast{Source: report.ForecastLocal, Period: period, Amount: amount}
}

// Resolve prefers the server prediction and falls back to the local estimate.
func Resolve(server *report.Prediction, local report.Forecast) report.Forecast {
	if next, ok := server.Next(); ok {
		period := next.Date
		if t, err := sales.ParseTimestamp(next.Date); err == nil {
			period = sales.MonthKey(t)
		}
		return report.Forecast{Source: report.ForecastServer, Period: period, Amount: next.PredictedAmount}
	}
	return local
}

// NextMonth returns the month key following now
func NextMonth(now time.Time) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return sales.MonthKey(first.AddDate(0, 1, 0))
}
