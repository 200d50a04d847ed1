package forecast

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
)

func periods(amounts ...int64) []Period {
	out := make([]Period, len(amounts))
	for i, a := range amounts {
		out[i] = Period{Amount: decimal.NewFromInt(a)}
	}
	return out
}

func TestNext(t *testing.T) {
	_, ok := Next(nil)
	assert.False(t, ok)

	tests := []struct {
		name    string
		amounts []int64
		want    string
	}{
		{"single period", []int64{100}, "110"},
		{"growth from last two", []int64{100, 150}, "225"},
		{"zero previous period", []int64{0, 80}, "88"},
		{"decline", []int64{200, 100}, "50"},
		{"only last two count", []int64{5, 100, 150}, "225"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Next(periods(tt.amounts...))
			require.True(t, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNext_Rounds(t *testing.T) {
	got, ok := Next(periods(3, 7))
	require.True(t, ok)
	// 7 × (1 + 4/3) = 16.333…
	assert.Equal(t, "16", got.String())
}

func TestLocal(t *testing.T) {
	f := Local(nil, "2024-05")
	assert.Equal(t, report.ForecastNone, f.Source)
	assert.Equal(t, NotEnoughData, f.Message)
	assert.False(t, f.Available())

	f = Local(periods(100), "2024-05")
	assert.Equal(t, report.ForecastLocal, f.Source)
	assert.Equal(t, "2024-05", f.Period)
	assert.Equal(t, "110", f.Amount.String())
}

func TestResolve(t *testing.T) {
	local := Local(periods(100), "2024-05")

	t.Run("server prediction wins", func(t *testing.T) {
		server := &report.Prediction{Forecast: []report.PredictedPoint{
			{Date: "2024-05-01", PredictedAmount: decimal.NewFromFloat(321.5)},
			{Date: "2024-06-01", PredictedAmount: decimal.NewFromInt(400)},
		}}
		f := Resolve(server, local)
		assert.Equal(t, report.ForecastServer, f.Source)
		assert.Equal(t, "2024-05", f.Period)
		assert.Equal(t, "321.5", f.Amount.String())
	})

	t.Run("empty server forecast falls back", func(t *testing.T) {
		assert.Equal(t, local, Resolve(&report.Prediction{}, local))
		assert.Equal(t, local, Resolve(nil, local))
	})
}

func TestNextMonth(t *testing.T) {
	assert.Equal(t, "2025-01", NextMonth(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03", NextMonth(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}
