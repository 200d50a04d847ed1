package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name             string
		preset, from, to string
		want             Range
		wantErr          bool
	}{
		{name: "empty selects all", want: Range{}},
		{name: "preset", preset: "30d", want: Range{Preset: "30d"}},
		{name: "all", preset: "all", want: Range{Preset: "all"}},
		{name: "explicit", from: "2024-01-01", to: "2024-01-31", want: Range{From: "2024-01-01", To: "2024-01-31"}},
		{name: "open end", from: "2024-01-01", want: Range{From: "2024-01-01"}},
		{name: "unknown preset", preset: "1y", wantErr: true},
		{name: "preset with dates", preset: "7d", from: "2024-01-01", wantErr: true},
		{name: "bad date", from: "01/02/2024", wantErr: true},
		{name: "reversed", from: "2024-02-01", to: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRange(tt.preset, tt.from, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, shared.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRange_Bounds(t *testing.T) {
	now := time.Date(2024, 3, 31, 18, 0, 0, 0, time.UTC)

	from, to := Range{Preset: Range30Days}.Bounds(now)
	assert.Equal(t, "2024-03-01", from)
	assert.Empty(t, to)

	from, to = Range{Preset: RangeAll}.Bounds(now)
	assert.Empty(t, from)
	assert.Empty(t, to)

	from, to = Range{From: "2024-01-01", To: "2024-01-31"}.Bounds(now)
	assert.Equal(t, "2024-01-01", from)
	assert.Equal(t, "2024-01-31", to)
}

func TestRange_Label(t *testing.T) {
	assert.Equal(t, "all", Range{}.Label())
	assert.Equal(t, "90d", Range{Preset: "90d"}.Label())
	assert.Equal(t, "2024-01-01..", Range{From: "2024-01-01"}.Label())
}
