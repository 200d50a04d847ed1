package report

import (
	"fmt"
	"time"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/sales"
	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/shared"
)

// Range presets offered by the sales report screen.
const (
	Range7Days  = "7d"
	Range30Days = "30d"
	Range90Days = "90d"
	RangeAll    = "all"
)

var presetDays = map[string]int{
	Range7Days:  7,
	Range30Days: 30,
	Range90Days: 90,
}

// Range selects the sales a report covers: either a preset counted back from
// a caller-supplied now, or explicit calendar days. Both bounds are inclusive
// and either may be open.
type Range struct {
	Preset string
	From   string
	To     string
}

// ParseRange validates query input. A preset excludes explicit bounds; an
// empty input selects everything.
func ParseRange(preset, from, to string) (Range, error) {
	if preset != "" {
		if preset != RangeAll {
			if _, ok := presetDays[preset]; !ok {
				return Range{}, shared.NewValidationError(fmt.Sprintf("unknown range %q, expected 7d, 30d, 90d or all", preset))
			}
		}
		if from != "" || to != "" {
			return Range{}, shared.NewValidationError("range cannot be combined with start_date or end_date")
		}
		return Range{Preset: preset}, nil
	}
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := sales.ParseDay(d); err != nil {
			return Range{}, shared.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", d))
		}
	}
	if from != "" && to != "" && from > to {
		return Range{}, shared.NewValidationError("start_date must not be after end_date")
	}
	return Range{From: from, To: to}, nil
}

// Bounds resolves the range to day keys. A preset of n days starts n days
// before now and is open-ended.
func (r Range) Bounds(now time.Time) (from, to string) {
	if days, ok := presetDays[r.Preset]; ok {
		return sales.DayKey(now.AddDate(0, 0, -days)), ""
	}
	if r.Preset == RangeAll {
		return "", ""
	}
	return r.From, r.To
}

// Label names the range in report output
func (r Range) Label() string {
	switch {
	case r.Preset != "":
		return r.Preset
	case r.From == "" && r.To == "":
		return RangeAll
	}
	return r.From + ".." + r.To
}
