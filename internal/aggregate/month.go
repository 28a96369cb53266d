package aggregate

import "github.com/Tiliavir/shifttap/internal/model"

// Month is everything the report needs for one month group. The summary and
// detail pages both render from the same Month so they always agree.
type Month struct {
	Key     string
	Entries []model.TimeEntry
	Days    []DayRow
	Totals  Totals
}

// BuildMonth derives day rows, totals and the overtime delta for a group.
func BuildMonth(g MonthGroup, norm *int) Month {
	totals := ComputeTotals(g.Entries)
	totals.OvertimeMinutes, totals.NormDayMinutes = ComputeOvertimeDelta(norm, g.Entries)
	return Month{
		Key:     g.Key,
		Entries: g.Entries,
		Days:    BuildDayRows(g.Key, g.Entries),
		Totals:  totals,
	}
}
