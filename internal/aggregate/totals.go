package aggregate

import (
	"sort"

	"github.com/Tiliavir/shifttap/internal/model"
)

// Totals are computed from exactly the entries handed in; they never carry a
// balance over from earlier exports.
type Totals struct {
	WorkNetMinutes   int
	WorkPauseMinutes int
	WorkShifts       int

	// Category counts are distinct dates, not entries.
	RecupDays    int
	VacationDays int
	SickDays     int
	HolidayDays  int

	OvertimeMinutes int
	// NormDayMinutes is the norm used for OvertimeMinutes, nil when overtime
	// is disabled.
	NormDayMinutes *int
}

// ComputeTotals sums work time over work entries and counts, per non-work
// category, the number of distinct dates carrying at least one such entry.
// Overtime fields are left zero; see ComputeOvertimeDelta.
func ComputeTotals(entries []model.TimeEntry) Totals {
	var t Totals
	days := map[model.EntryType]map[string]bool{
		model.TypeRecup:    {},
		model.TypeVacation: {},
		model.TypeSick:     {},
		model.TypeHoliday:  {},
	}

	for _, e := range entries {
		if e.Type.IsWork() {
			t.WorkNetMinutes += e.NetMinutes
			t.WorkPauseMinutes += e.PauseMinutes
			t.WorkShifts++
			continue
		}
		if set, ok := days[e.Type]; ok {
			set[e.Date] = true
		}
	}

	t.RecupDays = len(days[model.TypeRecup])
	t.VacationDays = len(days[model.TypeVacation])
	t.SickDays = len(days[model.TypeSick])
	t.HolidayDays = len(days[model.TypeHoliday])
	return t
}

// ComputeOvertimeDelta compares the entries against a daily norm. With no
// norm the feature is off and (0, nil) is returned.
//
// For each distinct date: a day with any work adds its summed net minutes
// minus the norm, once. Independently, every recup entry on that day
// subtracts the norm. Recup is counted per entry, not per day.
func ComputeOvertimeDelta(norm *int, entries []model.TimeEntry) (int, *int) {
	if norm == nil {
		return 0, nil
	}
	n := *norm

	type day struct {
		work   bool
		net    int
		recups int
	}
	byDate := map[string]*day{}
	for _, e := range entries {
		d, ok := byDate[e.Date]
		if !ok {
			d = &day{}
			byDate[e.Date] = d
		}
		switch e.Type {
		case model.TypeWork:
			d.work = true
			d.net += e.NetMinutes
		case model.TypeRecup:
			d.recups++
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	delta := 0
	for _, date := range dates {
		d := byDate[date]
		if d.work {
			delta += d.net - n
		}
		delta -= d.recups * n
	}
	used := n
	return delta, &used
}
