package aggregate

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

// DayRow summarises one calendar day of a month.
type DayRow struct {
	Date           string // YYYY-MM-DD
	WorkNetMinutes int
	PauseMinutes   int
	WorkCount      int
	// Types holds each distinct entry type seen that day, in first-seen order.
	// Blank types are recorded too.
	Types []model.EntryType
}

func (r *DayRow) addType(t model.EntryType) {
	for _, seen := range r.Types {
		if seen == t {
			return
		}
	}
	r.Types = append(r.Types, t)
}

// Hours is the worked time as H:MM, or "" when nothing was worked.
func (r DayRow) Hours() string {
	if r.WorkNetMinutes > 0 {
		return timecalc.FormatHM(r.WorkNetMinutes)
	}
	return ""
}

// TypeLabel lists the day's non-work, non-blank types upper-cased and joined
// by ", ". A day with worked hours shows only the hours, so its label is
// empty, as is the label of a day that saw nothing.
func (r DayRow) TypeLabel() string {
	if r.WorkNetMinutes > 0 {
		return ""
	}
	var labels []string
	for _, t := range r.Types {
		if t == "" || t.IsWork() {
			continue
		}
		labels = append(labels, strings.ToUpper(string(t)))
	}
	return strings.Join(labels, ", ")
}

// BuildDayRows returns one row per calendar day of the month key, in date
// order, whether or not the day has entries. Only work entries add to the
// minute totals; every entry records its type. An invalid key yields no rows.
func BuildDayRows(key string, entries []model.TimeEntry) []DayRow {
	year, month, err := timecalc.ParseMonthKey(key)
	if err != nil {
		return nil
	}
	n := timecalc.DaysInMonth(year, month)

	rows := make([]DayRow, n)
	byDate := make(map[string]*DayRow, n)
	for day := 1; day <= n; day++ {
		r := &rows[day-1]
		r.Date = fmt.Sprintf("%s-%02d", key, day)
		byDate[r.Date] = r
	}

	for _, e := range entries {
		r, ok := byDate[e.Date]
		if !ok {
			continue
		}
		r.addType(e.Type)
		if e.Type.IsWork() {
			r.WorkNetMinutes += e.NetMinutes
			r.PauseMinutes += e.PauseMinutes
			r.WorkCount++
		}
	}
	return rows
}
