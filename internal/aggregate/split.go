// Package aggregate groups entries by month and derives the per-day rows,
// totals and overtime delta shown in a report.
package aggregate

import (
	"sort"

	"github.com/Tiliavir/shifttap/internal/model"
)

// MonthGroup is the set of entries falling into one YYYY-MM key.
type MonthGroup struct {
	Key     string
	Entries []model.TimeEntry
}

// SplitByMonth groups entries by the first seven characters of their date.
// Groups are returned in ascending key order; entries inside a group are
// ordered by (date, createdAt) with ties kept in input order.
func SplitByMonth(entries []model.TimeEntry) []MonthGroup {
	index := map[string]int{}
	var groups []MonthGroup
	for _, e := range entries {
		k := monthKeyOf(e.Date)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, MonthGroup{Key: k})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	for i := range groups {
		SortEntries(groups[i].Entries)
	}
	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Key < groups[b].Key })
	return groups
}

// SortEntries orders entries in place by (date, createdAt), stably.
func SortEntries(entries []model.TimeEntry) {
	sort.SliceStable(entries, func(a, b int) bool {
		if entries[a].Date != entries[b].Date {
			return entries[a].Date < entries[b].Date
		}
		return entries[a].CreatedAt < entries[b].CreatedAt
	})
}

func monthKeyOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
