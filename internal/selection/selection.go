// Package selection resolves an export scope into the entries it covers.
package selection

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

// Mode selects how a Request is interpreted.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeRange Mode = "range"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeMonth:
		return ModeMonth, nil
	case ModeRange:
		return ModeRange, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be %q or %q", s, ModeMonth, ModeRange)
}

// Request is an export scope: a month key, or an inclusive date range.
type Request struct {
	Mode  Mode
	Month string // YYYY-MM, used with ModeMonth
	From  string // YYYY-MM-DD, used with ModeRange
	To    string // YYYY-MM-DD, used with ModeRange
}

// Filter returns the entries inside the requested scope, preserving input
// order. An incomplete request selects nothing rather than failing.
func Filter(entries []model.TimeEntry, req Request) []model.TimeEntry {
	if req.Mode == ModeMonth {
		if req.Month == "" {
			return nil
		}
		prefix := req.Month + "-"
		var out []model.TimeEntry
		for _, e := range entries {
			if strings.HasPrefix(e.Date, prefix) {
				out = append(out, e)
			}
		}
		return out
	}

	if req.From == "" || req.To == "" {
		return nil
	}
	from, err := timecalc.ParseDate(req.From)
	if err != nil {
		return nil
	}
	to, err := timecalc.ParseDate(req.To)
	if err != nil {
		return nil
	}
	if from.After(to) {
		from, to = to, from
	}

	var out []model.TimeEntry
	for _, e := range entries {
		d, err := timecalc.ParseDate(e.Date)
		if err != nil {
			continue
		}
		if !d.Before(from) && !d.After(to) {
			out = append(out, e)
		}
	}
	return out
}

// Months returns the distinct, well-formed month keys present in entries,
// ascending.
func Months(entries []model.TimeEntry) []string {
	seen := map[string]bool{}
	var keys []string
	for _, e := range entries {
		if len(e.Date) < 7 {
			continue
		}
		k := e.Date[:7]
		if _, _, err := timecalc.ParseMonthKey(k); err != nil {
			continue
		}
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// DefaultRange returns a range request spanning the month containing now.
func DefaultRange(now time.Time) Request {
	first, last := timecalc.MonthRange(now)
	return Request{
		Mode: ModeRange,
		From: first.Format(timecalc.DateLayout),
		To:   last.Format(timecalc.DateLayout),
	}
}
