package timecalc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the storage format of entry dates.
	DateLayout = "2006-01-02"
	// MonthLayout is the month key format used for grouping.
	MonthLayout = "2006-01"
)

// ParseDate parses a YYYY-MM-DD date at local midnight. Parsing in the local
// zone keeps a date from shifting by a day when compared with other dates.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// ParseMonthKey splits a YYYY-MM key into year and month.
func ParseMonthKey(key string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthKey returns the YYYY-MM key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// DaysInMonth returns the number of days in the given month, leap years included.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthRange returns the first and last day of the month containing t, at
// midnight in t's location.
func MonthRange(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

// MonthLabel turns "2026-02" into "02/2026". Malformed keys are returned as is.
func MonthLabel(key string) string {
	y, m, ok := strings.Cut(key, "-")
	if !ok || y == "" || m == "" {
		return key
	}
	return m + "/" + y
}

// DMY turns "2026-02-10" into "10/02/2026". Malformed dates are returned as is.
func DMY(ymd string) string {
	parts := strings.Split(ymd, "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return ymd
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormatDMY formats t as DD/MM/YYYY.
func FormatDMY(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatHM formats minutes as H:MM, with a leading "-" for negative values.
func FormatHM(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%d:%02d", sign, minutes/60, minutes%60)
}

// FormatSignedHM is FormatHM with an explicit "+" for positive values.
func FormatSignedHM(minutes int) string {
	if minutes > 0 {
		return "+" + FormatHM(minutes)
	}
	return FormatHM(minutes)
}

// FormatPause renders a pause as "30m", or "" when there was none.
func FormatPause(minutes int) string {
	if minutes == 0 {
		return ""
	}
	return strconv.Itoa(minutes) + "m"
}

// OutputName builds "<product>_YYYY-MM-DD.<ext>" for the given day.
func OutputName(product string, t time.Time, ext string) string {
	return fmt.Sprintf("%s_%04d-%02d-%02d.%s", product, t.Year(), int(t.Month()), t.Day(), ext)
}
