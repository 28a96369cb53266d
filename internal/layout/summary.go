package layout

import (
	"fmt"

	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

const (
	summaryRowHeight  = 14.0
	summaryLineHeight = 11.0
	panelLineHeight   = 15.0
	panelPadding      = 8.0
	panelGap          = 14.0

	maxMonthDays = 31
)

var summaryColumns = []Column{
	{Header: "Date", Width: 110},
	{Header: "Hours", Width: 90},
	{Header: "Type", Width: 160},
}

// RenderSummary draws the month statement: one grid row per calendar day
// followed by a bordered totals panel. It draws on the current page, starting
// one if none exists yet.
func (e *Engine) RenderSummary(m aggregate.Month) {
	e.ensurePage()

	t := &table{columns: summaryColumns}
	t.x = e.centered(t.width())

	e.setHeading(t.x, summaryHeading(e.opts, m.Key))
	e.beginTable(t)

	for _, d := range m.Days {
		e.reserve(summaryRowHeight)
		e.drawRow([][]string{
			cell(timecalc.DMY(d.Date)),
			cell(d.Hours()),
			cell(d.TypeLabel()),
		}, summaryRowHeight, summaryLineHeight, true)
	}

	e.renderTotalsPanel(t, m.Totals)
}

func summaryHeading(opts Options, key string) []headingLine {
	return []headingLine{
		{text: opts.Brand, size: 18, bold: true, after: 8},
		{text: "Summary (monthly statement) - " + timecalc.MonthLabel(key), size: 10, after: 4},
		{text: "Generated: " + timecalc.FormatDMY(opts.Generated), size: 10, after: 12},
	}
}

// MinPageSize returns the smallest page that holds the report: the detail
// table fits across it and a 31-day summary with its totals panel fits on a
// single page.
func MinPageSize() (float64, float64) {
	w := (&table{columns: detailColumns}).width()
	if sw := (&table{columns: summaryColumns}).width(); sw > w {
		w = sw
	}

	var heading float64
	for _, l := range summaryHeading(Options{}, "") {
		heading += l.size + l.after
	}
	norm := 1
	panel := panelHeight(len(TotalsLines(aggregate.Totals{NormDayMinutes: &norm})))
	h := marginTop + heading + headerHeight + maxMonthDays*summaryRowHeight + panelGap + panel + marginBottom
	return w, h
}

// FitsPage reports whether a w by h page is at least MinPageSize.
func FitsPage(w, h float64) bool {
	minW, minH := MinPageSize()
	return w >= minW && h >= minH
}

func panelHeight(lines int) float64 {
	return float64(lines)*panelLineHeight + 2*panelPadding
}

// TotalsLines returns the lines of the totals panel, title first.
func TotalsLines(t aggregate.Totals) []string {
	return []string{
		"Totals",
		"Worked hours: " + timecalc.FormatHM(t.WorkNetMinutes),
		"Pause: " + timecalc.FormatHM(t.WorkPauseMinutes),
		fmt.Sprintf("Work shifts: %d", t.WorkShifts),
		fmt.Sprintf("Recup days: %d", t.RecupDays),
		fmt.Sprintf("Vacation days: %d", t.VacationDays),
		fmt.Sprintf("Sick days: %d", t.SickDays),
		fmt.Sprintf("Holiday days: %d", t.HolidayDays),
		"Overtime: " + overtimeText(t),
	}
}

// ContextLine is the one-line category and overtime summary repeated at the
// top of every detail page.
func ContextLine(t aggregate.Totals) string {
	return fmt.Sprintf("Recup: %d   Vacation: %d   Sick: %d   Holiday: %d   Overtime: %s",
		t.RecupDays, t.VacationDays, t.SickDays, t.HolidayDays, overtimeText(t))
}

func overtimeText(t aggregate.Totals) string {
	s := timecalc.FormatSignedHM(t.OvertimeMinutes)
	if t.NormDayMinutes != nil {
		s += fmt.Sprintf(" (norm %s/day)", timecalc.FormatHM(*t.NormDayMinutes))
	}
	return s
}

func (e *Engine) renderTotalsPanel(t *table, totals aggregate.Totals) {
	lines := TotalsLines(totals)
	height := panelHeight(len(lines))

	e.active = nil
	e.cur.Y += panelGap
	e.reserve(height)

	top := e.cur.Y
	e.s.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
	e.s.Rect(t.x, top, t.width(), height, false)

	y := top + panelPadding
	for i, l := range lines {
		if i == 0 {
			e.font(true, 12)
		} else {
			e.font(i <= 3, 10)
		}
		y += panelLineHeight
		e.s.Text(t.x+panelPadding, y-4, l)
	}
	e.cur.Y = top + height
}
