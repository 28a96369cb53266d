package layout

import (
	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

const (
	detailLineHeight   = 11.0
	detailRowPadding   = 4.0
	detailMinRowHeight = 14.0
	noteColumn         = 6
	ellipsis           = "..."
)

var detailColumns = []Column{
	{Header: "Date", Width: 70},
	{Header: "Type", Width: 60},
	{Header: "Start", Width: 40},
	{Header: "End", Width: 40},
	{Header: "Pause", Width: 40},
	{Header: "Net", Width: 45},
	{Header: "Note", Width: 240},
}

// RowHeight is the height of a detail row whose note wraps to n lines.
func RowHeight(n int) float64 {
	h := float64(n)*detailLineHeight + detailRowPadding
	if h < detailMinRowHeight {
		return detailMinRowHeight
	}
	return h
}

// RenderDetail starts a new page and lists every entry of the month, one row
// each, ordered by (date, createdAt). Rows that do not fit the remaining page
// move to a new page, which repeats the title, the context line and the table
// header. A row is never split across pages.
func (e *Engine) RenderDetail(m aggregate.Month) {
	e.PageBreak()

	t := &table{columns: detailColumns}
	t.x = e.centered(t.width())

	e.setHeading(t.x, []headingLine{
		{text: "Detail list - " + timecalc.MonthLabel(m.Key), size: 16, bold: true, after: 6},
		{text: ContextLine(m.Totals), size: 9, after: 10},
	})
	e.beginTable(t)

	entries := append([]model.TimeEntry(nil), m.Entries...)
	aggregate.SortEntries(entries)

	noteWidth := detailColumns[noteColumn].Width - 2*cellPadding
	for _, en := range entries {
		e.font(false, 9)
		note := e.s.SplitText(collapseSpace(en.Note), noteWidth)
		note = e.fitLines(note)

		height := RowHeight(len(note))
		e.reserve(height)
		e.drawRow(detailCells(en, note), height, detailLineHeight, false)
	}
	e.active = nil
}

// fitLines truncates note lines so that the row fits on an empty page. The
// last kept line is marked with an ellipsis.
func (e *Engine) fitLines(lines []string) []string {
	budget := e.freshBudget()
	if RowHeight(len(lines)) <= budget {
		return lines
	}
	n := int((budget - detailRowPadding) / detailLineHeight)
	if n < 1 {
		n = 1
	}
	out := append([]string(nil), lines[:n]...)
	out[n-1] += ellipsis
	return out
}

func detailCells(en model.TimeEntry, note []string) [][]string {
	net := ""
	if en.NetMinutes > 0 || en.Type.IsWork() {
		net = timecalc.FormatHM(en.NetMinutes)
	}
	return [][]string{
		cell(timecalc.DMY(en.Date)),
		cell(string(en.Type)),
		cell(en.Start),
		cell(en.End),
		cell(timecalc.FormatPause(en.PauseMinutes)),
		cell(net),
		note,
	}
}
