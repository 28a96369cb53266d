package layout_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/layout"
	"github.com/Tiliavir/shifttap/internal/model"
)

var opts = layout.Options{
	Brand:     "Shift-Tap",
	Generated: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
}

func norm(n int) *int { return &n }

func month(key string, n *int, entries ...model.TimeEntry) aggregate.Month {
	return aggregate.BuildMonth(aggregate.MonthGroup{Key: key, Entries: entries}, n)
}

func TestRowHeight(t *testing.T) {
	assert.Equal(t, 14.0, layout.RowHeight(0))
	assert.Equal(t, 15.0, layout.RowHeight(1))
	assert.Equal(t, 37.0, layout.RowHeight(3))
}

func TestRenderSummary(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)

	e.RenderSummary(month("2026-02", norm(480),
		model.TimeEntry{Date: "2026-02-10", Type: model.TypeWork, NetMinutes: 300},
		model.TimeEntry{Date: "2026-02-10", Type: model.TypeWork, NetMinutes: 200},
		model.TimeEntry{Date: "2026-02-11", Type: model.TypeVacation},
		model.TimeEntry{Date: "2026-02-11", Type: model.TypeSick},
	))

	require.Equal(t, 1, e.Pages(), "summary must fit on one page")
	assert.Equal(t, 1, s.count(1, "Shift-Tap"))
	assert.Equal(t, 1, s.count(1, "Summary (monthly statement) - 02/2026"))
	assert.Equal(t, 1, s.count(1, "Generated: 01/03/2026"))
	for _, h := range []string{"Date", "Hours", "Type"} {
		assert.Equal(t, 1, s.count(1, h), "header %q", h)
	}

	for day := 1; day <= 28; day++ {
		assert.Equal(t, 1, s.count(1, fmt.Sprintf("%02d/02/2026", day)), "day %d", day)
	}
	assert.Equal(t, 0, s.count(1, "29/02/2026"))

	assert.True(t, s.has("8:20"), "worked hours of 10/02")
	assert.True(t, s.has("VACATION, SICK"), "type label of 11/02")

	for _, l := range []string{
		"Totals",
		"Worked hours: 8:20",
		"Pause: 0:00",
		"Work shifts: 2",
		"Recup days: 0",
		"Vacation days: 1",
		"Sick days: 1",
		"Holiday days: 0",
		"Overtime: +0:20 (norm 8:00/day)",
	} {
		assert.True(t, s.has(l), "totals line %q", l)
	}

	var filled []float64
	for _, r := range s.rects {
		if r.fill {
			filled = append(filled, r.w)
		}
	}
	assert.Equal(t, []float64{360}, filled, "one shaded header row spanning the grid")

	for _, tc := range s.texts {
		assert.LessOrEqual(t, tc.y, a4Height-40, "text %q below the bottom margin", tc.s)
	}
}

func TestRenderSummaryWithoutEntriesOrNorm(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	e.RenderSummary(month("2024-02", nil))

	assert.Equal(t, 1, e.Pages())
	assert.Equal(t, 1, s.count(1, "Date"))
	assert.Equal(t, 1, s.count(1, "29/02/2024"))
	assert.True(t, s.has("Worked hours: 0:00"))
	assert.True(t, s.has("Overtime: 0:00"))
	for _, tc := range s.texts {
		assert.NotContains(t, tc.s, "norm")
	}
}

func TestRenderSummaryWorkedDayHidesTypeLabel(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	e.RenderSummary(month("2026-02", norm(480),
		model.TimeEntry{Date: "2026-02-10", Type: model.TypeWork, NetMinutes: 480},
		model.TimeEntry{Date: "2026-02-10", Type: model.TypeRecup},
		model.TimeEntry{Date: "2026-02-11", Type: model.TypeRecup},
	))

	assert.Equal(t, 1, s.count(1, "8:00"))
	assert.Equal(t, 1, s.count(1, "RECUP"), "only the day without worked hours is labelled")

	var row10, recup textCall
	for _, tc := range s.texts {
		switch tc.s {
		case "10/02/2026":
			row10 = tc
		case "RECUP":
			recup = tc
		}
	}
	assert.Greater(t, recup.y, row10.y, "label belongs to 11/02")
	assert.True(t, s.has("Recup days: 2"))
}

func TestMinPageSize(t *testing.T) {
	w, h := layout.MinPageSize()
	assert.Equal(t, 535.0, w, "detail table width")
	assert.InDelta(t, 759, h, 0.01)

	assert.True(t, layout.FitsPage(a4Width, a4Height))
	assert.True(t, layout.FitsPage(612, 792), "Letter")
	assert.False(t, layout.FitsPage(419.53, 595.28), "A5")
}

func TestFullMonthSummaryStaysOnMinimumPage(t *testing.T) {
	w, h := layout.MinPageSize()
	s := newFakeSurface()
	s.w, s.h = w, h
	e := layout.New(s, opts)

	var entries []model.TimeEntry
	for day := 1; day <= 31; day++ {
		entries = append(entries, model.TimeEntry{Date: fmt.Sprintf("2026-01-%02d", day), Type: model.TypeWork, NetMinutes: 480})
	}
	e.RenderSummary(month("2026-01", norm(480), entries...))
	assert.Equal(t, 1, e.Pages())

	e.RenderDetail(month("2026-01", norm(480), entries...))
	for _, r := range s.rects {
		assert.GreaterOrEqual(t, r.x, 0.0)
		assert.LessOrEqual(t, r.x+r.w, w+0.001)
	}
}

func TestContextLine(t *testing.T) {
	m := month("2026-02", norm(450),
		model.TimeEntry{Date: "2026-02-02", Type: model.TypeRecup},
		model.TimeEntry{Date: "2026-02-03", Type: model.TypeHoliday},
	)
	assert.Equal(t,
		"Recup: 1   Vacation: 0   Sick: 0   Holiday: 1   Overtime: -7:30 (norm 7:30/day)",
		layout.ContextLine(m.Totals))
}

// longMonth returns n work entries spread over February, each with a note
// long enough to wrap onto several lines. Entry i has Start "sNN" and every
// note word is "wNN" so its texts can be traced back to it.
func longMonth(n int) aggregate.Month {
	var entries []model.TimeEntry
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%02d", i)
		words := strings.Repeat("w"+id+" \t ", 20+i%3*15)
		entries = append(entries, model.TimeEntry{
			Date:       fmt.Sprintf("2026-02-%02d", i%28+1),
			Type:       model.TypeWork,
			Start:      "s" + id,
			End:        "17:00",
			NetMinutes: 450,
			Note:       words,
			CreatedAt:  int64(i),
		})
	}
	return month("2026-02", norm(480), entries...)
}

func TestRenderDetailPaginates(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	m := longMonth(60)
	e.RenderDetail(m)

	pages := e.Pages()
	require.Greater(t, pages, 2, "detail list should overflow onto several pages")

	title := "Detail list - 02/2026"
	context := layout.ContextLine(m.Totals)
	var header *rectCall
	for p := 1; p <= pages; p++ {
		assert.Equal(t, 1, s.count(p, "Note"), "header once on page %d", p)
		assert.Equal(t, 1, s.count(p, title), "title once on page %d", p)
		assert.Equal(t, 1, s.count(p, context), "context line once on page %d", p)

		var filled []rectCall
		for _, r := range s.rects {
			if r.page == p && r.fill {
				filled = append(filled, r)
			}
		}
		require.Len(t, filled, 1, "one shaded header on page %d", p)
		if header == nil {
			header = &filled[0]
			continue
		}
		assert.Equal(t, header.x, filled[0].x, "header x on page %d", p)
		assert.Equal(t, header.y, filled[0].y, "header y on page %d", p)
		assert.Equal(t, header.w, filled[0].w, "header width on page %d", p)
		assert.Equal(t, header.h, filled[0].h, "header height on page %d", p)
	}

	entryPage := map[string]int{}
	for _, tc := range s.texts {
		if strings.HasPrefix(tc.s, "s") && len(tc.s) == 3 {
			entryPage[tc.s[1:]] = tc.page
		}
	}
	require.Len(t, entryPage, 60)

	seen := map[string]int{}
	for _, tc := range s.texts {
		assert.LessOrEqual(t, tc.y, a4Height-40, "text %q below the bottom margin", tc.s)
		if !strings.HasPrefix(tc.s, "w") {
			continue
		}
		id := tc.s[1:3]
		seen[id]++
		assert.Equal(t, entryPage[id], tc.page, "note of entry %s split from its row", id)
	}
	assert.Len(t, seen, 60, "every note was drawn")
}

func TestRenderDetailOrdersEntries(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	e.RenderDetail(aggregate.Month{Key: "2026-02", Entries: []model.TimeEntry{
		{Date: "2026-02-05", Start: "third", CreatedAt: 1},
		{Date: "2026-02-04", Start: "second", CreatedAt: 9},
		{Date: "2026-02-04", Start: "first", CreatedAt: 3},
	}})

	var order []string
	for _, tc := range s.texts {
		switch tc.s {
		case "first", "second", "third":
			order = append(order, tc.s)
		}
	}
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRenderDetailCells(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	e.RenderDetail(month("2026-02", nil,
		model.TimeEntry{Date: "2026-02-04", Type: model.TypeWork, Start: "08:00", End: "16:30",
			NetMinutes: 480, PauseMinutes: 30, Note: "  line\n\nwith   gaps "},
		model.TimeEntry{Date: "2026-02-05", Type: model.TypeVacation},
	))

	for _, want := range []string{"04/02/2026", "Work", "08:00", "16:30", "30m", "8:00", "line with gaps", "05/02/2026", "Vacation"} {
		assert.True(t, s.has(want), "cell %q", want)
	}
	assert.False(t, s.has("0:00"), "non-work entry without minutes shows no net time")
}

func TestRenderDetailTruncatesOversizedNote(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	e.RenderDetail(month("2026-02", nil, model.TimeEntry{
		Date: "2026-02-04", Type: model.TypeWork, Start: "big",
		Note: strings.Repeat("lorem ipsum ", 2000),
	}))

	assert.Equal(t, 1, e.Pages(), "an oversized row stays on one page")
	last := s.texts[len(s.texts)-1]
	assert.True(t, strings.HasSuffix(last.s, "..."), "last note line %q ends with an ellipsis", last.s)
	for _, tc := range s.texts {
		assert.LessOrEqual(t, tc.y, a4Height-40, "text %q below the bottom margin", tc.s)
	}
}

func TestSummaryThenDetailPageSequence(t *testing.T) {
	s := newFakeSurface()
	e := layout.New(s, opts)
	m := month("2026-02", nil, model.TimeEntry{Date: "2026-02-04", Type: model.TypeWork, NetMinutes: 60})

	e.RenderSummary(m)
	e.RenderDetail(m)
	e.PageBreak()
	e.RenderSummary(m)

	assert.Equal(t, 3, e.Pages())
	assert.Equal(t, 1, s.count(1, "Hours"))
	assert.Equal(t, 1, s.count(2, "Note"))
	assert.Equal(t, 1, s.count(3, "Hours"))
	assert.Equal(t, 0, s.count(3, "Note"))
}
