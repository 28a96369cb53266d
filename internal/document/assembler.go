// Package document turns a state snapshot and a selection into a finished
// multi-month PDF report.
package document

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/Tiliavir/shifttap/internal/aggregate"
	"github.com/Tiliavir/shifttap/internal/layout"
	applog "github.com/Tiliavir/shifttap/internal/log"
	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/selection"
	"github.com/Tiliavir/shifttap/internal/storage"
	"github.com/Tiliavir/shifttap/internal/timecalc"
)

// DefaultBrand is the product name used for titles and file names.
const DefaultBrand = "Shift-Tap"

// Canvas is a drawing surface that can serialise itself once drawing is
// done.
type Canvas interface {
	layout.Surface
	Output(w io.Writer) error
}

// Opener obtains a fresh Canvas for one export.
type Opener func() (Canvas, error)

// Options configures an Assembler.
type Options struct {
	// Open provides the drawing surface. Required.
	Open Opener
	// OutputDir receives the finished file.
	OutputDir string
	// Brand defaults to DefaultBrand.
	Brand string
	// Now defaults to time.Now. It drives the "Generated" line and the file
	// name.
	Now    func() time.Time
	Logger *applog.Logger
}

// Assembler orchestrates selection, aggregation, layout and the file commit.
type Assembler struct {
	opts Options
	log  *applog.Logger
}

// New returns an Assembler with defaults filled in.
func New(opts Options) *Assembler {
	if opts.Brand == "" {
		opts.Brand = DefaultBrand
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	return &Assembler{opts: opts, log: logger.WithComponent(applog.ComponentDocument)}
}

// Export renders every month touched by req and writes one PDF into the
// output directory. It returns the path of the written file.
func (a *Assembler) Export(state model.AppState, req selection.Request) (string, error) {
	canvas, err := a.open()
	if err != nil {
		return "", err
	}

	selected := selection.Filter(state.Entries, req)
	groups := aggregate.SplitByMonth(selected)
	if len(groups) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptySelection, describe(req))
	}

	now := a.opts.Now()
	pages := a.Render(canvas, groups, state.Settings.NormDayMinutes, now)

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return "", fmt.Errorf("serialising document: %w", err)
	}

	path := filepath.Join(a.opts.OutputDir, timecalc.OutputName(a.opts.Brand, now, "pdf"))
	if err := storage.WriteFileAtomic(path, &buf); err != nil {
		return "", err
	}

	a.log.Info("report written", "path", path, "months", len(groups), "entries", len(selected), "pages", pages)
	return path, nil
}

// Render draws groups in order onto s: each month gets its summary page
// followed by its detail pages, and every month after the first starts on a
// new page. It returns the number of pages drawn.
func (a *Assembler) Render(s layout.Surface, groups []aggregate.MonthGroup, norm *int, generated time.Time) int {
	e := layout.New(s, layout.Options{Brand: a.opts.Brand, Generated: generated})
	for i, g := range groups {
		if i > 0 {
			e.PageBreak()
		}
		m := aggregate.BuildMonth(g, norm)
		a.log.Debug("rendering month", "month", m.Key, "entries", len(m.Entries), "page", e.Pages()+1)
		e.RenderSummary(m)
		e.RenderDetail(m)
	}
	return e.Pages()
}

func (a *Assembler) open() (Canvas, error) {
	if a.opts.Open == nil {
		return nil, ErrRenderingBackendUnavailable
	}
	canvas, err := a.opts.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderingBackendUnavailable, err)
	}
	if canvas == nil {
		return nil, ErrRenderingBackendUnavailable
	}
	if w, h := canvas.PageSize(); !layout.FitsPage(w, h) {
		minW, minH := layout.MinPageSize()
		return nil, fmt.Errorf("%w: page %.0fx%.0fpt is smaller than the report's %.0fx%.0fpt",
			ErrRenderingBackendUnavailable, w, h, minW, minH)
	}
	return canvas, nil
}

func describe(req selection.Request) string {
	if req.Mode == selection.ModeMonth {
		if req.Month == "" {
			return "no month given"
		}
		return "month " + req.Month
	}
	return fmt.Sprintf("range %s to %s", req.From, req.To)
}
