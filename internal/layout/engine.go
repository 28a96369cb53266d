package layout

import (
	"strings"
	"time"
)

const (
	fontFamily = "Helvetica"

	marginTop    = 40.0
	marginBottom = 40.0

	headerHeight = 18.0
	cellPadding  = 3.0
)

var (
	headerFill = [3]int{225, 225, 225}
	gridColor  = [3]int{160, 160, 160}
)

// Options configures an Engine.
type Options struct {
	// Brand is printed as the title of every summary page.
	Brand string
	// Generated is the timestamp shown on summary pages.
	Generated time.Time
}

// Cursor is the write position on the current page. Y is the top of the next
// block to draw.
type Cursor struct {
	X, Y float64
}

// Column is one table column.
type Column struct {
	Header string
	Width  float64
}

type table struct {
	columns []Column
	x       float64
}

func (t *table) width() float64 {
	var w float64
	for _, c := range t.columns {
		w += c.Width
	}
	return w
}

// headingLine is a line of page heading text, re-emitted on overflow pages.
type headingLine struct {
	text  string
	size  float64
	bold  bool
	after float64
}

// Engine lays out report sections across pages. It is not safe for
// concurrent use; one Engine owns its Surface for the whole document.
type Engine struct {
	s     Surface
	opts  Options
	cur   Cursor
	pageW float64
	pageH float64
	pages int

	heading []headingLine
	active  *table
}

// New returns an Engine drawing on s. No page is started until the first
// section is rendered.
func New(s Surface, opts Options) *Engine {
	return &Engine{s: s, opts: opts}
}

// Cursor returns the current write position.
func (e *Engine) Cursor() Cursor { return e.cur }

// Pages returns the number of pages started so far.
func (e *Engine) Pages() int { return e.pages }

// Remaining is the vertical space left on the current page.
func (e *Engine) Remaining() float64 {
	return e.pageH - marginBottom - e.cur.Y
}

// PageBreak starts a new page and clears any active table and heading.
func (e *Engine) PageBreak() {
	e.active = nil
	e.heading = nil
	e.newPage()
}

func (e *Engine) ensurePage() {
	if e.pages == 0 {
		e.newPage()
	}
}

func (e *Engine) newPage() {
	e.s.AddPage()
	e.pages++
	e.pageW, e.pageH = e.s.PageSize()
	e.cur = Cursor{X: 0, Y: marginTop}
}

// centered returns the x at which a block of width w is horizontally centred.
func (e *Engine) centered(w float64) float64 {
	return (e.pageW - w) / 2
}

// setHeading records and draws the page heading at the current cursor.
func (e *Engine) setHeading(x float64, lines []headingLine) {
	e.heading = lines
	e.cur.X = x
	e.drawHeading()
}

func (e *Engine) drawHeading() {
	for _, l := range e.heading {
		e.font(l.bold, l.size)
		e.s.Text(e.cur.X, e.cur.Y+l.size, l.text)
		e.cur.Y += l.size + l.after
	}
}

func (e *Engine) headingHeight() float64 {
	var h float64
	for _, l := range e.heading {
		h += l.size + l.after
	}
	return h
}

// freshBudget is the row space available on an overflow page, below the
// repeated heading and table header.
func (e *Engine) freshBudget() float64 {
	h := e.pageH - marginBottom - marginTop - e.headingHeight()
	if e.active != nil {
		h -= headerHeight
	}
	return h
}

// beginTable makes t the active table and draws its header row.
func (e *Engine) beginTable(t *table) {
	e.active = t
	e.drawHeader()
}

func (e *Engine) drawHeader() {
	t := e.active
	e.s.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	e.s.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
	e.s.Rect(t.x, e.cur.Y, t.width(), headerHeight, true)

	e.font(true, 9)
	x := t.x
	for _, c := range t.columns {
		e.s.Text(x+cellPadding, e.cur.Y+12, c.Header)
		x += c.Width
	}
	e.cur.Y += headerHeight
	e.font(false, 9)
}

// reserve makes sure h points fit on the current page. If not, it starts a
// new page and re-emits the heading and the active table's header. It
// reports whether a page break happened.
func (e *Engine) reserve(h float64) bool {
	if h <= e.Remaining() {
		return false
	}
	x := e.cur.X
	e.newPage()
	e.cur.X = x
	e.drawHeading()
	if e.active != nil {
		e.drawHeader()
	}
	return true
}

// drawRow draws one table row of the given height. cells holds the text lines
// of each column; line j sits on the baseline top+(j+1)*lineHeight.
func (e *Engine) drawRow(cells [][]string, height, lineHeight float64, grid bool) {
	t := e.active
	top := e.cur.Y

	if grid {
		e.s.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
		x := t.x
		for _, c := range t.columns {
			e.s.Rect(x, top, c.Width, height, false)
			x += c.Width
		}
	}

	x := t.x
	for i, c := range t.columns {
		if i < len(cells) {
			for j, line := range cells[i] {
				e.s.Text(x+cellPadding, top+float64(j+1)*lineHeight, line)
			}
		}
		x += c.Width
	}

	if !grid {
		e.s.SetDrawColor(gridColor[0], gridColor[1], gridColor[2])
		e.s.Line(t.x, top+height, t.x+t.width(), top+height)
	}
	e.cur.Y += height
}

func (e *Engine) font(bold bool, size float64) {
	style := ""
	if bold {
		style = "B"
	}
	e.s.SetFont(fontFamily, style)
	e.s.SetFontSize(size)
}

// collapseSpace replaces runs of whitespace with single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func cell(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
