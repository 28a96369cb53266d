package layout_test

import "strings"

const (
	a4Width  = 595.28
	a4Height = 841.89
)

type textCall struct {
	page int
	x, y float64
	s    string
	bold bool
	size float64
}

type rectCall struct {
	page       int
	x, y, w, h float64
	fill       bool
}

// fakeSurface records draw calls instead of producing a document. Glyphs are
// half the font size wide.
type fakeSurface struct {
	w, h  float64
	page  int
	bold  bool
	size  float64
	texts []textCall
	rects []rectCall
	lines int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{w: a4Width, h: a4Height, size: 12}
}

func (f *fakeSurface) SetFont(_, style string) { f.bold = style == "B" }
func (f *fakeSurface) SetFontSize(size float64) { f.size = size }

func (f *fakeSurface) Text(x, y float64, s string) {
	f.texts = append(f.texts, textCall{page: f.page, x: x, y: y, s: s, bold: f.bold, size: f.size})
}

func (f *fakeSurface) SplitText(s string, width float64) []string {
	var out []string
	var line string
	for _, word := range strings.Fields(s) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if f.width(candidate) > width && line != "" {
			out = append(out, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

func (f *fakeSurface) width(s string) float64 {
	return float64(len(s)) * f.size / 2
}

func (f *fakeSurface) Rect(x, y, w, h float64, fill bool) {
	f.rects = append(f.rects, rectCall{page: f.page, x: x, y: y, w: w, h: h, fill: fill})
}

func (f *fakeSurface) Line(_, _, _, _ float64) { f.lines++ }
func (f *fakeSurface) AddPage() { f.page++ }
func (f *fakeSurface) PageSize() (float64, float64) { return f.w, f.h }
func (f *fakeSurface) SetFillColor(_, _, _ int) {}
func (f *fakeSurface) SetDrawColor(_, _, _ int) {}

// textsOn returns the texts drawn on page p.
func (f *fakeSurface) textsOn(p int) []textCall {
	var out []textCall
	for _, t := range f.texts {
		if t.page == p {
			out = append(out, t)
		}
	}
	return out
}

// count returns how many times s was drawn on page p.
func (f *fakeSurface) count(p int, s string) int {
	n := 0
	for _, t := range f.textsOn(p) {
		if t.s == s {
			n++
		}
	}
	return n
}

func (f *fakeSurface) has(s string) bool {
	for _, t := range f.texts {
		if t.s == s {
			return true
		}
	}
	return false
}
