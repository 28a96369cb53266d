// Package pdf implements the layout drawing surface on top of fpdf.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Options configures a new document.
type Options struct {
	// PageSize is an fpdf page size name such as "A4" or "Letter".
	PageSize string
	Title    string
	Creator  string
}

// Document is a PDF under construction. It implements layout.Surface.
type Document struct {
	f  *fpdf.Fpdf
	tr func(string) string
}

// New prepares an empty portrait document measured in points.
func New(opts Options) (*Document, error) {
	size := opts.PageSize
	if size == "" {
		size = "A4"
	}
	f := fpdf.New("P", "pt", size, "")
	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("pdf backend: %w", err)
	}
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	if opts.Title != "" {
		f.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		f.SetCreator(opts.Creator, true)
	}
	f.SetFont("Helvetica", "", 10)
	return &Document{f: f, tr: f.UnicodeTranslatorFromDescriptor("")}, nil
}

func (d *Document) SetFont(family, style string) { d.f.SetFont(family, style, 0) }
func (d *Document) SetFontSize(size float64) { d.f.SetFontSize(size) }
func (d *Document) Text(x, y float64, s string) { d.f.Text(x, y, d.tr(s)) }
func (d *Document) Line(x1, y1, x2, y2 float64) { d.f.Line(x1, y1, x2, y2) }
func (d *Document) AddPage() { d.f.AddPage() }
func (d *Document) SetFillColor(r, g, b int) { d.f.SetFillColor(r, g, b) }
func (d *Document) SetDrawColor(r, g, b int) { d.f.SetDrawColor(r, g, b) }

func (d *Document) Rect(x, y, w, h float64, fill bool) {
	style := "D"
	if fill {
		style = "FD"
	}
	d.f.Rect(x, y, w, h, style)
}

func (d *Document) PageSize() (float64, float64) {
	return d.f.GetPageSize()
}

// SplitText greedily wraps s on spaces. Words wider than width are broken
// between characters.
func (d *Document) SplitText(s string, width float64) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		for d.width(word) > width {
			head, tail := d.breakWord(word, width)
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, head)
			word = tail
		}
		if word == "" {
			continue
		}
		if line == "" {
			line = word
			continue
		}
		if d.width(line+" "+word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// breakWord splits word after the longest prefix that fits width, keeping
// at least one character in the head.
func (d *Document) breakWord(word string, width float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && d.width(string(runes[:n+1])) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func (d *Document) width(s string) float64 {
	return d.f.GetStringWidth(d.tr(s))
}

// Output serialises the finished document.
func (d *Document) Output(w io.Writer) error {
	if err := d.f.Output(w); err != nil {
		return fmt.Errorf("pdf output: %w", err)
	}
	return nil
}
