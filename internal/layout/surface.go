// Package layout renders month reports onto a page-based drawing surface,
// paginating tables and repeating their headers when a page overflows.
package layout

// Surface is the primitive drawing capability the engine draws on.
// Coordinates are in points with the origin at the top-left of the page and
// y growing downwards; Text positions are baselines.
type Surface interface {
	// SetFont selects a family and style ("" for regular, "B" for bold).
	SetFont(family, style string)
	SetFontSize(size float64)
	Text(x, y float64, s string)
	// SplitText wraps s into lines no wider than width in the current font.
	SplitText(s string, width float64) []string
	// Rect draws a rectangle outline, filled with the fill colour when fill
	// is true.
	Rect(x, y, w, h float64, fill bool)
	Line(x1, y1, x2, y2 float64)
	AddPage()
	// PageSize reports the current page's width and height.
	PageSize() (float64, float64)
	SetFillColor(r, g, b int)
	SetDrawColor(r, g, b int)
}
