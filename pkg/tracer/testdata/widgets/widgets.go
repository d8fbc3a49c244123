// Package widgets is a small fixture for the tracer tests.
package widgets

// Color of a widget.
type Color int

const (
	// Red is the default color.
	Red Color = iota
	Blue
)

// Widget is a thing with a color.
//
// Widgets are **sturdy**.
type Widget struct {
	// Color of the widget.
	Color Color `json:"color"`
	// Internal bookkeeping.
	Internal string `json:"-"`
}

// Paint sets the color.
//
// @param Color $c the new color
func (w *Widget) Paint(c Color) {
	w.Color = c
}
