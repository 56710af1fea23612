// Package render lays invoices and KPI reports out onto fixed-size A4 pages.
// The output is a device-independent page sequence; rasterizing it into a
// file format is left to a port.DocumentRasterizer.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

// Page geometry in layout units (A4 at the 96 dpi reference scale).
const (
	PageWidth    = 794.0
	PageHeight   = 1123.0
	MarginX      = 48.0
	MarginTop    = 48.0
	MarginBottom = 40.0
	FooterHeight = 40.0

	ContentWidth  = PageWidth - 2*MarginX
	ContentBottom = PageHeight - MarginBottom - FooterHeight
)

// Kind is the type of a drawable element.
type Kind string

const (
	KindText Kind = "text"
	KindLine Kind = "line"
	KindRect Kind = "rect"
)

// Align positions text relative to its X coordinate.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Color is an RGB triple.
type Color [3]int

var (
	ColorText  = Color{33, 37, 41}
	ColorMuted = Color{108, 117, 125}
	ColorRule  = Color{222, 226, 230}
	ColorFill  = Color{245, 246, 248}
	ColorBrand = Color{45, 80, 160}
)

// Element is one drawable item. For text, Y is the baseline and, with
// AlignRight, X is the right edge. Lines run from (X,Y) to (X+W,Y+H).
type Element struct {
	Kind  Kind    `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Text  string  `json:"text,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Bold  bool    `json:"bold,omitempty"`
	Align Align   `json:"align,omitempty"`
	Color Color   `json:"color"`
	Fill  bool    `json:"fill,omitempty"`
}

// Page is one fixed-size canvas.
type Page struct {
	Number   int       `json:"number"`
	Total    int       `json:"total"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []Element `json:"elements"`
}

// Marker returns the "Page N of M" label, or "" for single-page documents.
func (p *Page) Marker() string {
	if p.Total <= 1 {
		return ""
	}
	return fmt.Sprintf("Page %d of %d", p.Number, p.Total)
}

// Document is a rendered page sequence.
type Document struct {
	Title    string `json:"title"`
	FileName string `json:"file_name"`
	Pages    []Page `json:"pages"`
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return len(d.Pages) }

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName derives a PDF file name from an invoice number or report title.
func FileName(base string) string {
	base = strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(base), "_"), "_")
	if base == "" {
		base = "document"
	}
	return base + ".pdf"
}
