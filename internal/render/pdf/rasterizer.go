// Package pdf rasterizes rendered page sequences into PDF using go-pdf/fpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"fynix/internal/render"
)

// pxToPt converts 96 dpi layout units to PDF points.
const pxToPt = 72.0 / 96.0

// The core fonts are cp1252; symbols outside it are spelled out.
var symbolFallbacks = strings.NewReplacer("₹", "Rs.")

// Rasterizer writes documents as A4 PDFs.
type Rasterizer struct {
	author string
}

// NewRasterizer creates a rasterizer that stamps author into PDF metadata.
func NewRasterizer(author string) *Rasterizer {
	return &Rasterizer{author: author}
}

// Rasterize draws every page of doc. It stops early when ctx is cancelled.
func (r *Rasterizer) Rasterize(ctx context.Context, doc *render.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("pdf.Rasterize: empty document")
	}

	f := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: render.PageWidth * pxToPt, Ht: render.PageHeight * pxToPt},
	})
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.SetTitle(doc.Title, true)
	if r.author != "" {
		f.SetAuthor(r.author, true)
		f.SetCreator(r.author, true)
	}
	tr := f.UnicodeTranslatorFromDescriptor("")

	for i := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f.AddPage()
		for _, e := range doc.Pages[i].Elements {
			drawElement(f, tr, e)
		}
	}
	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("pdf.Rasterize: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Rasterize: output: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawElement(f *fpdf.Fpdf, tr func(string) string, e render.Element) {
	x, y, w, h := e.X*pxToPt, e.Y*pxToPt, e.W*pxToPt, e.H*pxToPt
	switch e.Kind {
	case render.KindText:
		style := ""
		if e.Bold {
			style = "B"
		}
		f.SetFont("Helvetica", style, e.Size*pxToPt)
		f.SetTextColor(e.Color[0], e.Color[1], e.Color[2])
		txt := tr(symbolFallbacks.Replace(e.Text))
		if e.Align == render.AlignRight {
			x -= f.GetStringWidth(txt)
		}
		f.Text(x, y, txt)
	case render.KindLine:
		f.SetDrawColor(e.Color[0], e.Color[1], e.Color[2])
		f.SetLineWidth(0.5)
		f.Line(x, y, x+w, y+h)
	case render.KindRect:
		f.SetFillColor(e.Color[0], e.Color[1], e.Color[2])
		style := "D"
		if e.Fill {
			style = "F"
		}
		f.Rect(x, y, w, h, style)
	}
}
