package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/render"
	"fynix/internal/render/pdf"
)

func twoPageDoc() *render.Document {
	page := func(n int) render.Page {
		return render.Page{Number: n, Total: 2, Width: render.PageWidth, Height: render.PageHeight, Elements: []render.Element{
			{Kind: render.KindRect, X: 48, Y: 48, W: 698, H: 24, Color: render.ColorFill, Fill: true},
			{Kind: render.KindText, X: 48, Y: 64, Text: "INVOICE ₹47,200.00 €1 £2", Size: 12, Bold: true, Color: render.ColorText},
			{Kind: render.KindText, X: 746, Y: 1083, Text: "Page 1 of 2", Size: 8.5, Align: render.AlignRight, Color: render.ColorMuted},
			{Kind: render.KindLine, X: 48, Y: 100, W: 698, Color: render.ColorRule},
		}}
	}
	return &render.Document{Title: "Invoice INV-202501-1234", FileName: "INV-202501-1234.pdf", Pages: []render.Page{page(1), page(2)}}
}

func TestRasterize_WritesPDF(t *testing.T) {
	out, err := pdf.NewRasterizer("Fynix").Rasterize(context.Background(), twoPageDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "/Count 2")
}

func TestRasterize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pdf.NewRasterizer("").Rasterize(ctx, twoPageDoc())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRasterize_Empty(t *testing.T) {
	_, err := pdf.NewRasterizer("").Rasterize(context.Background(), &render.Document{})
	assert.Error(t, err)
}
