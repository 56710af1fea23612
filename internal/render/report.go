package render

import (
	"time"
)

// Rows per report page. The first page also carries the title and KPI cards.
const (
	ReportFirstPageRows = 12
	ReportPageRows      = 20
)

// Card is a headline KPI figure.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Column describes one report table column. Width is a share of the content
// width; zero-width columns split what remains.
type Column struct {
	Header string  `json:"header"`
	Width  float64 `json:"width"`
	Align  Align   `json:"align"`
}

// Report is the input for RenderReport.
type Report struct {
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	BrandName   string     `json:"brand_name"`
	GeneratedAt time.Time  `json:"generated_at"`
	Cards       []Card     `json:"cards"`
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
}

const reportRowHeight = 24.0

// ReportPageCount returns how many pages n rows occupy.
func ReportPageCount(n int) int {
	if n <= ReportFirstPageRows {
		return 1
	}
	rest := n - ReportFirstPageRows
	return 1 + (rest+ReportPageRows-1)/ReportPageRows
}

// RenderReport lays out a KPI report: title and cards on page one, then the
// table at 12 rows on the first page and 20 on each following page.
func RenderReport(r *Report) *Document {
	widths := columnWidths(r.Columns)
	l := newLayout()

	l.text(MarginX, l.y+22, r.Title, 20, true, AlignLeft, ColorBrand)
	if !r.GeneratedAt.IsZero() {
		l.text(PageWidth-MarginX, l.y+14, "Generated "+r.GeneratedAt.Format(dateLayout), smallSize, false, AlignRight, ColorMuted)
	}
	l.y += 30
	if r.Subtitle != "" {
		l.text(MarginX, l.y+12, r.Subtitle, bodySize, false, AlignLeft, ColorMuted)
		l.y += 20
	}
	l.rule(l.y)
	l.y += 12

	const perRow = 3
	cardW := (ContentWidth - 2*12) / perRow
	for i, c := range r.Cards {
		x := MarginX + float64(i%perRow)*(cardW+12)
		if i > 0 && i%perRow == 0 {
			l.y += 64
		}
		l.rect(x, l.y, cardW, 54, ColorFill)
		l.text(x+10, l.y+18, c.Label, smallSize, false, AlignLeft, ColorMuted)
		l.text(x+10, l.y+40, c.Value, 14, true, AlignLeft, ColorText)
	}
	if len(r.Cards) > 0 {
		l.y += 72
	}

	header := func(l *layout) {
		l.rect(MarginX, l.y, ContentWidth, reportRowHeight, ColorFill)
		x := MarginX
		for i, c := range r.Columns {
			cellText(l, x, widths[i], l.y+16, c.Header, c.Align, true)
			x += widths[i]
		}
		l.y += reportRowHeight + 4
	}
	if len(r.Columns) > 0 {
		header(l)
	}

	capacity := ReportFirstPageRows
	onPage := 0
	for _, row := range r.Rows {
		if onPage == capacity {
			l.newPage()
			header(l)
			capacity, onPage = ReportPageRows, 0
		}
		x := MarginX
		for i := range r.Columns {
			var v string
			if i < len(row) {
				v = row[i]
			}
			cellText(l, x, widths[i], l.y+16, v, r.Columns[i].Align, false)
			x += widths[i]
		}
		l.y += reportRowHeight
		l.rule(l.y - 2)
		onPage++
	}

	return &Document{Title: r.Title, FileName: FileName(r.Title), Pages: l.finish(r.BrandName)}
}

func cellText(l *layout, x, w, y float64, s string, a Align, bold bool) {
	maxChars := int((w - 12) / (bodySize * 0.5))
	if r := []rune(s); maxChars > 1 && len(r) > maxChars {
		s = string(r[:maxChars-1]) + "…"
	}
	if a == AlignRight {
		l.text(x+w-6, y, s, bodySize, bold, AlignRight, ColorText)
		return
	}
	l.text(x+6, y, s, bodySize, bold, AlignLeft, ColorText)
}

func columnWidths(cols []Column) []float64 {
	out := make([]float64, len(cols))
	used, flex := 0.0, 0
	for i, c := range cols {
		if c.Width > 0 {
			out[i] = c.Width * ContentWidth
			used += out[i]
		} else {
			flex++
		}
	}
	if flex > 0 {
		share := (ContentWidth - used) / float64(flex)
		if share < 0 {
			share = 0
		}
		for i := range out {
			if out[i] == 0 {
				out[i] = share
			}
		}
	}
	return out
}
