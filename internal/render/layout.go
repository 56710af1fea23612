package render

import (
	"strings"
)

const (
	lineHeight = 16.0
	bodySize   = 10.0
	smallSize  = 8.5
)

// layout places elements top-down and opens a new page whenever the next
// block does not fit above the footer.
type layout struct {
	pages  []*Page
	y      float64
	onPage func(l *layout)
}

func newLayout() *layout {
	l := &layout{}
	l.newPage()
	return l
}

func (l *layout) page() *Page { return l.pages[len(l.pages)-1] }

func (l *layout) newPage() {
	l.pages = append(l.pages, &Page{Number: len(l.pages) + 1, Width: PageWidth, Height: PageHeight})
	l.y = MarginTop
	if l.onPage != nil {
		l.onPage(l)
	}
}

// ensure moves to a new page when h does not fit on the current one. A block
// taller than a whole page is placed at the top of a fresh page and left to
// overflow.
func (l *layout) ensure(h float64) {
	if l.y+h <= ContentBottom || l.y == MarginTop {
		return
	}
	l.newPage()
}

func (l *layout) add(e Element) {
	if e.Color == (Color{}) {
		e.Color = ColorText
	}
	l.page().Elements = append(l.page().Elements, e)
}

func (l *layout) text(x, y float64, s string, size float64, bold bool, align Align, c Color) {
	if s == "" {
		return
	}
	l.add(Element{Kind: KindText, X: x, Y: y, Text: s, Size: size, Bold: bold, Align: align, Color: c})
}

func (l *layout) rule(y float64) {
	l.add(Element{Kind: KindLine, X: MarginX, Y: y, W: ContentWidth, Color: ColorRule})
}

func (l *layout) rect(x, y, w, h float64, c Color) {
	l.add(Element{Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c, Fill: true})
}

// paragraph writes wrapped lines one at a time so long text flows across
// pages.
func (l *layout) paragraph(title, body string, size float64) {
	lines := wrap(body, ContentWidth, size)
	if len(lines) == 0 {
		return
	}
	l.ensure(lineHeight*2 + 8)
	l.y += 8
	l.text(MarginX, l.y+lineHeight-4, title, bodySize, true, AlignLeft, ColorMuted)
	l.y += lineHeight + 4
	for _, ln := range lines {
		l.ensure(lineHeight)
		l.text(MarginX, l.y+lineHeight-4, ln, size, false, AlignLeft, ColorText)
		l.y += lineHeight
	}
}

// finish numbers pages and stamps each footer.
func (l *layout) finish(brand string) []Page {
	out := make([]Page, len(l.pages))
	for i, p := range l.pages {
		p.Total = len(l.pages)
		base := PageHeight - MarginBottom
		p.Elements = append(p.Elements, Element{Kind: KindLine, X: MarginX, Y: base - FooterHeight + 12, W: ContentWidth, Color: ColorRule})
		if brand != "" {
			p.Elements = append(p.Elements, Element{Kind: KindText, X: MarginX, Y: base, Text: brand, Size: smallSize, Align: AlignLeft, Color: ColorMuted})
		}
		if m := p.Marker(); m != "" {
			p.Elements = append(p.Elements, Element{Kind: KindText, X: PageWidth - MarginX, Y: base, Text: m, Size: smallSize, Align: AlignRight, Color: ColorMuted})
		}
		out[i] = *p
	}
	return out
}

// textWidth approximates the rendered width of s with a Helvetica-like
// average advance of half the font size.
func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

// wrap breaks s into lines no wider than width. Explicit newlines are kept.
func wrap(s string, width, size float64) []string {
	s = strings.TrimRight(s, "\n ")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	maxChars := int(width / (size * 0.5))
	if maxChars < 1 {
		maxChars = 1
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := ""
		for _, w := range words {
			for len([]rune(w)) > maxChars {
				if cur != "" {
					out = append(out, cur)
					cur = ""
				}
				r := []rune(w)
				out = append(out, string(r[:maxChars]))
				w = string(r[maxChars:])
			}
			switch {
			case cur == "":
				cur = w
			case len([]rune(cur))+1+len([]rune(w)) <= maxChars:
				cur += " " + w
			default:
				out = append(out, cur)
				cur = w
			}
		}
		if cur != "" {
			out = append(out, cur)
		}
	}
	return out
}
