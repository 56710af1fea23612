package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

// Options tune rendering.
type Options struct {
	BrandName string
}

const dateLayout = "02 Jan 2006"

// table columns: description takes the remaining width.
const (
	colQty    = 60.0
	colRate   = 120.0
	colAmount = 130.0
	colDesc   = ContentWidth - colQty - colRate - colAmount
	rowPad    = 8.0
)

// RenderInvoice lays out an invoice. Blocks are, in order: header, meta row,
// parties, line items, totals, memo, payment instructions and the free-text
// footer. Table rows flow onto further pages with the header row repeated.
func RenderInvoice(inv *domain.Invoice, opts Options) (*Document, error) {
	if inv == nil {
		return nil, errors.New("render: nil invoice")
	}
	totals := inv.Totals
	if !inv.Frozen() {
		totals = billing.ComputeTotals(inv.LineItems, inv.Discount, inv.TaxConfig)
	}
	money := func(v decimal.Decimal) string { return billing.FormatMoney(inv.CurrencyCode, v) }

	l := newLayout()
	invoiceHeader(l, inv)
	metaRow(l, inv, money(totals.Total))
	parties(l, inv)
	lineItems(l, inv, money)
	totalsBlock(l, totals, taxRows(totals, inv.TaxConfig), money)
	l.paragraph("Notes", inv.Memo, bodySize)
	l.paragraph("Payment Instructions", inv.PaymentInstructions, bodySize)
	l.paragraph("", inv.Footer, smallSize)

	return &Document{
		Title:    "Invoice " + inv.InvoiceNumber,
		FileName: FileName(inv.InvoiceNumber),
		Pages:    l.finish(opts.BrandName),
	}, nil
}

func invoiceHeader(l *layout, inv *domain.Invoice) {
	l.text(MarginX, l.y+24, "INVOICE", 24, true, AlignLeft, ColorBrand)
	l.text(PageWidth-MarginX, l.y+14, inv.InvoiceNumber, 12, true, AlignRight, ColorText)
	l.text(PageWidth-MarginX, l.y+30, strings.ToUpper(string(inv.Status)), smallSize, false, AlignRight, ColorMuted)
	l.y += 44
	l.rule(l.y)
	l.y += 12
}

func metaRow(l *layout, inv *domain.Invoice, amountDue string) {
	col := ContentWidth / 3
	cells := [][2]string{
		{"Issue Date", formatDate(inv.IssueDate.Format(dateLayout), inv.IssueDate.IsZero())},
		{"Due Date", formatDate(inv.DueDate.Format(dateLayout), inv.DueDate.IsZero())},
		{"Amount Due", amountDue},
	}
	for i, c := range cells {
		x := MarginX + float64(i)*col
		l.text(x, l.y+12, c[0], smallSize, false, AlignLeft, ColorMuted)
		l.text(x, l.y+32, c[1], 12, true, AlignLeft, ColorText)
	}
	l.y += 48
}

func formatDate(s string, zero bool) string {
	if zero {
		return "-"
	}
	return s
}

func partyLines(p domain.Party) []string {
	var out []string
	if p.Name != "" {
		out = append(out, p.Name)
	}
	for _, ln := range strings.Split(p.Address, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	if p.Email != "" {
		out = append(out, p.Email)
	}
	if p.Phone != "" {
		out = append(out, p.Phone)
	}
	if p.TaxID != "" {
		out = append(out, "Tax ID: "+p.TaxID)
	}
	return out
}

func parties(l *layout, inv *domain.Invoice) {
	client := inv.Client
	if client.Name == "" {
		client.Name = inv.ClientName
	}
	left, right := partyLines(client), partyLines(inv.Sender)
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	h := lineHeight + float64(n)*lineHeight + 16
	l.ensure(h)

	half := ContentWidth / 2
	l.text(MarginX, l.y+12, "BILL TO", smallSize, true, AlignLeft, ColorMuted)
	l.text(MarginX+half, l.y+12, "FROM", smallSize, true, AlignLeft, ColorMuted)
	for i, s := range left {
		l.text(MarginX, l.y+lineHeight+12+float64(i)*lineHeight, s, bodySize, i == 0, AlignLeft, ColorText)
	}
	for i, s := range right {
		l.text(MarginX+half, l.y+lineHeight+12+float64(i)*lineHeight, s, bodySize, i == 0, AlignLeft, ColorText)
	}
	l.y += h
}

func tableHeader(l *layout) {
	l.rect(MarginX, l.y, ContentWidth, 24, ColorFill)
	base := l.y + 16
	l.text(MarginX+6, base, "Description", bodySize, true, AlignLeft, ColorText)
	l.text(MarginX+colDesc+colQty-6, base, "Qty", bodySize, true, AlignRight, ColorText)
	l.text(MarginX+colDesc+colQty+colRate-6, base, "Rate", bodySize, true, AlignRight, ColorText)
	l.text(PageWidth-MarginX-6, base, "Amount", bodySize, true, AlignRight, ColorText)
	l.y += 28
}

func lineItems(l *layout, inv *domain.Invoice, money func(decimal.Decimal) string) {
	l.ensure(28 + lineHeight + rowPad)
	tableHeader(l)
	l.onPage = tableHeader
	defer func() { l.onPage = nil }()

	for i := range inv.LineItems {
		item := inv.LineItems[i]
		desc := wrap(item.Description, colDesc-12, bodySize)
		if len(desc) == 0 {
			desc = []string{"-"}
		}
		// Rows that fit on a page are kept together. Taller rows continue
		// their description on the following pages.
		if h := float64(len(desc))*lineHeight + rowPad; h <= ContentBottom-MarginTop-28 {
			l.ensure(h)
		} else {
			l.ensure(lineHeight + rowPad)
		}

		base := l.y + lineHeight - 4
		l.text(MarginX+6, base, desc[0], bodySize, false, AlignLeft, ColorText)
		l.text(MarginX+colDesc+colQty-6, base, item.Quantity.String(), bodySize, false, AlignRight, ColorText)
		l.text(MarginX+colDesc+colQty+colRate-6, base, money(item.UnitPrice), bodySize, false, AlignRight, ColorText)
		l.text(PageWidth-MarginX-6, base, money(item.Amount()), bodySize, false, AlignRight, ColorText)
		l.y += lineHeight
		for _, s := range desc[1:] {
			l.ensure(lineHeight + rowPad)
			l.text(MarginX+6, l.y+lineHeight-4, s, bodySize, false, AlignLeft, ColorText)
			l.y += lineHeight
		}
		l.y += rowPad
		l.rule(l.y - rowPad/2)
	}
}

func taxLabel(t domain.TaxLine) string {
	return fmt.Sprintf("%s (%s%%)", t.Name, t.Rate.String())
}

// taxRows returns the computed tax lines. A taxed invoice at 0% still shows
// its tax rows with zero amounts.
func taxRows(t domain.Totals, cfg domain.TaxConfiguration) []domain.TaxLine {
	if len(t.Taxes) > 0 || (cfg.Mode != domain.TaxModeSingle && cfg.Mode != domain.TaxModeSplit) {
		return t.Taxes
	}
	nominal := cfg
	nominal.Rate = decimal.NewFromInt(1)
	var out []domain.TaxLine
	for _, c := range nominal.Components() {
		out = append(out, domain.TaxLine{Name: c.Name, Rate: decimal.Zero, Amount: decimal.Zero})
	}
	return out
}

func totalsBlock(l *layout, t domain.Totals, taxes []domain.TaxLine, money func(decimal.Decimal) string) {
	type row struct {
		label, value string
		bold         bool
	}
	rows := []row{{"Subtotal", money(t.Subtotal), false}}
	if t.Discount.IsPositive() {
		rows = append(rows, row{"Discount", "-" + money(t.Discount), false})
	}
	for _, tl := range taxes {
		rows = append(rows, row{taxLabel(tl), money(tl.Amount), false})
	}
	rows = append(rows, row{"Total", money(t.Total), true})

	h := float64(len(rows))*20 + 16
	l.ensure(h)
	l.y += 8
	labelX := PageWidth - MarginX - colAmount - 10
	for _, r := range rows {
		if r.bold {
			l.add(Element{Kind: KindLine, X: labelX - 120, Y: l.y + 2, W: PageWidth - MarginX - labelX + 120, Color: ColorRule})
			l.y += 4
		}
		size := bodySize
		if r.bold {
			size = 12
		}
		l.text(labelX, l.y+14, r.label, size, r.bold, AlignRight, ColorMuted)
		l.text(PageWidth-MarginX-6, l.y+14, r.value, size, r.bold, AlignRight, ColorText)
		l.y += 20
	}
	l.y += 8
}
