// Package billing holds the pure invoice computation engine: totals, numbering,
// work item aggregation, the invoice state machine and portfolio KPIs.
// Nothing in this package performs I/O.
package billing

import (
	"github.com/shopspring/decimal"

	"fynix/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// clamp replaces negative input with zero so it never reaches the totals.
func clamp(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// ComputeTotals derives subtotal, taxable amount, tax and total from line
// items, a flat discount and a tax configuration. Values are not rounded.
func ComputeTotals(items []domain.LineItem, discount decimal.Decimal, cfg domain.TaxConfiguration) domain.Totals {
	subtotal := decimal.Zero
	for i := range items {
		subtotal = subtotal.Add(clamp(items[i].Quantity).Mul(clamp(items[i].UnitPrice)))
	}

	discount = clamp(discount)
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	rate := clamp(cfg.Rate)
	totalTax := decimal.Zero
	var taxes []domain.TaxLine
	if cfg.Mode != domain.TaxModeNone && rate.IsPositive() {
		totalTax = taxable.Mul(rate).Div(hundred)
		effective := cfg
		effective.Rate = rate
		for _, c := range effective.Components() {
			taxes = append(taxes, domain.TaxLine{
				Name:   c.Name,
				Rate:   c.Rate,
				Amount: taxable.Mul(c.Rate).Div(hundred),
			})
		}
	}

	return domain.Totals{
		Subtotal:      subtotal,
		Discount:      discount,
		TaxableAmount: taxable,
		TotalTax:      totalTax,
		Total:         taxable.Add(totalTax),
		Taxes:         taxes,
	}
}

// Recompute refreshes inv.Totals from its inputs. Paid invoices are frozen and
// keep the totals they were settled with.
func Recompute(inv *domain.Invoice) {
	if inv.Frozen() {
		return
	}
	inv.Totals = ComputeTotals(inv.LineItems, inv.Discount, inv.TaxConfig)
}
