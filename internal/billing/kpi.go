package billing

import (
	"github.com/shopspring/decimal"

	"fynix/internal/domain"
)

// ExpenseEstimator derives an expense figure from gross revenue
// (invoiced + to be invoiced).
type ExpenseEstimator func(revenue decimal.Decimal) decimal.Decimal

// DefaultExpenseRatio is the placeholder cost model: expenses are a flat
// share of revenue. It is not backed by any ledger.
var DefaultExpenseRatio = decimal.RequireFromString("0.65")

// FixedRatioEstimator estimates expenses as revenue x ratio.
func FixedRatioEstimator(ratio decimal.Decimal) ExpenseEstimator {
	return func(revenue decimal.Decimal) decimal.Decimal {
		return revenue.Mul(ratio)
	}
}

// countsAsInvoiced excludes drafts unless they are asked for explicitly, so
// items on an unfinalized draft are not counted twice.
func countsAsInvoiced(inv *domain.Invoice, f domain.KPIFilter) bool {
	if f.Status != "" {
		return inv.Status == f.Status
	}
	return inv.Status != domain.InvoiceStatusDraft
}

// Aggregate computes portfolio metrics for the window. Draft invoices are
// left out of Invoiced, and so of Due and revenue, unless f.Status is draft;
// their work items still count toward ToBeInvoiced. The result does not
// depend on the order of either input.
func Aggregate(invoices []domain.Invoice, items []domain.WorkItem, f domain.KPIFilter, estimate ExpenseEstimator) domain.KPISummary {
	if estimate == nil {
		estimate = FixedRatioEstimator(DefaultExpenseRatio)
	}

	invoiced, received := decimal.Zero, decimal.Zero
	for i := range invoices {
		inv := &invoices[i]
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		if !countsAsInvoiced(inv, f) || !InWindow(inv.IssueDate, f.From, f.To) {
			continue
		}
		invoiced = invoiced.Add(inv.Totals.Total)
		if inv.Status == domain.InvoiceStatusPaid {
			received = received.Add(inv.Totals.Total)
		}
	}

	toBeInvoiced := decimal.Zero
	for i := range items {
		w := &items[i]
		if f.ClientID != "" && w.ClientID != f.ClientID {
			continue
		}
		if !IsBillable(w) || !InWindow(w.DueDate, f.From, f.To) {
			continue
		}
		toBeInvoiced = toBeInvoiced.Add(w.EstimatedCost)
	}

	revenue := invoiced.Add(toBeInvoiced)
	expenses := estimate(revenue)
	return domain.KPISummary{
		Invoiced:     invoiced,
		Received:     received,
		Due:          invoiced.Sub(received),
		ToBeInvoiced: toBeInvoiced,
		Expenses:     expenses,
		Profit:       revenue.Sub(expenses),
	}
}
