package billing_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

func kpiInvoice(client string, status domain.InvoiceStatus, total string, issued time.Time) domain.Invoice {
	return domain.Invoice{ClientID: client, Status: status, IssueDate: issued, Totals: domain.Totals{Total: d(total)}}
}

func kpiFixture() ([]domain.Invoice, []domain.WorkItem) {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	invoices := []domain.Invoice{
		kpiInvoice("c1", domain.InvoiceStatusPaid, "47200", jan),
		kpiInvoice("c1", domain.InvoiceStatusSent, "1000", jan),
		kpiInvoice("c2", domain.InvoiceStatusOverdue, "500.50", feb),
		kpiInvoice("c2", domain.InvoiceStatusDraft, "9999", feb),
	}
	items := []domain.WorkItem{
		workItem("c1", "Acme", "3000", domain.BillingUnbilled),
		workItem("c2", "Beta", "2000", ""),
		workItem("c2", "Beta", "7000", domain.BillingBilled),
	}
	return invoices, items
}

func TestAggregate_Portfolio(t *testing.T) {
	invoices, items := kpiFixture()
	got := billing.Aggregate(invoices, items, domain.KPIFilter{}, nil)

	assertDec(t, "48700.5", got.Invoiced, "invoiced")
	assertDec(t, "47200", got.Received, "received")
	assertDec(t, "1500.5", got.Due, "due")
	assertDec(t, "5000", got.ToBeInvoiced, "to be invoiced")
	assertDec(t, "34905.325", got.Expenses, "expenses")
	assertDec(t, "18795.175", got.Profit, "profit")
	assert.True(t, got.Received.Add(got.Due).Equal(got.Invoiced))
}

func TestAggregate_Filters(t *testing.T) {
	invoices, items := kpiFixture()

	byClient := billing.Aggregate(invoices, items, domain.KPIFilter{ClientID: "c2"}, nil)
	assertDec(t, "500.5", byClient.Invoiced, "c2 invoiced")
	assertDec(t, "2000", byClient.ToBeInvoiced, "c2 to be invoiced")

	paidOnly := billing.Aggregate(invoices, items, domain.KPIFilter{Status: domain.InvoiceStatusPaid}, nil)
	assertDec(t, "47200", paidOnly.Invoiced, "paid invoiced")
	assertDec(t, "0", paidOnly.Due, "paid due")

	drafts := billing.Aggregate(invoices, items, domain.KPIFilter{Status: domain.InvoiceStatusDraft}, nil)
	assertDec(t, "9999", drafts.Invoiced, "drafts on request")

	from := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	feb := billing.Aggregate(invoices, items, domain.KPIFilter{From: &from}, nil)
	assertDec(t, "500.5", feb.Invoiced, "feb invoiced")
	assertDec(t, "0", feb.ToBeInvoiced, "work items due in january")
}

func TestAggregate_DraftsOnlyWhenRequested(t *testing.T) {
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	invoices := []domain.Invoice{kpiInvoice("c1", domain.InvoiceStatusDraft, "1200", feb)}
	items := []domain.WorkItem{workItem("c1", "Acme", "1200", domain.BillingUnbilled)}

	all := billing.Aggregate(invoices, items, domain.KPIFilter{}, nil)
	assertDec(t, "0", all.Invoiced, "draft left out")
	assertDec(t, "0", all.Due, "draft not due")
	assertDec(t, "1200", all.ToBeInvoiced, "drafted work still to be invoiced")

	drafts := billing.Aggregate(invoices, items, domain.KPIFilter{Status: domain.InvoiceStatusDraft}, nil)
	assertDec(t, "1200", drafts.Invoiced, "draft on request")
	assertDec(t, "1200", drafts.Due, "draft due on request")
}

func TestAggregate_OrderIndependent(t *testing.T) {
	invoices, items := kpiFixture()
	want := billing.Aggregate(invoices, items, domain.KPIFilter{}, nil)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		r.Shuffle(len(invoices), func(a, b int) { invoices[a], invoices[b] = invoices[b], invoices[a] })
		r.Shuffle(len(items), func(a, b int) { items[a], items[b] = items[b], items[a] })
		got := billing.Aggregate(invoices, items, domain.KPIFilter{}, nil)
		assert.True(t, want.Invoiced.Equal(got.Invoiced))
		assert.True(t, want.Profit.Equal(got.Profit))
		assert.True(t, got.Received.Add(got.Due).Equal(got.Invoiced))
	}
}

func TestAggregate_CustomEstimator(t *testing.T) {
	invoices, items := kpiFixture()
	got := billing.Aggregate(invoices, items, domain.KPIFilter{}, billing.FixedRatioEstimator(d("0")))
	assertDec(t, "0", got.Expenses, "expenses")
	assert.True(t, got.Profit.Equal(got.Invoiced.Add(got.ToBeInvoiced)))
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "₹", billing.CurrencySymbol("INR"))
	assert.Equal(t, "$", billing.CurrencySymbol("usd"))
	assert.Equal(t, "€", billing.CurrencySymbol("EUR"))
	assert.Equal(t, "£", billing.CurrencySymbol("GBP"))
	assert.Equal(t, "AED", billing.CurrencySymbol("AED"))
	assert.Equal(t, "₹47,200.00", billing.FormatMoney("INR", d("47200")))
	assert.Equal(t, "$1,234,567.89", billing.FormatMoney("USD", d("1234567.885")))
	assert.Equal(t, "0.50", billing.FormatAmount(d("0.5")))
}
