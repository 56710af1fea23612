package billing_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

func workItem(client, name, cost string, status domain.BillingStatus) domain.WorkItem {
	return domain.WorkItem{
		ID:               uuid.New(),
		Title:            name + " work",
		ClientID:         client,
		ClientName:       name,
		EstimatedCost:    d(cost),
		CompletionStatus: domain.CompletionCompleted,
		ApprovalStatus:   domain.ApprovalApproved,
		BillingStatus:    status,
		DueDate:          time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func draftOpts() billing.DraftOptions {
	return billing.DraftOptions{
		IssueDate:    time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		DueDays:      30,
		SessionToken: "4321",
		CurrencyCode: "INR",
		TaxConfig:    domain.TaxConfiguration{Mode: domain.TaxModeSingle, Name: "IGST", Rate: d("18")},
	}
}

func TestIsBillable(t *testing.T) {
	w := workItem("c1", "Acme", "100", "")
	assert.True(t, billing.IsBillable(&w), "missing billing status reads as unbilled")

	w.BillingStatus = domain.BillingBilled
	assert.False(t, billing.IsBillable(&w))

	w = workItem("c1", "Acme", "100", domain.BillingUnbilled)
	w.ApprovalStatus = domain.ApprovalPending
	assert.False(t, billing.IsBillable(&w))

	w = workItem("c1", "Acme", "100", domain.BillingUnbilled)
	w.CompletionStatus = domain.CompletionInProgress
	assert.False(t, billing.IsBillable(&w))
}

func TestGroupUnbilled(t *testing.T) {
	items := []domain.WorkItem{
		workItem("c1", "Acme", "100", domain.BillingUnbilled),
		workItem("c2", "Beta", "50", ""),
		workItem("c1", "Acme", "25", domain.BillingBilled),
		workItem("c1", "Acme", "75", domain.BillingUnbilled),
	}
	groups := billing.GroupUnbilled(items)

	require.Len(t, groups, 2)
	assert.Len(t, groups["c1"], 2)
	assert.Len(t, groups["c2"], 1)
	assert.Equal(t, items[0].ID, groups["c1"][0].ID)
	assert.Equal(t, items[3].ID, groups["c1"][1].ID)
}

func TestClientGroups_Totals(t *testing.T) {
	items := []domain.WorkItem{
		workItem("c2", "Beta", "50", ""),
		workItem("c1", "Acme", "100", domain.BillingUnbilled),
		workItem("c1", "Acme", "75", domain.BillingUnbilled),
		workItem("c3", "Gamma", "999", domain.BillingPaid),
	}
	summary := billing.ClientGroups(items)

	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "Acme", summary.Groups[0].ClientName)
	assertDec(t, "175", summary.Groups[0].Total, "acme")
	assert.Equal(t, "Beta", summary.Groups[1].ClientName)
	assertDec(t, "225", summary.Total, "portfolio")
}

func TestGenerateInvoiceDraft(t *testing.T) {
	items := []domain.WorkItem{
		workItem("c1", "Acme", "25000", domain.BillingUnbilled),
		workItem("c1", "Acme", "15000", ""),
	}
	inv, err := billing.GenerateInvoiceDraft("c1", items, draftOpts())
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "INV-202501-4321", inv.InvoiceNumber)
	assert.Equal(t, "c1", inv.ClientID)
	assert.Equal(t, "Acme", inv.Client.Name)
	assert.Equal(t, time.Date(2025, 2, 19, 0, 0, 0, 0, time.UTC), inv.DueDate)
	require.Len(t, inv.LineItems, 2)
	for i, l := range inv.LineItems {
		assertDec(t, "1", l.Quantity, "qty")
		assertDec(t, "18", l.TaxRate, "rate")
		require.NotNil(t, l.WorkItemID)
		assert.Equal(t, items[i].ID, *l.WorkItemID)
	}
	assertDec(t, "47200", inv.Totals.Total, "total")
	assert.Equal(t, []uuid.UUID{items[0].ID, items[1].ID}, inv.WorkItemIDs())
}

func TestGenerateInvoiceDraft_Rejections(t *testing.T) {
	_, err := billing.GenerateInvoiceDraft("c1", nil, draftOpts())
	assert.ErrorIs(t, err, domain.ErrNoWorkItemsSelected)

	other := []domain.WorkItem{workItem("c2", "Beta", "1", domain.BillingUnbilled)}
	_, err = billing.GenerateInvoiceDraft("c1", other, draftOpts())
	assert.ErrorIs(t, err, domain.ErrClientMismatch)

	billed := []domain.WorkItem{workItem("c1", "Acme", "1", domain.BillingBilled)}
	_, err = billing.GenerateInvoiceDraft("c1", billed, draftOpts())
	assert.ErrorIs(t, err, domain.ErrWorkItemNotBillable)

	opts := draftOpts()
	opts.TaxConfig.Mode = "vat"
	_, err = billing.GenerateInvoiceDraft("c1", []domain.WorkItem{workItem("c1", "Acme", "1", "")}, opts)
	assert.ErrorIs(t, err, domain.ErrInvalidTaxConfig)
}

func TestNewManualDraft_DefaultLine(t *testing.T) {
	opts := draftOpts()
	opts.DueDays = 7
	inv, err := billing.NewManualDraft("c9", "Walk-in", nil, opts)
	require.NoError(t, err)

	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, billing.DefaultLineDescription, inv.LineItems[0].Description)
	assert.Nil(t, inv.LineItems[0].WorkItemID)
	assert.NotEmpty(t, inv.LineItems[0].ID)
	assert.Equal(t, time.Date(2025, 1, 27, 0, 0, 0, 0, time.UTC), inv.DueDate)
	assert.Empty(t, inv.WorkItemIDs())
}

func TestClientOptions(t *testing.T) {
	invoices := []domain.Invoice{{ClientName: "Zeta"}, {ClientName: "Acme"}}
	items := []domain.WorkItem{{ClientName: "Acme"}, {ClientName: "Beta"}, {}}
	assert.Equal(t, []string{"Acme", "Beta", "Zeta"}, billing.ClientOptions(invoices, items))
}

func TestMatchInvoice_Search(t *testing.T) {
	inv := &domain.Invoice{ClientName: "Acme Corp", InvoiceNumber: "INV-202501-1234", IssueDate: time.Date(2025, 1, 5, 15, 0, 0, 0, time.UTC)}
	assert.True(t, billing.MatchInvoice(inv, domain.InvoiceFilter{Search: "acme"}))
	assert.True(t, billing.MatchInvoice(inv, domain.InvoiceFilter{Search: "1234"}))
	assert.False(t, billing.MatchInvoice(inv, domain.InvoiceFilter{Search: "beta"}))

	from := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	to := from
	assert.True(t, billing.MatchInvoice(inv, domain.InvoiceFilter{From: &from, To: &to}), "window is day-inclusive")
}
