package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

func TestTransition_HappyPath(t *testing.T) {
	now := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	inv := &domain.Invoice{Status: domain.InvoiceStatusDraft, LineItems: twoItems(), TaxConfig: domain.TaxConfiguration{Mode: domain.TaxModeNone}}

	require.NoError(t, billing.Transition(inv, domain.InvoiceStatusSent, now))
	assert.Equal(t, domain.InvoiceStatusSent, inv.Status)
	require.NotNil(t, inv.SentAt)

	require.NoError(t, billing.Transition(inv, domain.InvoiceStatusPaid, now))
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
	require.NotNil(t, inv.PaidAt)
	assertDec(t, "40000", inv.Totals.Total, "total settled")
}

func TestTransition_Illegal(t *testing.T) {
	now := time.Now()
	cases := []struct {
		from, to domain.InvoiceStatus
	}{
		{domain.InvoiceStatusDraft, domain.InvoiceStatusPaid},
		{domain.InvoiceStatusDraft, domain.InvoiceStatusOverdue},
		{domain.InvoiceStatusPaid, domain.InvoiceStatusSent},
		{domain.InvoiceStatusPaid, domain.InvoiceStatusDraft},
		{domain.InvoiceStatusPaid, domain.InvoiceStatusOverdue},
		{domain.InvoiceStatusSent, domain.InvoiceStatusDraft},
		{domain.InvoiceStatusOverdue, domain.InvoiceStatusSent},
	}
	for _, tc := range cases {
		inv := &domain.Invoice{Status: tc.from}
		err := billing.Transition(inv, tc.to, now)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.from, inv.Status)
	}
}

func TestTransition_OverdueToPaid(t *testing.T) {
	inv := &domain.Invoice{Status: domain.InvoiceStatusOverdue}
	require.NoError(t, billing.Transition(inv, domain.InvoiceStatusPaid, time.Now()))
	assert.Equal(t, domain.InvoiceStatusPaid, inv.Status)
}

func TestEvaluateOverdue(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	inv := &domain.Invoice{Status: domain.InvoiceStatusSent, DueDate: due}
	assert.False(t, billing.EvaluateOverdue(inv, due.Add(20*time.Hour)), "due date itself is not overdue")
	assert.True(t, billing.EvaluateOverdue(inv, due.AddDate(0, 0, 1)))
	assert.Equal(t, domain.InvoiceStatusOverdue, inv.Status)

	draft := &domain.Invoice{Status: domain.InvoiceStatusDraft, DueDate: due}
	assert.False(t, billing.EvaluateOverdue(draft, due.AddDate(1, 0, 0)))

	paid := &domain.Invoice{Status: domain.InvoiceStatusPaid, DueDate: due}
	assert.False(t, billing.EvaluateOverdue(paid, due.AddDate(1, 0, 0)))
}
