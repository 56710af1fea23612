package billing

import (
	"fmt"
	"time"

	"fynix/internal/domain"
)

// transitions lists the explicit moves of the invoice state machine.
// Overdue is entered only through EvaluateOverdue.
var transitions = map[domain.InvoiceStatus][]domain.InvoiceStatus{
	domain.InvoiceStatusDraft:   {domain.InvoiceStatusSent},
	domain.InvoiceStatusSent:    {domain.InvoiceStatusPaid, domain.InvoiceStatusOverdue},
	domain.InvoiceStatusOverdue: {domain.InvoiceStatusPaid},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to domain.InvoiceStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves inv to the target status and stamps the matching
// timestamp. Content checks for sending live in the validator package.
func Transition(inv *domain.Invoice, to domain.InvoiceStatus, now time.Time) error {
	if !CanTransition(inv.Status, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, inv.Status, to)
	}
	switch to {
	case domain.InvoiceStatusSent:
		Recompute(inv)
		inv.SentAt = &now
	case domain.InvoiceStatusPaid:
		Recompute(inv)
		inv.PaidAt = &now
	}
	inv.Status = to
	inv.UpdatedAt = now
	return nil
}

// IsOverdue reports whether a sent invoice's due date lies before today.
func IsOverdue(inv *domain.Invoice, now time.Time) bool {
	return inv.Status == domain.InvoiceStatusSent && !inv.DueDate.IsZero() && day(now).After(day(inv.DueDate))
}

// EvaluateOverdue flips a sent invoice past its due date to overdue and
// reports whether it changed.
func EvaluateOverdue(inv *domain.Invoice, now time.Time) bool {
	if !IsOverdue(inv, now) {
		return false
	}
	inv.Status = domain.InvoiceStatusOverdue
	inv.UpdatedAt = now
	return true
}
