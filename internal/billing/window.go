package billing

import (
	"strings"
	"time"

	"fynix/internal/domain"
)

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InWindow reports whether t falls inside [from, to] at day granularity.
// Nil bounds are open.
func InWindow(t time.Time, from, to *time.Time) bool {
	d := day(t)
	if from != nil && d.Before(day(*from)) {
		return false
	}
	if to != nil && d.After(day(*to)) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// MatchInvoice applies an invoice filter in memory. Pagination fields are
// ignored.
func MatchInvoice(inv *domain.Invoice, f domain.InvoiceFilter) bool {
	if f.ClientID != "" && inv.ClientID != f.ClientID {
		return false
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if !InWindow(inv.IssueDate, f.From, f.To) {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		if !containsFold(inv.ClientName, q) && !containsFold(inv.InvoiceNumber, q) {
			return false
		}
	}
	return true
}

// MatchWorkItem applies a work item filter in memory.
func MatchWorkItem(w *domain.WorkItem, f domain.WorkItemFilter) bool {
	if f.ClientID != "" && w.ClientID != f.ClientID {
		return false
	}
	if f.InvoiceID != nil && (w.InvoiceID == nil || *w.InvoiceID != *f.InvoiceID) {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if id == w.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !InWindow(w.DueDate, f.DueFrom, f.DueTo) {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		if !containsFold(w.ClientName, q) && !containsFold(w.Title, q) {
			return false
		}
	}
	return true
}
