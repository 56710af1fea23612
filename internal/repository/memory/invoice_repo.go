package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"fynix/internal/billing"
	"fynix/internal/domain"
	"fynix/internal/port"
)

type invoiceRepo struct{ s *Store }

// NewInvoiceRepo returns an InvoiceRepository over s.
func NewInvoiceRepo(s *Store) port.InvoiceRepository { return &invoiceRepo{s: s} }

// numberTaken must be called with the lock held.
func (r *invoiceRepo) numberTaken(inv *domain.Invoice) bool {
	for id, other := range r.s.invoices {
		if id != inv.ID && other.TenantID == inv.TenantID && other.InvoiceNumber == inv.InvoiceNumber {
			return true
		}
	}
	return false
}

func (r *invoiceRepo) Create(_ context.Context, inv *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.numberTaken(inv) {
		return domain.ErrDuplicateInvoiceNumber
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

// put replaces a stored invoice; the lock must be held.
func (r *invoiceRepo) put(inv *domain.Invoice) error {
	cur, ok := r.s.invoices[inv.ID]
	if !ok || cur.TenantID != inv.TenantID {
		return domain.ErrInvoiceNotFound
	}
	if r.numberTaken(inv) {
		return domain.ErrDuplicateInvoiceNumber
	}
	inv.CreatedAt = cur.CreatedAt
	inv.UpdatedAt = time.Now().UTC()
	r.s.invoices[inv.ID] = cloneInvoice(*inv)
	return nil
}

func (r *invoiceRepo) Update(_ context.Context, inv *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.put(inv)
}

func (r *invoiceRepo) UpdateStatus(_ context.Context, inv *domain.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.invoices[inv.ID]
	if !ok || cur.TenantID != inv.TenantID {
		return domain.ErrInvoiceNotFound
	}
	inv.UpdatedAt = time.Now().UTC()
	cur.Status, cur.SentAt, cur.PaidAt, cur.UpdatedAt = inv.Status, inv.SentAt, inv.PaidAt, inv.UpdatedAt
	r.s.invoices[inv.ID] = cur
	return nil
}

func (r *invoiceRepo) GetByID(_ context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inv, ok := r.s.invoices[invoiceID]
	if !ok || inv.TenantID != tenantID {
		return nil, domain.ErrInvoiceNotFound
	}
	out := cloneInvoice(inv)
	return &out, nil
}

func (r *invoiceRepo) List(_ context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []domain.Invoice
	for _, inv := range r.s.invoices {
		if inv.TenantID == tenantID && billing.MatchInvoice(&inv, filter) {
			all = append(all, cloneInvoice(inv))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].IssueDate.Equal(all[j].IssueDate) {
			return all[i].IssueDate.After(all[j].IssueDate)
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if filter.Limit <= 0 {
		return all, total, nil
	}
	start := filter.Offset
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *invoiceRepo) MarkOverdue(_ context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for id, inv := range r.s.invoices {
		if inv.TenantID == tenantID && billing.EvaluateOverdue(&inv, asOf) {
			r.s.invoices[id] = inv
			n++
		}
	}
	return n, nil
}

func (r *invoiceRepo) FinalizeWithWorkItems(_ context.Context, inv *domain.Invoice, workItemIDs []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Check every item before writing anything.
	unique := make(map[uuid.UUID]struct{}, len(workItemIDs))
	for _, id := range workItemIDs {
		w, ok := r.s.workItems[id]
		if !ok || w.TenantID != inv.TenantID || w.ClientID != inv.ClientID || !billing.IsBillable(&w) {
			return fmt.Errorf("invoiceRepo.FinalizeWithWorkItems: %w: work item %s", domain.ErrPartialBilling, id)
		}
		unique[id] = struct{}{}
	}
	if err := r.put(inv); err != nil {
		return fmt.Errorf("invoiceRepo.FinalizeWithWorkItems: %w", err)
	}
	for id := range unique {
		w := r.s.workItems[id]
		invID := inv.ID
		w.BillingStatus = domain.BillingBilled
		w.InvoiceID = &invID
		w.UpdatedAt = inv.UpdatedAt
		r.s.workItems[id] = w
	}
	return nil
}

func (r *invoiceRepo) MarkPaidWithWorkItems(_ context.Context, inv *domain.Invoice) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.put(inv); err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkPaidWithWorkItems: %w", err)
	}
	n := 0
	for id, w := range r.s.workItems {
		if w.TenantID != inv.TenantID || w.InvoiceID == nil || *w.InvoiceID != inv.ID || w.BillingStatus != domain.BillingBilled {
			continue
		}
		w.BillingStatus = domain.BillingPaid
		w.UpdatedAt = inv.UpdatedAt
		r.s.workItems[id] = w
		n++
	}
	return n, nil
}
