package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"fynix/internal/billing"
	"fynix/internal/domain"
	"fynix/internal/port"
)

type workItemRepo struct{ s *Store }

// NewWorkItemRepo returns a WorkItemRepository over s.
func NewWorkItemRepo(s *Store) port.WorkItemRepository { return &workItemRepo{s: s} }

func (r *workItemRepo) List(_ context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []domain.WorkItem
	for _, w := range r.s.workItems {
		if w.TenantID != tenantID || !billing.MatchWorkItem(&w, filter) {
			continue
		}
		w.BillingStatus = w.BillingStatus.Effective()
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClientName != out[j].ClientName {
			return out[i].ClientName < out[j].ClientName
		}
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *workItemRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := r.List(ctx, tenantID, domain.WorkItemFilter{IDs: ids})
	if err != nil {
		return nil, err
	}
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(items) != len(unique) {
		return nil, domain.ErrWorkItemNotFound
	}
	return items, nil
}
