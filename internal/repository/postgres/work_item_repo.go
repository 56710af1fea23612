package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type workItemRepo struct {
	db *sqlx.DB
}

// NewWorkItemRepo creates a new PostgreSQL-backed WorkItemRepository.
func NewWorkItemRepo(db *sqlx.DB) port.WorkItemRepository {
	return &workItemRepo{db: db}
}

const workItemColumns = `id, tenant_id, title, client_id, client_name, type, estimated_cost,
	completion_status, approval_status, COALESCE(NULLIF(billing_status, ''), 'unbilled') AS billing_status,
	invoice_id, due_date, created_at, updated_at`

// buildWorkItemWhere constructs a dynamic WHERE clause for work_items queries.
func buildWorkItemWhere(tenantID uuid.UUID, f domain.WorkItemFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if f.ClientID != "" {
		clause += fmt.Sprintf(" AND client_id = $%d", argN)
		args = append(args, f.ClientID)
		argN++
	}
	if f.InvoiceID != nil {
		clause += fmt.Sprintf(" AND invoice_id = $%d", argN)
		args = append(args, *f.InvoiceID)
		argN++
	}
	if len(f.IDs) > 0 {
		clause += fmt.Sprintf(" AND id = ANY($%d::uuid[])", argN)
		args = append(args, uuidStrings(f.IDs))
		argN++
	}
	if f.DueFrom != nil {
		clause += fmt.Sprintf(" AND due_date >= $%d::date", argN)
		args = append(args, *f.DueFrom)
		argN++
	}
	if f.DueTo != nil {
		clause += fmt.Sprintf(" AND due_date <= $%d::date", argN)
		args = append(args, *f.DueTo)
		argN++
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		clause += fmt.Sprintf(" AND (client_name ILIKE $%d OR title ILIKE $%d)", argN, argN)
		args = append(args, "%"+q+"%")
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}
	return clause, args
}

func (r *workItemRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	where, args := buildWorkItemWhere(tenantID, filter)
	var items []domain.WorkItem
	query := "SELECT " + workItemColumns + " FROM work_items " + where + " ORDER BY client_name, due_date, id"
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("workItemRepo.List: %w", err)
	}
	return items, nil
}

func (r *workItemRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	items, err := r.List(ctx, tenantID, domain.WorkItemFilter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("workItemRepo.GetByIDs: %w", err)
	}
	if len(items) != len(uuidStrings(ids)) {
		return nil, domain.ErrWorkItemNotFound
	}
	return items, nil
}
