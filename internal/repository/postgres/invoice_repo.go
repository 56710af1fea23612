package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"

	"fynix/internal/domain"
	"fynix/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// invoiceRow is the invoices table shape. Nested documents are JSONB.
type invoiceRow struct {
	ID                  uuid.UUID       `db:"id"`
	TenantID            uuid.UUID       `db:"tenant_id"`
	InvoiceNumber       string          `db:"invoice_number"`
	SessionToken        string          `db:"session_token"`
	ClientID            string          `db:"client_id"`
	ClientName          string          `db:"client_name"`
	Sender              types.JSONText  `db:"sender"`
	Client              types.JSONText  `db:"client"`
	IssueDate           time.Time       `db:"issue_date"`
	DueDate             time.Time       `db:"due_date"`
	CurrencyCode        string          `db:"currency_code"`
	LineItems           types.JSONText  `db:"line_items"`
	Discount            decimal.Decimal `db:"discount"`
	TaxConfig           types.JSONText  `db:"tax_config"`
	Totals              types.JSONText  `db:"totals"`
	Total               decimal.Decimal `db:"total"`
	Status              string          `db:"status"`
	Memo                string          `db:"memo"`
	PaymentInstructions string          `db:"payment_instructions"`
	Footer              string          `db:"footer"`
	FinalizedAt         *time.Time      `db:"finalized_at"`
	SentAt              *time.Time      `db:"sent_at"`
	PaidAt              *time.Time      `db:"paid_at"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

func toRow(inv *domain.Invoice) (*invoiceRow, error) {
	enc := func(v interface{}) (types.JSONText, error) {
		b, err := json.Marshal(v)
		return types.JSONText(b), err
	}
	row := &invoiceRow{
		ID: inv.ID, TenantID: inv.TenantID, InvoiceNumber: inv.InvoiceNumber, SessionToken: inv.SessionToken,
		ClientID: inv.ClientID, ClientName: inv.ClientName, IssueDate: inv.IssueDate, DueDate: inv.DueDate,
		CurrencyCode: inv.CurrencyCode, Discount: inv.Discount, Total: inv.Totals.Total, Status: string(inv.Status),
		Memo: inv.Memo, PaymentInstructions: inv.PaymentInstructions, Footer: inv.Footer,
		FinalizedAt: inv.FinalizedAt, SentAt: inv.SentAt, PaidAt: inv.PaidAt,
		CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt,
	}
	var err error
	if row.Sender, err = enc(inv.Sender); err != nil {
		return nil, err
	}
	if row.Client, err = enc(inv.Client); err != nil {
		return nil, err
	}
	if row.LineItems, err = enc(inv.LineItems); err != nil {
		return nil, err
	}
	if row.TaxConfig, err = enc(inv.TaxConfig); err != nil {
		return nil, err
	}
	if row.Totals, err = enc(inv.Totals); err != nil {
		return nil, err
	}
	return row, nil
}

func (row *invoiceRow) toDomain() (*domain.Invoice, error) {
	inv := &domain.Invoice{
		ID: row.ID, TenantID: row.TenantID, InvoiceNumber: row.InvoiceNumber, SessionToken: row.SessionToken,
		ClientID: row.ClientID, ClientName: row.ClientName, IssueDate: row.IssueDate, DueDate: row.DueDate,
		CurrencyCode: row.CurrencyCode, Discount: row.Discount, Status: domain.InvoiceStatus(row.Status),
		Memo: row.Memo, PaymentInstructions: row.PaymentInstructions, Footer: row.Footer,
		FinalizedAt: row.FinalizedAt, SentAt: row.SentAt, PaidAt: row.PaidAt,
		CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}
	for _, f := range []struct {
		src types.JSONText
		dst interface{}
	}{
		{row.Sender, &inv.Sender},
		{row.Client, &inv.Client},
		{row.LineItems, &inv.LineItems},
		{row.TaxConfig, &inv.TaxConfig},
		{row.Totals, &inv.Totals},
	} {
		if len(f.src) == 0 {
			continue
		}
		if err := f.src.Unmarshal(f.dst); err != nil {
			return nil, fmt.Errorf("decoding invoice %s: %w", row.ID, err)
		}
	}
	return inv, nil
}

func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	row, err := toRow(inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	_, err = r.db.NamedExecContext(ctx, `INSERT INTO invoices (
			id, tenant_id, invoice_number, session_token, client_id, client_name, sender, client,
			issue_date, due_date, currency_code, line_items, discount, tax_config, totals, total,
			status, memo, payment_instructions, footer, finalized_at, sent_at, paid_at, created_at, updated_at)
		VALUES (
			:id, :tenant_id, :invoice_number, :session_token, :client_id, :client_name, :sender, :client,
			:issue_date, :due_date, :currency_code, :line_items, :discount, :tax_config, :totals, :total,
			:status, :memo, :payment_instructions, :footer, :finalized_at, :sent_at, :paid_at, :created_at, :updated_at)`,
		row)
	if err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

const updateInvoiceSQL = `UPDATE invoices SET
		invoice_number = :invoice_number, client_id = :client_id, client_name = :client_name,
		sender = :sender, client = :client, issue_date = :issue_date, due_date = :due_date,
		currency_code = :currency_code, line_items = :line_items, discount = :discount,
		tax_config = :tax_config, totals = :totals, total = :total, status = :status,
		memo = :memo, payment_instructions = :payment_instructions, footer = :footer,
		finalized_at = :finalized_at, sent_at = :sent_at, paid_at = :paid_at, updated_at = :updated_at
	WHERE id = :id AND tenant_id = :tenant_id`

func execUpdate(ctx context.Context, ext sqlx.ExtContext, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	row, err := toRow(inv)
	if err != nil {
		return err
	}
	result, err := sqlx.NamedExecContext(ctx, ext, updateInvoiceSQL, row)
	if err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicateInvoiceNumber
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	if err := execUpdate(ctx, r.db, inv); err != nil {
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, sent_at = $2, paid_at = $3, updated_at = $4
		 WHERE id = $5 AND tenant_id = $6`,
		inv.Status, inv.SentAt, inv.PaidAt, inv.UpdatedAt, inv.ID, inv.TenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var row invoiceRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2", invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	inv, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return inv, nil
}

// buildInvoiceWhere constructs a dynamic WHERE clause for invoices queries.
func buildInvoiceWhere(tenantID uuid.UUID, f domain.InvoiceFilter) (clause string, args []interface{}) {
	args = []interface{}{tenantID}
	clause = "WHERE tenant_id = $1"
	argN := 2

	if f.ClientID != "" {
		clause += fmt.Sprintf(" AND client_id = $%d", argN)
		args = append(args, f.ClientID)
		argN++
	}
	if f.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, f.Status)
		argN++
	}
	if f.From != nil {
		clause += fmt.Sprintf(" AND issue_date >= $%d::date", argN)
		args = append(args, *f.From)
		argN++
	}
	if f.To != nil {
		clause += fmt.Sprintf(" AND issue_date <= $%d::date", argN)
		args = append(args, *f.To)
		argN++
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		clause += fmt.Sprintf(" AND (client_name ILIKE $%d OR invoice_number ILIKE $%d)", argN, argN)
		args = append(args, "%"+q+"%")
		argN++ //nolint:ineffassign // argN kept incremented for consistency
	}
	return clause, args
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	where, args := buildInvoiceWhere(tenantID, filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := "SELECT * FROM invoices " + where + " ORDER BY issue_date DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}
	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}

	out := make([]domain.Invoice, 0, len(rows))
	for i := range rows {
		inv, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
		}
		out = append(out, *inv)
	}
	return out, total, nil
}

func (r *invoiceRepo) MarkOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW()
		 WHERE tenant_id = $2 AND status = $3 AND due_date < $4::date`,
		domain.InvoiceStatusOverdue, tenantID, domain.InvoiceStatusSent, asOf.UTC().Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkOverdue: %w", err)
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *invoiceRepo) FinalizeWithWorkItems(ctx context.Context, inv *domain.Invoice, workItemIDs []uuid.UUID) error {
	ids := uuidStrings(distinctIDs(workItemIDs))
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := execUpdate(ctx, tx, inv); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE work_items SET billing_status = $1, invoice_id = $2, updated_at = $3
			 WHERE tenant_id = $4 AND id = ANY($5::uuid[])
			   AND COALESCE(NULLIF(billing_status, ''), 'unbilled') = $6
			   AND completion_status = $7 AND approval_status = $8
			   AND client_id = $9`,
			domain.BillingBilled, inv.ID, inv.UpdatedAt, inv.TenantID, ids,
			domain.BillingUnbilled, domain.CompletionCompleted, domain.ApprovalApproved, inv.ClientID)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if int(rows) != len(ids) {
			return fmt.Errorf("%w: %d of %d work items billable", domain.ErrPartialBilling, rows, len(ids))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invoiceRepo.FinalizeWithWorkItems: %w", err)
	}
	return nil
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (r *invoiceRepo) MarkPaidWithWorkItems(ctx context.Context, inv *domain.Invoice) (int, error) {
	var paid int
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := execUpdate(ctx, tx, inv); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`UPDATE work_items SET billing_status = $1, updated_at = $2
			 WHERE tenant_id = $3 AND invoice_id = $4 AND billing_status = $5`,
			domain.BillingPaid, inv.UpdatedAt, inv.TenantID, inv.ID, domain.BillingBilled)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		paid = int(rows)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.MarkPaidWithWorkItems: %w", err)
	}
	return paid, nil
}
