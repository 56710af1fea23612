package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fynix/internal/domain"
)

// WorkItemRepository reads work items produced by the task workflow.
// Billing status writes happen only through InvoiceRepository commands so
// that they share the invoice's transaction.
type WorkItemRepository interface {
	List(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.WorkItem, error)
}

// InvoiceRepository defines the contract for invoice persistence.
// All query methods include tenantID for tenant isolation.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	Update(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error)
	UpdateStatus(ctx context.Context, inv *domain.Invoice) error

	// MarkOverdue flips sent invoices whose due date is before asOf's day.
	MarkOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error)

	// FinalizeWithWorkItems saves inv and marks every listed work item billed
	// against it in one transaction. Items no longer unbilled abort the whole
	// call with domain.ErrPartialBilling.
	FinalizeWithWorkItems(ctx context.Context, inv *domain.Invoice, workItemIDs []uuid.UUID) error

	// MarkPaidWithWorkItems saves inv (already transitioned to paid) and marks
	// every work item linked to it paid in one transaction. It returns the
	// number of work items updated.
	MarkPaidWithWorkItems(ctx context.Context, inv *domain.Invoice) (int, error)
}

// ProfileRepository provides read-only sender and client profiles.
type ProfileRepository interface {
	GetCompanyProfile(ctx context.Context, tenantID uuid.UUID) (*domain.Party, error)
	GetPartnerProfile(ctx context.Context, tenantID uuid.UUID, clientID string) (*domain.Party, error)
}

// PresetRepository defines the contract for payment preset persistence.
type PresetRepository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error)
	Create(ctx context.Context, preset *domain.PaymentPreset) error
	GetByID(ctx context.Context, tenantID, presetID uuid.UUID) (*domain.PaymentPreset, error)
	// Delete removes a preset. Deleting a missing preset is not an error.
	Delete(ctx context.Context, tenantID, presetID uuid.UUID) error
}
