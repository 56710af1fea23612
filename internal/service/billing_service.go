package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/billing"
	"fynix/internal/config"
	"fynix/internal/domain"
	"fynix/internal/logger"
	"fynix/internal/port"
)

// CreateDraftInput is the DTO for generating a draft from unbilled work items.
type CreateDraftInput struct {
	TenantID    uuid.UUID
	ClientID    string
	WorkItemIDs []uuid.UUID
	IssueDate   *time.Time
	// Finalize bills the selected work items right after the draft is saved.
	Finalize bool
}

// BillingService turns completed, approved work into invoices.
type BillingService interface {
	ListUnbilled(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) (*domain.UnbilledSummary, error)
	CreateDraft(ctx context.Context, input *CreateDraftInput) (*domain.Invoice, error)
	Finalize(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
}

type billingService struct {
	workItemRepo port.WorkItemRepository
	invoiceRepo  port.InvoiceRepository
	defaults     draftDefaults
	log          *zap.Logger
}

// NewBillingService creates a new BillingService implementation.
func NewBillingService(
	workItemRepo port.WorkItemRepository,
	invoiceRepo port.InvoiceRepository,
	profileRepo port.ProfileRepository,
	cfg config.BillingConfig,
	log *zap.Logger,
) BillingService {
	return &billingService{
		workItemRepo: workItemRepo,
		invoiceRepo:  invoiceRepo,
		defaults:     draftDefaults{profiles: profileRepo, cfg: cfg},
		log:          logger.OrNop(log).Named("billing"),
	}
}

func (s *billingService) ListUnbilled(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) (*domain.UnbilledSummary, error) {
	items, err := s.workItemRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("billing.ListUnbilled: %w", err)
	}
	summary := billing.ClientGroups(items)
	return &summary, nil
}

func (s *billingService) CreateDraft(ctx context.Context, input *CreateDraftInput) (*domain.Invoice, error) {
	ids := dedupe(input.WorkItemIDs)
	if len(ids) == 0 {
		return nil, domain.ErrNoWorkItemsSelected
	}

	items, err := s.workItemRepo.GetByIDs(ctx, input.TenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("billing.CreateDraft: %w", err)
	}
	items = inRequestOrder(items, ids)

	issue := time.Now().UTC()
	if input.IssueDate != nil {
		issue = *input.IssueDate
	}
	opts, err := s.defaults.options(ctx, input.TenantID, input.ClientID, issue, s.defaults.cfg.DueDays)
	if err != nil {
		return nil, fmt.Errorf("billing.CreateDraft: %w", err)
	}

	inv, err := billing.GenerateInvoiceDraft(input.ClientID, items, opts)
	if err != nil {
		return nil, err
	}
	if err := createDraft(ctx, s.invoiceRepo, inv); err != nil {
		return nil, fmt.Errorf("billing.CreateDraft: %w", err)
	}
	s.log.Info("draft created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("client_id", inv.ClientID),
		zap.Int("work_items", len(items)),
	)

	if input.Finalize {
		return s.finalize(ctx, inv)
	}
	return inv, nil
}

func (s *billingService) Finalize(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Finalized() {
		return inv, nil
	}
	if !inv.Editable() {
		return nil, domain.ErrInvoiceFrozen
	}
	return s.finalize(ctx, inv)
}

func (s *billingService) finalize(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if err := finalize(ctx, s.invoiceRepo, inv, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrPartialBilling) {
			s.log.Error("finalize rolled back",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		return nil, fmt.Errorf("billing.Finalize: %w", err)
	}
	s.log.Info("invoice finalized",
		zap.String("invoice_id", inv.ID.String()),
		zap.Int("work_items", len(inv.WorkItemIDs())),
	)
	return inv, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// inRequestOrder arranges items in the order their ids were requested.
func inRequestOrder(items []domain.WorkItem, ids []uuid.UUID) []domain.WorkItem {
	byID := make(map[uuid.UUID]domain.WorkItem, len(items))
	for i := range items {
		byID[items[i].ID] = items[i]
	}
	out := make([]domain.WorkItem, 0, len(items))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out
}
