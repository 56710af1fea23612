package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/billing"
	"fynix/internal/config"
	"fynix/internal/domain"
	"fynix/internal/logger"
	"fynix/internal/port"
)

// KPIService computes portfolio metrics for a tenant.
type KPIService interface {
	Summary(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*domain.KPISummary, error)
	Periods(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string) ([]domain.PeriodSummary, error)
	Clients(ctx context.Context, tenantID uuid.UUID) ([]string, error)
}

type kpiService struct {
	invoiceRepo  port.InvoiceRepository
	workItemRepo port.WorkItemRepository
	estimate     billing.ExpenseEstimator
	log          *zap.Logger
}

// NewKPIService creates a new KPIService implementation.
func NewKPIService(invoiceRepo port.InvoiceRepository, workItemRepo port.WorkItemRepository, cfg config.BillingConfig, log *zap.Logger) KPIService {
	ratio := cfg.ExpenseRatio
	if ratio.IsZero() {
		ratio = billing.DefaultExpenseRatio
	}
	return &kpiService{
		invoiceRepo:  invoiceRepo,
		workItemRepo: workItemRepo,
		estimate:     billing.FixedRatioEstimator(ratio),
		log:          logger.OrNop(log).Named("kpi"),
	}
}

// invoices loads every invoice of the tenant with overdue status brought up
// to date. The window is applied in memory so that the same rules serve
// every store.
func (s *kpiService) invoices(ctx context.Context, tenantID uuid.UUID, clientID string) ([]domain.Invoice, error) {
	markOverdue(ctx, s.invoiceRepo, tenantID, s.log)
	invoices, _, err := s.invoiceRepo.List(ctx, tenantID, domain.InvoiceFilter{ClientID: clientID})
	return invoices, err
}

func (s *kpiService) Summary(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*domain.KPISummary, error) {
	invoices, err := s.invoices(ctx, tenantID, filter.ClientID)
	if err != nil {
		return nil, fmt.Errorf("kpi.Summary: %w", err)
	}
	items, err := s.workItemRepo.List(ctx, tenantID, domain.WorkItemFilter{ClientID: filter.ClientID})
	if err != nil {
		return nil, fmt.Errorf("kpi.Summary: %w", err)
	}
	summary := billing.Aggregate(invoices, items, filter, s.estimate)
	return &summary, nil
}

func (s *kpiService) Periods(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string) ([]domain.PeriodSummary, error) {
	if granularity != "" && !billing.ValidGranularity(granularity) {
		return nil, fmt.Errorf("%w: unknown granularity %q", domain.ErrValidation, granularity)
	}
	invoices, err := s.invoices(ctx, tenantID, filter.ClientID)
	if err != nil {
		return nil, fmt.Errorf("kpi.Periods: %w", err)
	}
	return billing.Periods(invoices, filter, granularity), nil
}

func (s *kpiService) Clients(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	invoices, err := s.invoices(ctx, tenantID, "")
	if err != nil {
		return nil, fmt.Errorf("kpi.Clients: %w", err)
	}
	items, err := s.workItemRepo.List(ctx, tenantID, domain.WorkItemFilter{})
	if err != nil {
		return nil, fmt.Errorf("kpi.Clients: %w", err)
	}
	return billing.ClientOptions(invoices, items), nil
}
