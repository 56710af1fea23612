package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fynix/internal/billing"
	"fynix/internal/config"
	"fynix/internal/domain"
	"fynix/internal/logger"
	"fynix/internal/port"
	"fynix/internal/render"
	"fynix/internal/validator"
)

// CreateInvoiceInput is the DTO for a manual draft not built from work items.
type CreateInvoiceInput struct {
	TenantID   uuid.UUID
	ClientID   string
	ClientName string
	IssueDate  *time.Time
	LineItems  []domain.LineItem
	Discount   *decimal.Decimal
}

// UpdateInvoiceInput carries draft edits. Nil fields are left unchanged.
type UpdateInvoiceInput struct {
	TenantID            uuid.UUID
	InvoiceID           uuid.UUID
	ClientName          *string
	Sender              *domain.Party
	Client              *domain.Party
	IssueDate           *time.Time
	DueDate             *time.Time
	CurrencyCode        *string
	LineItems           []domain.LineItem
	Discount            *decimal.Decimal
	TaxConfig           *domain.TaxConfiguration
	Memo                *string
	PaymentInstructions *string
	Footer              *string
}

// BulkPayResult is the outcome of marking one invoice paid in a batch.
type BulkPayResult struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
}

// ExportResult points at an exported invoice document.
type ExportResult struct {
	FileName string `json:"file_name"`
	Key      string `json:"key"`
	URL      string `json:"url"`
	Pages    int    `json:"pages"`
}

// InvoiceService manages the invoice lifecycle and its documents.
type InvoiceService interface {
	CreateManual(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error)
	Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error)
	Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.Invoice, error)
	Send(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	BulkMarkPaid(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) []BulkPayResult
	Pages(ctx context.Context, tenantID, invoiceID uuid.UUID) (*render.Document, error)
	Export(ctx context.Context, tenantID, invoiceID uuid.UUID) (*ExportResult, error)
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	workItemRepo port.WorkItemRepository
	rasterizer   port.DocumentRasterizer
	storage      port.ObjectStorage
	mailer       port.InvoiceMailer
	validator    *validator.Engine
	defaults     draftDefaults
	s3Cfg        config.S3Config
	log          *zap.Logger
}

// NewInvoiceService creates a new InvoiceService implementation. storage and
// mailer may be nil; export then fails and sending skips the email.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	workItemRepo port.WorkItemRepository,
	profileRepo port.ProfileRepository,
	rasterizer port.DocumentRasterizer,
	storage port.ObjectStorage,
	mailer port.InvoiceMailer,
	engine *validator.Engine,
	billingCfg config.BillingConfig,
	s3Cfg config.S3Config,
	log *zap.Logger,
) InvoiceService {
	if engine == nil {
		engine = validator.NewEngine(nil)
	}
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		workItemRepo: workItemRepo,
		rasterizer:   rasterizer,
		storage:      storage,
		mailer:       mailer,
		validator:    engine,
		defaults:     draftDefaults{profiles: profileRepo, cfg: billingCfg},
		s3Cfg:        s3Cfg,
		log:          logger.OrNop(log).Named("invoice"),
	}
}

func (s *invoiceService) CreateManual(ctx context.Context, input *CreateInvoiceInput) (*domain.Invoice, error) {
	issue := time.Now().UTC()
	if input.IssueDate != nil {
		issue = *input.IssueDate
	}
	opts, err := s.defaults.options(ctx, input.TenantID, input.ClientID, issue, s.defaults.cfg.ManualDueDays)
	if err != nil {
		return nil, fmt.Errorf("invoice.CreateManual: %w", err)
	}

	name := input.ClientName
	if name == "" {
		name = opts.Client.Name
	}
	inv, err := billing.NewManualDraft(input.ClientID, name, input.LineItems, opts)
	if err != nil {
		return nil, err
	}
	if input.Discount != nil {
		inv.Discount = *input.Discount
		billing.Recompute(inv)
	}
	if err := createDraft(ctx, s.invoiceRepo, inv); err != nil {
		return nil, fmt.Errorf("invoice.CreateManual: %w", err)
	}
	s.log.Info("manual draft created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("invoice_number", inv.InvoiceNumber),
	)
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if billing.EvaluateOverdue(inv, time.Now().UTC()) {
		if err := s.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
			s.log.Warn("persisting overdue status failed",
				zap.String("invoice_id", inv.ID.String()),
				zap.Error(err),
			)
		}
	}
	return inv, nil
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	markOverdue(ctx, s.invoiceRepo, tenantID, s.log)
	return s.invoiceRepo.List(ctx, tenantID, filter)
}

// markOverdue moves the tenant's sent invoices past their due date to
// overdue before a read. A failure is logged and the read goes ahead.
func markOverdue(ctx context.Context, repo port.InvoiceRepository, tenantID uuid.UUID, log *zap.Logger) {
	n, err := repo.MarkOverdue(ctx, tenantID, time.Now().UTC())
	if err != nil {
		log.Warn("marking overdue invoices failed", zap.Error(err))
		return
	}
	if n > 0 {
		log.Info("invoices marked overdue", zap.Int("count", n))
	}
}

func (s *invoiceService) Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, input.TenantID, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.Editable() {
		return nil, domain.ErrInvoiceFrozen
	}

	if input.TaxConfig != nil {
		if err := input.TaxConfig.Validate(); err != nil {
			return nil, err
		}
		inv.TaxConfig = *input.TaxConfig
		for i := range inv.LineItems {
			inv.LineItems[i].TaxRate = input.TaxConfig.Rate
		}
	}
	if input.LineItems != nil {
		lines, err := s.applyLines(ctx, inv, input.LineItems)
		if err != nil {
			return nil, err
		}
		inv.LineItems = lines
	}
	if input.IssueDate != nil && !sameDay(*input.IssueDate, inv.IssueDate) {
		number, err := billing.AssignNumber(*input.IssueDate, inv.SessionToken)
		if err != nil {
			return nil, err
		}
		inv.IssueDate, inv.InvoiceNumber = *input.IssueDate, number
	}
	if input.DueDate != nil {
		inv.DueDate = *input.DueDate
	}
	if input.ClientName != nil {
		inv.ClientName = *input.ClientName
	}
	if input.Sender != nil {
		inv.Sender = *input.Sender
	}
	if input.Client != nil {
		inv.Client = *input.Client
	}
	if input.CurrencyCode != nil {
		inv.CurrencyCode = *input.CurrencyCode
	}
	if input.Discount != nil {
		inv.Discount = *input.Discount
	}
	if input.Memo != nil {
		inv.Memo = *input.Memo
	}
	if input.PaymentInstructions != nil {
		inv.PaymentInstructions = *input.PaymentInstructions
	}
	if input.Footer != nil {
		inv.Footer = *input.Footer
	}

	billing.Recompute(inv)
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoice.Update: %w", err)
	}
	return inv, nil
}

// applyLines fills in ids and the invoice tax rate. Once an invoice is
// finalized its billed work items can no longer be added or removed.
func (s *invoiceService) applyLines(ctx context.Context, inv *domain.Invoice, lines []domain.LineItem) ([]domain.LineItem, error) {
	out := make([]domain.LineItem, len(lines))
	for i, l := range lines {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		l.TaxRate = inv.TaxConfig.Rate
		out[i] = l
	}
	next := (&domain.Invoice{LineItems: out}).WorkItemIDs()
	if inv.Finalized() {
		if !sameIDs(inv.WorkItemIDs(), next) {
			return nil, fmt.Errorf("%w: billed work items cannot change", domain.ErrInvoiceFrozen)
		}
		return out, nil
	}
	if err := s.checkLinkedItems(ctx, inv, next); err != nil {
		return nil, err
	}
	return out, nil
}

// checkLinkedItems accepts newly linked work items only when they are
// billable items of the invoice's own client. Each item backs at most one line.
func (s *invoiceService) checkLinkedItems(ctx context.Context, inv *domain.Invoice, ids []uuid.UUID) error {
	linked := make(map[uuid.UUID]struct{})
	for _, id := range inv.WorkItemIDs() {
		linked[id] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var added []uuid.UUID
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: work item %s is on more than one line", domain.ErrWorkItemNotBillable, id)
		}
		seen[id] = struct{}{}
		if _, ok := linked[id]; !ok {
			added = append(added, id)
		}
	}
	if len(added) == 0 {
		return nil
	}

	items, err := s.workItemRepo.GetByIDs(ctx, inv.TenantID, added)
	if err != nil {
		return fmt.Errorf("invoice.Update: %w", err)
	}
	for i := range items {
		w := &items[i]
		if w.ClientID != inv.ClientID {
			return fmt.Errorf("%w: work item %s belongs to %s", domain.ErrClientMismatch, w.ID, w.ClientID)
		}
		if !billing.IsBillable(w) {
			return fmt.Errorf("%w: work item %s", domain.ErrWorkItemNotBillable, w.ID)
		}
	}
	return nil
}

func (s *invoiceService) Send(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	billing.Recompute(inv)
	if inv.Status == domain.InvoiceStatusDraft {
		if err := s.validator.ValidateForSend(inv); err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	if err := billing.Transition(inv, domain.InvoiceStatusSent, now); err != nil {
		return nil, err
	}

	if inv.Finalized() {
		err = s.invoiceRepo.UpdateStatus(ctx, inv)
	} else {
		err = finalize(ctx, s.invoiceRepo, inv, now)
	}
	if err != nil {
		if errors.Is(err, domain.ErrPartialBilling) {
			s.log.Error("send rolled back", zap.String("invoice_id", inv.ID.String()), zap.Error(err))
			return nil, err
		}
		return nil, fmt.Errorf("invoice.Send: %w", err)
	}
	s.log.Info("invoice sent", zap.String("invoice_id", inv.ID.String()))

	s.notify(ctx, inv)
	return inv, nil
}

// notify emails the client. Delivery failures do not undo the send.
func (s *invoiceService) notify(ctx context.Context, inv *domain.Invoice) {
	if s.mailer == nil || inv.Client.Email == "" {
		return
	}
	msg := port.InvoiceEmail{
		ToEmail:       inv.Client.Email,
		ToName:        inv.Client.Name,
		FromName:      inv.Sender.Name,
		ReplyTo:       inv.Sender.Email,
		InvoiceID:     inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		AmountDue:     billing.FormatMoney(inv.CurrencyCode, inv.Totals.Total),
		DueDate:       inv.DueDate.Format("02 Jan 2006"),
	}
	if err := s.mailer.SendInvoice(ctx, msg); err != nil {
		s.log.Warn("invoice email failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *invoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := billing.Transition(inv, domain.InvoiceStatusPaid, time.Now().UTC()); err != nil {
		return nil, err
	}
	n, err := s.invoiceRepo.MarkPaidWithWorkItems(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("invoice.MarkPaid: %w", err)
	}
	s.log.Info("invoice paid",
		zap.String("invoice_id", inv.ID.String()),
		zap.Int("work_items", n),
	)
	return inv, nil
}

func (s *invoiceService) BulkMarkPaid(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) []BulkPayResult {
	results := make([]BulkPayResult, 0, len(invoiceIDs))
	for _, id := range dedupe(invoiceIDs) {
		r := BulkPayResult{InvoiceID: id, Success: true}
		if _, err := s.MarkPaid(ctx, tenantID, id); err != nil {
			r.Success, r.Error = false, err.Error()
		}
		results = append(results, r)
	}
	return results
}

func (s *invoiceService) Pages(ctx context.Context, tenantID, invoiceID uuid.UUID) (*render.Document, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return render.RenderInvoice(inv, render.Options{BrandName: s.defaults.cfg.BrandName})
}

// Export renders, rasterizes and uploads the invoice, returning a presigned
// link. The invoice itself is never written.
func (s *invoiceService) Export(ctx context.Context, tenantID, invoiceID uuid.UUID) (*ExportResult, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if s.storage == nil || s.rasterizer == nil {
		return nil, fmt.Errorf("%w: document storage not configured", domain.ErrExportFailed)
	}

	doc, err := render.RenderInvoice(inv, render.Options{BrandName: s.defaults.cfg.BrandName})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}
	key := fmt.Sprintf("%s/%s/%s", s.defaults.cfg.ExportKeyPrefix, tenantID, doc.FileName)
	url, err := publishDocument(ctx, s.rasterizer, s.storage, s.s3Cfg, doc, key, map[string]string{
		"tenant-id":      tenantID.String(),
		"invoice-id":     inv.ID.String(),
		"invoice-number": inv.InvoiceNumber,
		"invoice-status": string(inv.Status),
	})
	if err != nil {
		s.log.Warn("invoice export failed",
			zap.String("invoice_id", inv.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}
	return &ExportResult{FileName: doc.FileName, Key: key, URL: url, Pages: doc.PageCount()}, nil
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func sameIDs(a, b []uuid.UUID) bool {
	a, b = dedupe(a), dedupe(b)
	if len(a) != len(b) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
