package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/domain"
	"fynix/internal/logger"
	"fynix/internal/port"
)

// DefaultPresets are seeded for tenants that have none.
var DefaultPresets = []domain.PaymentPreset{
	{
		Name:    "Bank Transfer",
		Content: "Bank: HDFC Bank\nA/C Name: Fynix Digital Pvt Ltd\nA/C No: 50200012345678\nIFSC: HDFC0001234\nBranch: Mumbai",
	},
	{
		Name:    "UPI",
		Content: "UPI ID: fynix@hdfcbank\nGPay/PhonePe: 9876543210",
	},
}

// AddPresetInput is the DTO for creating a payment preset.
type AddPresetInput struct {
	TenantID uuid.UUID
	ID       *uuid.UUID
	Name     string
	Content  string
}

// PresetService manages reusable payment instruction blocks.
type PresetService interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error)
	Add(ctx context.Context, input *AddPresetInput) (*domain.PaymentPreset, error)
	Delete(ctx context.Context, tenantID, presetID uuid.UUID) error
	Apply(ctx context.Context, tenantID, invoiceID, presetID uuid.UUID) (*domain.Invoice, error)
}

type presetService struct {
	presetRepo  port.PresetRepository
	invoiceRepo port.InvoiceRepository
	log         *zap.Logger
}

// NewPresetService creates a new PresetService implementation.
func NewPresetService(presetRepo port.PresetRepository, invoiceRepo port.InvoiceRepository, log *zap.Logger) PresetService {
	return &presetService{
		presetRepo:  presetRepo,
		invoiceRepo: invoiceRepo,
		log:         logger.OrNop(log).Named("preset"),
	}
}

func (s *presetService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error) {
	presets, err := s.presetRepo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("preset.List: %w", err)
	}
	if len(presets) > 0 {
		return presets, nil
	}

	now := time.Now().UTC()
	seeded := make([]domain.PaymentPreset, 0, len(DefaultPresets))
	for _, def := range DefaultPresets {
		p := domain.PaymentPreset{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Name:      def.Name,
			Content:   def.Content,
			CreatedAt: now,
		}
		if err := s.presetRepo.Create(ctx, &p); err != nil {
			return nil, fmt.Errorf("preset.List: seeding defaults: %w", err)
		}
		seeded = append(seeded, p)
	}
	s.log.Info("default presets seeded", zap.String("tenant_id", tenantID.String()))
	return seeded, nil
}

func (s *presetService) Add(ctx context.Context, input *AddPresetInput) (*domain.PaymentPreset, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: preset name is required", domain.ErrValidation)
	}
	p := &domain.PaymentPreset{
		ID:        uuid.New(),
		TenantID:  input.TenantID,
		Name:      strings.TrimSpace(input.Name),
		Content:   input.Content,
		CreatedAt: time.Now().UTC(),
	}
	if input.ID != nil && *input.ID != uuid.Nil {
		p.ID = *input.ID
	}
	if err := s.presetRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("preset.Add: %w", err)
	}
	return p, nil
}

func (s *presetService) Delete(ctx context.Context, tenantID, presetID uuid.UUID) error {
	if err := s.presetRepo.Delete(ctx, tenantID, presetID); err != nil {
		return fmt.Errorf("preset.Delete: %w", err)
	}
	return nil
}

// Apply copies the preset content into the draft. Later preset edits do not
// affect the invoice.
func (s *presetService) Apply(ctx context.Context, tenantID, invoiceID, presetID uuid.UUID) (*domain.Invoice, error) {
	preset, err := s.presetRepo.GetByID(ctx, tenantID, presetID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !inv.Editable() {
		return nil, domain.ErrInvoiceFrozen
	}
	inv.PaymentInstructions = preset.Content
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("preset.Apply: %w", err)
	}
	return inv, nil
}
