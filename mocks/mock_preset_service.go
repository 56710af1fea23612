package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/service"
)

// MockPresetService is a mock implementation of service.PresetService.
type MockPresetService struct {
	mock.Mock
}

func (m *MockPresetService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentPreset), args.Error(1)
}

func (m *MockPresetService) Add(ctx context.Context, input *service.AddPresetInput) (*domain.PaymentPreset, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPreset), args.Error(1)
}

func (m *MockPresetService) Delete(ctx context.Context, tenantID, presetID uuid.UUID) error {
	args := m.Called(ctx, tenantID, presetID)
	return args.Error(0)
}

func (m *MockPresetService) Apply(ctx context.Context, tenantID, invoiceID, presetID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
