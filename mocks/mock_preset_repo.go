package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
)

// MockPresetRepo is a mock implementation of port.PresetRepository.
type MockPresetRepo struct {
	mock.Mock
}

func (m *MockPresetRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.PaymentPreset, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentPreset), args.Error(1)
}

func (m *MockPresetRepo) Create(ctx context.Context, preset *domain.PaymentPreset) error {
	args := m.Called(ctx, preset)
	return args.Error(0)
}

func (m *MockPresetRepo) GetByID(ctx context.Context, tenantID, presetID uuid.UUID) (*domain.PaymentPreset, error) {
	args := m.Called(ctx, tenantID, presetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentPreset), args.Error(1)
}

func (m *MockPresetRepo) Delete(ctx context.Context, tenantID, presetID uuid.UUID) error {
	args := m.Called(ctx, tenantID, presetID)
	return args.Error(0)
}
