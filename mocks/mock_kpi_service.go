package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
)

// MockKPIService is a mock implementation of service.KPIService.
type MockKPIService struct {
	mock.Mock
}

func (m *MockKPIService) Summary(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*domain.KPISummary, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KPISummary), args.Error(1)
}

func (m *MockKPIService) Periods(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string) ([]domain.PeriodSummary, error) {
	args := m.Called(ctx, tenantID, filter, granularity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodSummary), args.Error(1)
}

func (m *MockKPIService) Clients(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
