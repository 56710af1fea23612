package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/service"
)

// MockBillingService is a mock implementation of service.BillingService.
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) ListUnbilled(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) (*domain.UnbilledSummary, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UnbilledSummary), args.Error(1)
}

func (m *MockBillingService) CreateDraft(ctx context.Context, input *service.CreateDraftInput) (*domain.Invoice, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBillingService) Finalize(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
