package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) UpdateStatus(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MarkOverdue(ctx context.Context, tenantID uuid.UUID, asOf time.Time) (int, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockInvoiceRepo) FinalizeWithWorkItems(ctx context.Context, inv *domain.Invoice, workItemIDs []uuid.UUID) error {
	args := m.Called(ctx, inv, workItemIDs)
	return args.Error(0)
}

func (m *MockInvoiceRepo) MarkPaidWithWorkItems(ctx context.Context, inv *domain.Invoice) (int, error) {
	args := m.Called(ctx, inv)
	return args.Int(0), args.Error(1)
}
