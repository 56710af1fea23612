package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/render"
	"fynix/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) invoice(args mock.Arguments) (*domain.Invoice, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) CreateManual(ctx context.Context, input *service.CreateInvoiceInput) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, input))
}

func (m *MockInvoiceService) Get(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, invoiceID))
}

func (m *MockInvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) Update(ctx context.Context, input *service.UpdateInvoiceInput) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, input))
}

func (m *MockInvoiceService) Send(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, invoiceID))
}

func (m *MockInvoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return m.invoice(m.Called(ctx, tenantID, invoiceID))
}

func (m *MockInvoiceService) BulkMarkPaid(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) []service.BulkPayResult {
	args := m.Called(ctx, tenantID, invoiceIDs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.BulkPayResult)
}

func (m *MockInvoiceService) Pages(ctx context.Context, tenantID, invoiceID uuid.UUID) (*render.Document, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Document), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, tenantID, invoiceID uuid.UUID) (*service.ExportResult, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
