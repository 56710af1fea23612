package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/render"
	"fynix/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
// Body, when set, is written to w by the streaming methods.
type MockReportService struct {
	mock.Mock
	Body []byte
}

func (m *MockReportService) InvoicesCSV(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter, w io.Writer) error {
	args := m.Called(ctx, tenantID, filter, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Body)
	return err
}

func (m *MockReportService) Workbook(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string, w io.Writer) error {
	args := m.Called(ctx, tenantID, filter, granularity, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Body)
	return err
}

func (m *MockReportService) KPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*render.Document, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Document), args.Error(1)
}

func (m *MockReportService) ExportKPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*service.ExportResult, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}
