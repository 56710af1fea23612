package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/billing"
	"fynix/internal/config"
	"fynix/internal/domain"
	"fynix/internal/export/csvexport"
	"fynix/internal/export/xlsxexport"
	"fynix/internal/logger"
	"fynix/internal/port"
	"fynix/internal/render"
)

// ReportService produces downloadable invoice history and KPI reports.
type ReportService interface {
	InvoicesCSV(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter, w io.Writer) error
	Workbook(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string, w io.Writer) error
	KPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*render.Document, error)
	ExportKPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*ExportResult, error)
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
	kpi         KPIService
	rasterizer  port.DocumentRasterizer
	storage     port.ObjectStorage
	cfg         config.BillingConfig
	s3Cfg       config.S3Config
	log         *zap.Logger
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	invoiceRepo port.InvoiceRepository,
	kpi KPIService,
	rasterizer port.DocumentRasterizer,
	storage port.ObjectStorage,
	cfg config.BillingConfig,
	s3Cfg config.S3Config,
	log *zap.Logger,
) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
		kpi:         kpi,
		rasterizer:  rasterizer,
		storage:     storage,
		cfg:         cfg,
		s3Cfg:       s3Cfg,
		log:         logger.OrNop(log).Named("report"),
	}
}

func (s *reportService) InvoicesCSV(ctx context.Context, tenantID uuid.UUID, filter domain.InvoiceFilter, w io.Writer) error {
	filter.Offset, filter.Limit = 0, 0
	markOverdue(ctx, s.invoiceRepo, tenantID, s.log)
	invoices, _, err := s.invoiceRepo.List(ctx, tenantID, filter)
	if err != nil {
		return fmt.Errorf("report.InvoicesCSV: %w", err)
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteInvoices(invoices); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) Workbook(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter, granularity string, w io.Writer) error {
	invoices, err := s.windowInvoices(ctx, tenantID, filter)
	if err != nil {
		return fmt.Errorf("report.Workbook: %w", err)
	}
	summary, err := s.kpi.Summary(ctx, tenantID, filter)
	if err != nil {
		return err
	}
	periods, err := s.kpi.Periods(ctx, tenantID, filter, granularity)
	if err != nil {
		return err
	}
	return xlsxexport.Write(w, &xlsxexport.Data{Invoices: invoices, Summary: *summary, Periods: periods})
}

func (s *reportService) windowInvoices(ctx context.Context, tenantID uuid.UUID, f domain.KPIFilter) ([]domain.Invoice, error) {
	markOverdue(ctx, s.invoiceRepo, tenantID, s.log)
	invoices, _, err := s.invoiceRepo.List(ctx, tenantID, domain.InvoiceFilter{
		ClientID: f.ClientID,
		Status:   f.Status,
		From:     f.From,
		To:       f.To,
	})
	return invoices, err
}

// KPIReport lays out the KPI cards followed by one row per invoice in the
// window.
func (s *reportService) KPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*render.Document, error) {
	summary, err := s.kpi.Summary(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	invoices, err := s.windowInvoices(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("report.KPIReport: %w", err)
	}

	return render.RenderReport(s.buildReport(summary, invoices, filter)), nil
}

func (s *reportService) buildReport(summary *domain.KPISummary, invoices []domain.Invoice, filter domain.KPIFilter) *render.Report {
	code := s.cfg.CurrencyCode
	r := &render.Report{
		Title:       "Finance Report",
		Subtitle:    windowLabel(filter),
		BrandName:   s.cfg.BrandName,
		GeneratedAt: time.Now().UTC(),
		Cards: []render.Card{
			{Label: "Invoiced", Value: billing.FormatMoney(code, summary.Invoiced)},
			{Label: "Received", Value: billing.FormatMoney(code, summary.Received)},
			{Label: "Due", Value: billing.FormatMoney(code, summary.Due)},
			{Label: "To Be Invoiced", Value: billing.FormatMoney(code, summary.ToBeInvoiced)},
			{Label: "Expenses", Value: billing.FormatMoney(code, summary.Expenses)},
			{Label: "Profit", Value: billing.FormatMoney(code, summary.Profit)},
		},
		Columns: []render.Column{
			{Header: "Invoice", Width: 0.22},
			{Header: "Client", Width: 0.30},
			{Header: "Issue Date", Width: 0.16},
			{Header: "Status", Width: 0.12},
			{Header: "Amount", Align: render.AlignRight},
		},
	}
	for i := range invoices {
		inv := &invoices[i]
		r.Rows = append(r.Rows, []string{
			inv.InvoiceNumber,
			inv.ClientName,
			inv.IssueDate.Format("02 Jan 2006"),
			string(inv.Status),
			billing.FormatMoney(inv.CurrencyCode, inv.Totals.Total),
		})
	}
	return r
}

func windowLabel(f domain.KPIFilter) string {
	label := "All clients"
	if f.ClientID != "" {
		label = "Client " + f.ClientID
	}
	if f.Status != "" {
		label += ", " + string(f.Status)
	}
	switch {
	case f.From != nil && f.To != nil:
		label += fmt.Sprintf(", %s to %s", f.From.Format("02 Jan 2006"), f.To.Format("02 Jan 2006"))
	case f.From != nil:
		label += ", from " + f.From.Format("02 Jan 2006")
	case f.To != nil:
		label += ", until " + f.To.Format("02 Jan 2006")
	}
	return label
}

func (s *reportService) ExportKPIReport(ctx context.Context, tenantID uuid.UUID, filter domain.KPIFilter) (*ExportResult, error) {
	if s.storage == nil || s.rasterizer == nil {
		return nil, fmt.Errorf("%w: document storage not configured", domain.ErrExportFailed)
	}
	doc, err := s.KPIReport(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/reports/%s", s.cfg.ExportKeyPrefix, tenantID, render.FileName(fmt.Sprintf("Finance_Report_%s", time.Now().UTC().Format("20060102_150405"))))
	url, err := publishDocument(ctx, s.rasterizer, s.storage, s.s3Cfg, doc, key, map[string]string{
		"tenant-id": tenantID.String(),
		"document":  "kpi-report",
	})
	if err != nil {
		s.log.Warn("report export failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}
	return &ExportResult{FileName: doc.FileName, Key: key, URL: url, Pages: doc.PageCount()}, nil
}
