package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fynix/internal/export/csvexport"
	"fynix/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles invoice exports and the KPI report.
type ReportHandler struct {
	reportService service.ReportService
	now           func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

// ExportCSV handles GET /api/v1/invoices/export.csv
// @Summary Download filtered invoices as CSV
// @Tags reports
// @Produce text/csv
// @Security BearerAuth
// @Param client query string false "Client ID"
// @Param status query string false "Invoice status"
// @Param q query string false "Search"
// @Success 200 {file} file
// @Router /invoices/export.csv [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseInvoiceFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.InvoicesCSV(c.Request.Context(), tenantID, filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	h.attach(c, "text/csv; charset=utf-8", "invoices", "csv", buf.Bytes())
}

// ExportXLSX handles GET /api/v1/invoices/export.xlsx
// @Summary Download invoices, KPIs and period revenue as a workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param group_by query string false "Period granularity" default(monthly)
// @Success 200 {file} file
// @Router /invoices/export.xlsx [get]
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseKPIFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.Workbook(c.Request.Context(), tenantID, filter, c.Query("group_by"), &buf); err != nil {
		HandleError(c, err)
		return
	}

	h.attach(c, xlsxContentType, "finance_report", "xlsx", buf.Bytes())
}

// KPIReport handles GET /api/v1/kpis/report
// @Summary Export the KPI report as PDF
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=service.ExportResult}
// @Failure 502 {object} APIResponse
// @Router /kpis/report [get]
func (h *ReportHandler) KPIReport(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseKPIFilter(c)
	if !ok {
		return
	}

	result, err := h.reportService.ExportKPIReport(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

func (h *ReportHandler) attach(c *gin.Context, contentType, name, ext string, body []byte) {
	filename := csvexport.BuildFilename(name, ext, h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
