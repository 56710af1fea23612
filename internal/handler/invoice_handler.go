package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fynix/internal/service"
)

// InvoiceHandler handles invoice lifecycle and document endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	billingService service.BillingService
	presetService  service.PresetService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, billingService service.BillingService, presetService service.PresetService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		billingService: billingService,
		presetService:  presetService,
	}
}

// Create handles POST /api/v1/invoices
// @Summary Create a manual draft invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInvoiceRequest true "Draft"
// @Success 201 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_id is required")
		return
	}
	issueDate, err := parseBodyDate(req.IssueDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'issue_date': must be YYYY-MM-DD")
		return
	}

	inv, err := h.invoiceService.CreateManual(c.Request.Context(), &service.CreateInvoiceInput{
		TenantID:   tenantID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		IssueDate:  issueDate,
		LineItems:  toLineItems(req.LineItems),
		Discount:   req.Discount,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param client query string false "Client ID"
// @Param status query string false "draft, sent, paid or overdue"
// @Param from query string false "Issued on or after (YYYY-MM-DD)"
// @Param to query string false "Issued on or before (YYYY-MM-DD)"
// @Param q query string false "Search number or client name"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Invoice,meta=PagMeta}
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseInvoiceFilter(c)
	if !ok {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: filter.Offset, Limit: filter.Limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 404 {object} APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.Get(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Update handles PUT /api/v1/invoices/:id
// @Summary Edit a draft invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param body body UpdateInvoiceRequest true "Changes"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 409 {object} APIResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	issueDate, err := parseBodyDate(req.IssueDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'issue_date': must be YYYY-MM-DD")
		return
	}
	dueDate, err := parseBodyDate(req.DueDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'due_date': must be YYYY-MM-DD")
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), &service.UpdateInvoiceInput{
		TenantID:            tenantID,
		InvoiceID:           invoiceID,
		ClientName:          req.ClientName,
		Sender:              req.Sender,
		Client:              req.Client,
		IssueDate:           issueDate,
		DueDate:             dueDate,
		CurrencyCode:        req.CurrencyCode,
		LineItems:           toLineItems(req.LineItems),
		Discount:            req.Discount,
		TaxConfig:           req.TaxConfig,
		Memo:                req.Memo,
		PaymentInstructions: req.PaymentInstructions,
		Footer:              req.Footer,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Finalize handles POST /api/v1/invoices/:id/finalize
// @Summary Bill the invoice's work items
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 409 {object} APIResponse
// @Router /invoices/{id}/finalize [post]
func (h *InvoiceHandler) Finalize(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.billingService.Finalize(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Send handles POST /api/v1/invoices/:id/send
// @Summary Validate and send an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 422 {object} APIResponse
// @Router /invoices/{id}/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.Send(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// MarkPaid handles POST /api/v1/invoices/:id/pay
// @Summary Mark an invoice paid
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 409 {object} APIResponse
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.MarkPaid(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// BulkMarkPaid handles POST /api/v1/invoices/pay
// @Summary Mark several invoices paid
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BulkPayRequest true "Invoice IDs"
// @Success 200 {object} APIResponse{data=[]service.BulkPayResult}
// @Router /invoices/pay [post]
func (h *InvoiceHandler) BulkMarkPaid(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req BulkPayRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.InvoiceIDs) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invoice_ids is required")
		return
	}

	RespondOK(c, h.invoiceService.BulkMarkPaid(c.Request.Context(), tenantID, req.InvoiceIDs))
}

// ApplyPreset handles POST /api/v1/invoices/:id/presets/:presetId
// @Summary Copy a payment preset onto a draft
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Param presetId path string true "Preset ID"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 404 {object} APIResponse
// @Router /invoices/{id}/presets/{presetId} [post]
func (h *InvoiceHandler) ApplyPreset(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	presetID, ok := uuidParam(c, "presetId")
	if !ok {
		return
	}

	inv, err := h.presetService.Apply(c.Request.Context(), tenantID, invoiceID, presetID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Pages handles GET /api/v1/invoices/:id/pages
// @Summary Rendered page layout of an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=render.Document}
// @Router /invoices/{id}/pages [get]
func (h *InvoiceHandler) Pages(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	doc, err := h.invoiceService.Pages(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Export handles POST /api/v1/invoices/:id/export
// @Summary Export an invoice as PDF
// @Description Rasterizes the invoice, stores it and returns a presigned download link.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} APIResponse{data=service.ExportResult}
// @Failure 502 {object} APIResponse
// @Router /invoices/{id}/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.invoiceService.Export(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
