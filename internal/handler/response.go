package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fynix/internal/domain"
	"fynix/internal/middleware"
	"fynix/internal/validator"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

var errorLog = zap.NewNop()

// SetErrorLogger sets the logger used by HandleError for internal errors.
func SetErrorLogger(log *zap.Logger) {
	if log != nil {
		errorLog = log
	}
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrWorkItemNotFound):
		return http.StatusNotFound, "WORK_ITEM_NOT_FOUND", "work item not found"
	case errors.Is(err, domain.ErrPresetNotFound):
		return http.StatusNotFound, "PRESET_NOT_FOUND", "payment preset not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error()
	case errors.Is(err, domain.ErrInvalidTaxConfig):
		return http.StatusBadRequest, "INVALID_TAX_CONFIG", "tax mode must be single, split or none with a non-negative rate"
	case errors.Is(err, domain.ErrNegativeAmount):
		return http.StatusBadRequest, "NEGATIVE_AMOUNT", "quantity, price and discount must not be negative"
	case errors.Is(err, domain.ErrNoWorkItemsSelected):
		return http.StatusBadRequest, "NO_WORK_ITEMS", "select at least one work item to invoice"
	case errors.Is(err, domain.ErrInvalidSessionToken):
		return http.StatusBadRequest, "INVALID_SESSION_TOKEN", "invoice session token must be 4 digits"
	case errors.Is(err, domain.ErrClientMismatch):
		return http.StatusConflict, "CLIENT_MISMATCH", "work items belong to a different client"
	case errors.Is(err, domain.ErrWorkItemNotBillable):
		return http.StatusConflict, "WORK_ITEM_NOT_BILLABLE", "work item is not eligible for billing"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "INVALID_TRANSITION", "invalid invoice status transition"
	case errors.Is(err, domain.ErrInvoiceFrozen):
		return http.StatusConflict, "INVOICE_FROZEN", "invoice can no longer be edited"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists"
	case errors.Is(err, domain.ErrPartialBilling):
		return http.StatusConflict, "PARTIAL_BILLING", "work items changed concurrently; billing rolled back"
	case errors.Is(err, domain.ErrExportFailed):
		return http.StatusBadGateway, "EXPORT_FAILED", "invoice export failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// tenantFromContext returns the tenant ID or writes a 401 and returns false.
func tenantFromContext(c *gin.Context) (uuid.UUID, bool) {
	tenantID, err := middleware.GetTenantID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing tenant context")
		return uuid.Nil, false
	}
	return tenantID, true
}

// uuidParam parses a path parameter or writes a 400 and returns false.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation failures carry the failed rule results as data.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		errorLog.Error("internal error",
			zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	if ve, ok := validator.AsValidationError(err); ok {
		c.JSON(status, APIResponse{
			Success: false,
			Data:    ve.Failures,
			Error:   &APIError{Code: code, Message: msg},
		})
		return
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseDate reads an optional YYYY-MM-DD query parameter.
func parseDate(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid '"+key+"' date: must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// parseStatus reads an optional invoice status query parameter.
func parseStatus(c *gin.Context) (domain.InvoiceStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status := domain.InvoiceStatus(raw)
	if !domain.ValidInvoiceStatuses[status] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'status': must be one of draft, sent, paid, overdue")
		return "", false
	}
	return status, true
}

// parseKPIFilter reads the client, status and date window query parameters.
func parseKPIFilter(c *gin.Context) (domain.KPIFilter, bool) {
	var filter domain.KPIFilter
	var ok bool
	filter.ClientID = c.Query("client")
	if filter.Status, ok = parseStatus(c); !ok {
		return filter, false
	}
	if filter.From, ok = parseDate(c, "from"); !ok {
		return filter, false
	}
	if filter.To, ok = parseDate(c, "to"); !ok {
		return filter, false
	}
	return filter, true
}

// parseInvoiceFilter reads invoice listing filters and pagination.
func parseInvoiceFilter(c *gin.Context) (domain.InvoiceFilter, bool) {
	kpi, ok := parseKPIFilter(c)
	if !ok {
		return domain.InvoiceFilter{}, false
	}
	offset, limit := parsePagination(c)
	return domain.InvoiceFilter{
		ClientID: kpi.ClientID,
		Status:   kpi.Status,
		Search:   c.Query("q"),
		From:     kpi.From,
		To:       kpi.To,
		Offset:   offset,
		Limit:    limit,
	}, true
}
