package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fynix/internal/domain"
	"fynix/internal/service"
)

// BillingHandler handles unbilled work and draft generation endpoints.
type BillingHandler struct {
	billingService service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// ListUnbilled handles GET /api/v1/billing/unbilled
// @Summary List unbilled work grouped by client
// @Tags billing
// @Produce json
// @Security BearerAuth
// @Param client query string false "Client ID"
// @Param from query string false "Due on or after (YYYY-MM-DD)"
// @Param to query string false "Due on or before (YYYY-MM-DD)"
// @Param q query string false "Search title or client"
// @Success 200 {object} APIResponse{data=domain.UnbilledSummary}
// @Failure 400 {object} APIResponse
// @Router /billing/unbilled [get]
func (h *BillingHandler) ListUnbilled(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	filter := domain.WorkItemFilter{ClientID: c.Query("client"), Search: c.Query("q")}
	if filter.DueFrom, ok = parseDate(c, "from"); !ok {
		return
	}
	if filter.DueTo, ok = parseDate(c, "to"); !ok {
		return
	}

	summary, err := h.billingService.ListUnbilled(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// CreateDraft handles POST /api/v1/billing/drafts
// @Summary Generate a draft invoice from selected work items
// @Tags billing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateDraftRequest true "Selection"
// @Success 201 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /billing/drafts [post]
func (h *BillingHandler) CreateDraft(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "client_id and work_item_ids are required")
		return
	}
	issueDate, err := parseBodyDate(req.IssueDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'issue_date': must be YYYY-MM-DD")
		return
	}

	inv, err := h.billingService.CreateDraft(c.Request.Context(), &service.CreateDraftInput{
		TenantID:    tenantID,
		ClientID:    req.ClientID,
		WorkItemIDs: req.WorkItemIDs,
		IssueDate:   issueDate,
		Finalize:    req.Finalize,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// parseBodyDate parses an optional YYYY-MM-DD string from a request body.
func parseBodyDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
