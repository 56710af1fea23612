package handler

import (
	"github.com/gin-gonic/gin"

	"fynix/internal/service"
)

// KPIHandler serves portfolio metrics.
type KPIHandler struct {
	kpiService service.KPIService
}

func NewKPIHandler(kpiService service.KPIService) *KPIHandler {
	return &KPIHandler{kpiService: kpiService}
}

// Summary handles GET /api/v1/kpis
// @Summary Portfolio KPIs for the active filter window
// @Tags kpis
// @Produce json
// @Security BearerAuth
// @Param client query string false "Client ID"
// @Param status query string false "Invoice status"
// @Param from query string false "From (YYYY-MM-DD)"
// @Param to query string false "To (YYYY-MM-DD)"
// @Success 200 {object} APIResponse{data=domain.KPISummary}
// @Router /kpis [get]
func (h *KPIHandler) Summary(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseKPIFilter(c)
	if !ok {
		return
	}

	summary, err := h.kpiService.Summary(c.Request.Context(), tenantID, filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// Periods handles GET /api/v1/kpis/periods
// @Summary Revenue grouped by period
// @Tags kpis
// @Produce json
// @Security BearerAuth
// @Param group_by query string false "daily, weekly, monthly, quarterly or yearly" default(monthly)
// @Success 200 {object} APIResponse{data=[]domain.PeriodSummary}
// @Failure 400 {object} APIResponse
// @Router /kpis/periods [get]
func (h *KPIHandler) Periods(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseKPIFilter(c)
	if !ok {
		return
	}

	periods, err := h.kpiService.Periods(c.Request.Context(), tenantID, filter, c.Query("group_by"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, periods)
}

// Clients handles GET /api/v1/clients
// @Summary Distinct client ids for filter pickers
// @Tags kpis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=ClientsResponse}
// @Router /clients [get]
func (h *KPIHandler) Clients(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	clients, err := h.kpiService.Clients(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ClientsResponse{Clients: clients})
}
