package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fynix/internal/service"
)

// PresetHandler handles payment preset endpoints.
type PresetHandler struct {
	presetService service.PresetService
}

// NewPresetHandler creates a new PresetHandler.
func NewPresetHandler(presetService service.PresetService) *PresetHandler {
	return &PresetHandler{presetService: presetService}
}

// List handles GET /api/v1/presets
// @Summary List payment presets
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=[]domain.PaymentPreset}
// @Router /presets [get]
func (h *PresetHandler) List(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	presets, err := h.presetService.List(c.Request.Context(), tenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, presets)
}

// Add handles POST /api/v1/presets
// @Summary Add a payment preset
// @Tags presets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AddPresetRequest true "Preset"
// @Success 201 {object} APIResponse{data=domain.PaymentPreset}
// @Failure 400 {object} APIResponse
// @Router /presets [post]
func (h *PresetHandler) Add(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req AddPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	preset, err := h.presetService.Add(c.Request.Context(), &service.AddPresetInput{
		TenantID: tenantID,
		ID:       req.ID,
		Name:     req.Name,
		Content:  req.Content,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, preset)
}

// Delete handles DELETE /api/v1/presets/:id
// @Summary Delete a payment preset
// @Tags presets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preset ID"
// @Success 200 {object} APIResponse
// @Router /presets/{id} [delete]
func (h *PresetHandler) Delete(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	presetID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.presetService.Delete(c.Request.Context(), tenantID, presetID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "preset deleted"})
}
