package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
	"fynix/internal/handler"
	"fynix/internal/service"
	"fynix/mocks"
)

func TestPresetHandler_Add(t *testing.T) {
	svc := new(mocks.MockPresetService)
	h := handler.NewPresetHandler(svc)
	tenantID := uuid.New()

	svc.On("Add", mock.Anything, mock.MatchedBy(func(in *service.AddPresetInput) bool {
		return in.TenantID == tenantID && in.Name == "Wire" && in.ID == nil
	})).Return(&domain.PaymentPreset{ID: uuid.New(), Name: "Wire"}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/presets", gin.H{"name": "Wire", "content": "SWIFT: HDFCINBB"}, tenantID)
	h.Add(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestPresetHandler_Add_MissingName(t *testing.T) {
	h := handler.NewPresetHandler(new(mocks.MockPresetService))

	c, w := newContext(http.MethodPost, "/api/v1/presets", gin.H{"content": "x"}, uuid.New())
	h.Add(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresetHandler_Delete(t *testing.T) {
	svc := new(mocks.MockPresetService)
	h := handler.NewPresetHandler(svc)
	tenantID, presetID := uuid.New(), uuid.New()

	svc.On("Delete", mock.Anything, tenantID, presetID).Return(nil)

	c, w := newContext(http.MethodDelete, "/", nil, tenantID)
	c.Params = gin.Params{{Key: "id", Value: presetID.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestPresetHandler_List(t *testing.T) {
	svc := new(mocks.MockPresetService)
	h := handler.NewPresetHandler(svc)
	tenantID := uuid.New()

	svc.On("List", mock.Anything, tenantID).Return(service.DefaultPresets, nil)

	c, w := newContext(http.MethodGet, "/api/v1/presets", nil, tenantID)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bank Transfer")
}
