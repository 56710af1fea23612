package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fynix/internal/domain"
	"fynix/internal/service"
	"fynix/mocks"
)

func setupPresetService() (service.PresetService, *mocks.MockPresetRepo, *mocks.MockInvoiceRepo) {
	presetRepo := new(mocks.MockPresetRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	return service.NewPresetService(presetRepo, invRepo, nil), presetRepo, invRepo
}

func TestPresetService_List_SeedsDefaults(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	tenantID := uuid.New()
	presetRepo.On("List", mock.Anything, tenantID).Return([]domain.PaymentPreset{}, nil)
	presetRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentPreset")).Return(nil)

	presets, err := svc.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "Bank Transfer", presets[0].Name)
	assert.Equal(t, "UPI", presets[1].Name)
	assert.Equal(t, tenantID, presets[0].TenantID)
	presetRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestPresetService_List_Existing(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	tenantID := uuid.New()
	existing := []domain.PaymentPreset{{ID: uuid.New(), TenantID: tenantID, Name: "Wire"}}
	presetRepo.On("List", mock.Anything, tenantID).Return(existing, nil)

	presets, err := svc.List(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, existing, presets)
	presetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPresetService_Add_AssignsID(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	presetRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.PaymentPreset")).Return(nil)

	p, err := svc.Add(context.Background(), &service.AddPresetInput{TenantID: uuid.New(), Name: " Wire ", Content: "SWIFT: HDFCINBB"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "Wire", p.Name)
}

func TestPresetService_Add_KeepsGivenID(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	presetRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	id := uuid.New()

	p, err := svc.Add(context.Background(), &service.AddPresetInput{TenantID: uuid.New(), ID: &id, Name: "Wire"})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
}

func TestPresetService_Add_RequiresName(t *testing.T) {
	svc, _, _ := setupPresetService()

	_, err := svc.Add(context.Background(), &service.AddPresetInput{TenantID: uuid.New(), Name: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPresetService_Delete(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	tenantID, id := uuid.New(), uuid.New()
	presetRepo.On("Delete", mock.Anything, tenantID, id).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), tenantID, id))
}

func TestPresetService_Apply_CopiesContent(t *testing.T) {
	svc, presetRepo, invRepo := setupPresetService()
	tenantID := uuid.New()
	inv := draftInvoice(tenantID)
	preset := &domain.PaymentPreset{ID: uuid.New(), TenantID: tenantID, Name: "UPI", Content: "UPI ID: fynix@hdfcbank"}

	presetRepo.On("GetByID", mock.Anything, tenantID, preset.ID).Return(preset, nil)
	invRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	invRepo.On("Update", mock.Anything, inv).Return(nil)

	got, err := svc.Apply(context.Background(), tenantID, inv.ID, preset.ID)
	require.NoError(t, err)
	assert.Equal(t, "UPI ID: fynix@hdfcbank", got.PaymentInstructions)

	preset.Content = "changed later"
	assert.Equal(t, "UPI ID: fynix@hdfcbank", got.PaymentInstructions)
}

func TestPresetService_Apply_SentInvoice(t *testing.T) {
	svc, presetRepo, invRepo := setupPresetService()
	tenantID := uuid.New()
	inv := draftInvoice(tenantID)
	inv.Status = domain.InvoiceStatusSent
	preset := &domain.PaymentPreset{ID: uuid.New(), TenantID: tenantID, Content: "x"}

	presetRepo.On("GetByID", mock.Anything, tenantID, preset.ID).Return(preset, nil)
	invRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	_, err := svc.Apply(context.Background(), tenantID, inv.ID, preset.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceFrozen)
}

func TestPresetService_Apply_MissingPreset(t *testing.T) {
	svc, presetRepo, _ := setupPresetService()
	presetRepo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrPresetNotFound)

	_, err := svc.Apply(context.Background(), uuid.New(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPresetNotFound)
}
