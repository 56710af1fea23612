package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fynix/internal/domain"
	"fynix/internal/service"
	"fynix/mocks"
)

func setupBillingService() (
	service.BillingService,
	*mocks.MockWorkItemRepo,
	*mocks.MockInvoiceRepo,
	*mocks.MockProfileRepo,
) {
	workRepo := new(mocks.MockWorkItemRepo)
	invRepo := new(mocks.MockInvoiceRepo)
	profRepo := new(mocks.MockProfileRepo)
	svc := service.NewBillingService(workRepo, invRepo, profRepo, testBillingConfig(), zap.NewNop())
	return svc, workRepo, invRepo, profRepo
}

func noProfiles(profRepo *mocks.MockProfileRepo) {
	profRepo.On("GetCompanyProfile", mock.Anything, mock.Anything).Return(nil, domain.ErrProfileNotFound).Maybe()
	profRepo.On("GetPartnerProfile", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrProfileNotFound).Maybe()
}

// --- ListUnbilled ---

func TestBillingService_ListUnbilled_GroupsBillableOnly(t *testing.T) {
	svc, workRepo, _, _ := setupBillingService()
	tenantID := uuid.New()

	a := billableItem(tenantID, "acme", "Design", "1000")
	b := billableItem(tenantID, "globex", "Build", "2500")
	billed := billableItem(tenantID, "acme", "Old", "999")
	billed.BillingStatus = domain.BillingBilled

	workRepo.On("List", mock.Anything, tenantID, domain.WorkItemFilter{Search: "a"}).
		Return([]domain.WorkItem{a, b, billed}, nil)

	summary, err := svc.ListUnbilled(context.Background(), tenantID, domain.WorkItemFilter{Search: "a"})
	require.NoError(t, err)
	require.Len(t, summary.Groups, 2)
	assert.Equal(t, "acme", summary.Groups[0].ClientID)
	assert.Len(t, summary.Groups[0].WorkItems, 1)
	assert.Equal(t, "3500", summary.Total.String())
}

func TestBillingService_ListUnbilled_RepoError(t *testing.T) {
	svc, workRepo, _, _ := setupBillingService()
	workRepo.On("List", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ListUnbilled(context.Background(), uuid.New(), domain.WorkItemFilter{})
	assert.Error(t, err)
}

// --- CreateDraft ---

func TestBillingService_CreateDraft_Success(t *testing.T) {
	svc, workRepo, invRepo, profRepo := setupBillingService()
	tenantID := uuid.New()
	a := billableItem(tenantID, "acme", "Design", "10000")
	b := billableItem(tenantID, "acme", "Build", "30000")
	issue := day("2025-01-20")

	workRepo.On("GetByIDs", mock.Anything, tenantID, []uuid.UUID{b.ID, a.ID}).
		Return([]domain.WorkItem{a, b}, nil)
	profRepo.On("GetCompanyProfile", mock.Anything, tenantID).
		Return(&domain.Party{Name: "Fynix Digital"}, nil)
	profRepo.On("GetPartnerProfile", mock.Anything, tenantID, "acme").
		Return(nil, domain.ErrProfileNotFound)
	invRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	inv, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID:    tenantID,
		ClientID:    "acme",
		WorkItemIDs: []uuid.UUID{b.ID, a.ID, b.ID},
		IssueDate:   &issue,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.Regexp(t, `^INV-202501-\d{4}$`, inv.InvoiceNumber)
	assert.Equal(t, day("2025-02-19"), inv.DueDate)
	assert.Equal(t, "Fynix Digital", inv.Sender.Name)
	assert.Equal(t, "acme Ltd", inv.Client.Name)
	assert.Equal(t, "Thanks for your business!", inv.Memo)
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, "Build", inv.LineItems[0].Description)
	assert.Equal(t, "47200", inv.Totals.Total.String())
	assert.False(t, inv.Finalized())
	invRepo.AssertNotCalled(t, "FinalizeWithWorkItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingService_CreateDraft_NoItems(t *testing.T) {
	svc, _, _, _ := setupBillingService()

	_, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{TenantID: uuid.New(), ClientID: "acme"})
	assert.ErrorIs(t, err, domain.ErrNoWorkItemsSelected)
}

func TestBillingService_CreateDraft_ItemOfOtherClient(t *testing.T) {
	svc, workRepo, invRepo, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "globex", "Build", "100")
	noProfiles(profRepo)
	workRepo.On("GetByIDs", mock.Anything, tenantID, []uuid.UUID{item.ID}).Return([]domain.WorkItem{item}, nil)

	_, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID},
	})
	assert.ErrorIs(t, err, domain.ErrClientMismatch)
	invRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBillingService_CreateDraft_AlreadyBilled(t *testing.T) {
	svc, workRepo, _, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "acme", "Build", "100")
	item.BillingStatus = domain.BillingBilled
	noProfiles(profRepo)
	workRepo.On("GetByIDs", mock.Anything, tenantID, []uuid.UUID{item.ID}).Return([]domain.WorkItem{item}, nil)

	_, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID},
	})
	assert.ErrorIs(t, err, domain.ErrWorkItemNotBillable)
}

func TestBillingService_CreateDraft_RetriesDuplicateNumber(t *testing.T) {
	svc, workRepo, invRepo, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "acme", "Build", "100")
	noProfiles(profRepo)
	workRepo.On("GetByIDs", mock.Anything, tenantID, []uuid.UUID{item.ID}).Return([]domain.WorkItem{item}, nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateInvoiceNumber).Once()
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	inv, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID},
	})
	require.NoError(t, err)
	assert.Contains(t, inv.InvoiceNumber, inv.SessionToken)
	invRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestBillingService_CreateDraft_GivesUpOnDuplicates(t *testing.T) {
	svc, workRepo, invRepo, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "acme", "Build", "100")
	noProfiles(profRepo)
	workRepo.On("GetByIDs", mock.Anything, tenantID, []uuid.UUID{item.ID}).Return([]domain.WorkItem{item}, nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateInvoiceNumber)

	_, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoiceNumber)
	invRepo.AssertNumberOfCalls(t, "Create", 5)
}

func TestBillingService_CreateDraft_ProfileError(t *testing.T) {
	svc, workRepo, _, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "acme", "Build", "100")
	workRepo.On("GetByIDs", mock.Anything, tenantID, mock.Anything).Return([]domain.WorkItem{item}, nil)
	profRepo.On("GetCompanyProfile", mock.Anything, tenantID).Return(nil, errors.New("timeout"))

	_, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID},
	})
	assert.Error(t, err)
}

func TestBillingService_CreateDraft_AndFinalize(t *testing.T) {
	svc, workRepo, invRepo, profRepo := setupBillingService()
	tenantID := uuid.New()
	item := billableItem(tenantID, "acme", "Build", "100")
	noProfiles(profRepo)
	workRepo.On("GetByIDs", mock.Anything, tenantID, mock.Anything).Return([]domain.WorkItem{item}, nil)
	invRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	invRepo.On("FinalizeWithWorkItems", mock.Anything, mock.AnythingOfType("*domain.Invoice"), []uuid.UUID{item.ID}).Return(nil)

	inv, err := svc.CreateDraft(context.Background(), &service.CreateDraftInput{
		TenantID: tenantID, ClientID: "acme", WorkItemIDs: []uuid.UUID{item.ID}, Finalize: true,
	})
	require.NoError(t, err)
	assert.True(t, inv.Finalized())
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
}

// --- Finalize ---

func TestBillingService_Finalize_PartialBillingRollsBack(t *testing.T) {
	svc, _, invRepo, _ := setupBillingService()
	tenantID := uuid.New()
	inv := draftInvoice(tenantID)
	wid := uuid.New()
	inv.LineItems[0].WorkItemID = &wid

	invRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	invRepo.On("FinalizeWithWorkItems", mock.Anything, inv, []uuid.UUID{wid}).Return(domain.ErrPartialBilling)

	_, err := svc.Finalize(context.Background(), tenantID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrPartialBilling)
	assert.False(t, inv.Finalized())
}

func TestBillingService_Finalize_AlreadyFinalized(t *testing.T) {
	svc, _, invRepo, _ := setupBillingService()
	tenantID := uuid.New()
	inv := draftInvoice(tenantID)
	at := time.Now()
	inv.FinalizedAt = &at
	invRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	got, err := svc.Finalize(context.Background(), tenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
	invRepo.AssertNotCalled(t, "FinalizeWithWorkItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingService_Finalize_NotDraft(t *testing.T) {
	svc, _, invRepo, _ := setupBillingService()
	tenantID := uuid.New()
	inv := draftInvoice(tenantID)
	inv.Status = domain.InvoiceStatusPaid
	invRepo.On("GetByID", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	_, err := svc.Finalize(context.Background(), tenantID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceFrozen)
}

func TestBillingService_Finalize_NotFound(t *testing.T) {
	svc, _, invRepo, _ := setupBillingService()
	invRepo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrInvoiceNotFound)

	_, err := svc.Finalize(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
