package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fynix/internal/domain"
)

// MockWorkItemRepo is a mock implementation of port.WorkItemRepository.
type MockWorkItemRepo struct {
	mock.Mock
}

func (m *MockWorkItemRepo) List(ctx context.Context, tenantID uuid.UUID, filter domain.WorkItemFilter) ([]domain.WorkItem, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkItem), args.Error(1)
}

func (m *MockWorkItemRepo) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domain.WorkItem, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkItem), args.Error(1)
}
