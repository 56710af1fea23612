package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fynix/internal/render"
)

// MockDocumentRasterizer is a mock implementation of port.DocumentRasterizer.
type MockDocumentRasterizer struct {
	mock.Mock
}

func (m *MockDocumentRasterizer) Rasterize(ctx context.Context, doc *render.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
