package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"fynix/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
// Uploaded bodies are kept in Uploaded, keyed by object key.
type MockObjectStorage struct {
	mock.Mock
	Uploaded map[string][]byte
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if input.Body != nil {
		data, _ := io.ReadAll(input.Body)
		if m.Uploaded == nil {
			m.Uploaded = make(map[string][]byte)
		}
		m.Uploaded[input.Key] = data
	}
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
