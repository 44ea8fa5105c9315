package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/port"
)

// MockModelClient is a mock implementation of port.ModelClient.
type MockModelClient struct {
	mock.Mock
}

func (m *MockModelClient) Generate(ctx context.Context, prompt string, image *port.Image) (string, error) {
	args := m.Called(ctx, prompt, image)
	return args.String(0), args.Error(1)
}
