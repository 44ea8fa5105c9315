package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/port"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, localPath string) (port.ExtractedContent, error) {
	args := m.Called(ctx, localPath)
	if args.Get(0) == nil {
		return port.ExtractedContent{}, args.Error(1)
	}
	return args.Get(0).(port.ExtractedContent), args.Error(1)
}
