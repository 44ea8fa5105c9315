package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
	"skiresults/internal/port"
)

// MockSheetParser is a mock implementation of port.SheetParser.
type MockSheetParser struct {
	mock.Mock
}

func (m *MockSheetParser) Parse(ctx context.Context, content port.ExtractedContent, sourceFile string) (*domain.ParsedSheet, error) {
	args := m.Called(ctx, content, sourceFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedSheet), args.Error(1)
}
