package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
)

// MockLedgerRepo is a mock implementation of port.LedgerRepository.
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) Mark(ctx context.Context, sourceKey, fileType string, status domain.IngestStatus, errorMessage string) error {
	args := m.Called(ctx, sourceKey, fileType, status, errorMessage)
	return args.Error(0)
}

func (m *MockLedgerRepo) IsProcessed(ctx context.Context, sourceKey string) (bool, error) {
	args := m.Called(ctx, sourceKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepo) ListFailed(ctx context.Context) ([]domain.ProcessedFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProcessedFile), args.Error(1)
}
