package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
)

// MockResultRepo is a mock implementation of port.ResultRepository.
type MockResultRepo struct {
	mock.Mock
}

func (m *MockResultRepo) InsertBatch(ctx context.Context, eventID int64, results []domain.Result) error {
	args := m.Called(ctx, eventID, results)
	return args.Error(0)
}

func (m *MockResultRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.ResultRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultRow), args.Error(1)
}

func (m *MockResultRepo) AthleteHistory(ctx context.Context, name string) ([]domain.ResultRow, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultRow), args.Error(1)
}
