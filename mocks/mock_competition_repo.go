package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
)

// MockCompetitionRepo is a mock implementation of port.CompetitionRepository.
type MockCompetitionRepo struct {
	mock.Mock
}

func (m *MockCompetitionRepo) GetOrCreate(ctx context.Context, comp *domain.Competition) (int64, error) {
	args := m.Called(ctx, comp)
	return args.Get(0).(int64), args.Error(1)
}
