package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
)

// MockEventRepo is a mock implementation of port.EventRepository.
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) GetOrCreate(ctx context.Context, event *domain.Event) (int64, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(int64), args.Error(1)
}
