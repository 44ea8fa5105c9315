package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
)

// MockFacetRepo is a mock implementation of port.FacetRepository.
type MockFacetRepo struct {
	mock.Mock
}

func (m *MockFacetRepo) GetFilterOptions(ctx context.Context, season, competition string) (*domain.FilterOptions, error) {
	args := m.Called(ctx, season, competition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}
