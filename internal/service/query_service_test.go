package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
	"skiresults/internal/service"
	"skiresults/mocks"
)

func setupQuery() (*mocks.MockResultRepo, *mocks.MockFacetRepo, *mocks.MockStatsRepo, *mocks.MockLedgerRepo, *service.QueryService) {
	resultRepo := new(mocks.MockResultRepo)
	facetRepo := new(mocks.MockFacetRepo)
	statsRepo := new(mocks.MockStatsRepo)
	ledgerRepo := new(mocks.MockLedgerRepo)
	svc := service.NewQueryService(resultRepo, facetRepo, statsRepo, ledgerRepo)
	return resultRepo, facetRepo, statsRepo, ledgerRepo, svc
}

func TestSearch_PassesFilterThrough(t *testing.T) {
	resultRepo, _, _, _, svc := setupQuery()

	filter := domain.SearchFilter{Season: "25-26雪季", Discipline: "大回转"}
	name := "张伟"
	rows := []domain.ResultRow{{Name: &name, Competition: "赛事"}}
	resultRepo.On("Search", mock.Anything, filter).Return(rows, nil)

	got, err := svc.Search(context.Background(), filter)

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
	resultRepo.AssertExpectations(t)
}

func TestAthleteHistory_BlankNameRejected(t *testing.T) {
	resultRepo, _, _, _, svc := setupQuery()

	_, err := svc.AthleteHistory(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	resultRepo.AssertNotCalled(t, "AthleteHistory", mock.Anything, mock.Anything)
}

func TestAthleteHistory_Passthrough(t *testing.T) {
	resultRepo, _, _, _, svc := setupQuery()

	resultRepo.On("AthleteHistory", mock.Anything, "张伟").Return([]domain.ResultRow{}, nil)

	got, err := svc.AthleteHistory(context.Background(), "张伟")

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterOptions_Passthrough(t *testing.T) {
	_, facetRepo, _, _, svc := setupQuery()

	opts := &domain.FilterOptions{Seasons: []string{"25-26雪季"}}
	facetRepo.On("GetFilterOptions", mock.Anything, "25-26雪季", "").Return(opts, nil)

	got, err := svc.FilterOptions(context.Background(), "25-26雪季", "")

	assert.NoError(t, err)
	assert.Equal(t, opts, got)
}

func TestStats_WrapsRepoError(t *testing.T) {
	_, _, statsRepo, _, svc := setupQuery()

	statsRepo.On("GetStats", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.Stats(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "queryService.Stats")
}

func TestFailedFiles_Passthrough(t *testing.T) {
	_, _, _, ledgerRepo, svc := setupQuery()

	msg := "object gone"
	files := []domain.ProcessedFile{{SourceKey: "ski/bad.pdf", Status: domain.IngestFailed, ErrorMessage: &msg}}
	ledgerRepo.On("ListFailed", mock.Anything).Return(files, nil)

	got, err := svc.FailedFiles(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, files, got)
}
