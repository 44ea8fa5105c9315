package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skiresults/internal/config"
	"skiresults/internal/domain"
	"skiresults/internal/port"
	"skiresults/internal/service"
	"skiresults/mocks"
)

func setupIngestion(cfg config.IngestConfig) (
	*mocks.MockObjectStorage,
	*mocks.MockExtractor,
	*mocks.MockSheetParser,
	*mocks.MockCompetitionRepo,
	*mocks.MockEventRepo,
	*mocks.MockResultRepo,
	*mocks.MockLedgerRepo,
	*service.IngestionService,
) {
	storage := new(mocks.MockObjectStorage)
	extractor := new(mocks.MockExtractor)
	parser := new(mocks.MockSheetParser)
	compRepo := new(mocks.MockCompetitionRepo)
	eventRepo := new(mocks.MockEventRepo)
	resultRepo := new(mocks.MockResultRepo)
	ledgerRepo := new(mocks.MockLedgerRepo)

	svc := service.NewIngestionService(storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, cfg)
	return storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc
}

func ingestionConfig() config.IngestConfig {
	return config.IngestConfig{
		SkipPatterns: []string{"出发顺序", "秩序册"},
		SeasonToken:  "雪季",
	}
}

func parsedSheet(source string, names ...string) *domain.ParsedSheet {
	sheet := &domain.ParsedSheet{SourceFile: source}
	sheet.Competition = "城市青少年滑雪赛"
	sheet.Discipline = "大回转"
	for _, name := range names {
		t := "45.12"
		sheet.Results = append(sheet.Results, domain.SheetResult{Name: name, Bib: "7", TotalTime: &t})
	}
	return sheet
}

func TestRun_ProcessesAllDocuments(t *testing.T) {
	storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc := setupIngestion(ingestionConfig())

	keys := []string{"ski/25-26雪季/a.pdf", "ski/25-26雪季/b.jpg"}
	content := port.ExtractedContent{NativeText: "some sheet text"}

	storage.On("List", mock.Anything).Return(keys, nil)
	for _, key := range keys {
		ledgerRepo.On("IsProcessed", mock.Anything, key).Return(false, nil)
		storage.On("Download", mock.Anything, key).Return("/tmp/cache/"+key, nil)
		extractor.On("Extract", mock.Anything, "/tmp/cache/"+key).Return(content, nil)
		parser.On("Parse", mock.Anything, content, key).Return(parsedSheet(key, "张伟"), nil)
	}
	compRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Competition")).Return(int64(1), nil)
	eventRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(int64(10), nil)
	resultRepo.On("InsertBatch", mock.Anything, int64(10), mock.AnythingOfType("[]domain.Result")).Return(nil)
	ledgerRepo.On("Mark", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("string"), domain.IngestSuccess, "").Return(nil)

	var progressKeys []string
	report, err := svc.Run(context.Background(), func(current, total int, key string) {
		progressKeys = append(progressKeys, key)
	})

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{Total: 2, Processed: 2}, report)
	assert.Equal(t, []string{keys[0], keys[1], service.ProgressDone}, progressKeys)

	storage.AssertExpectations(t)
	extractor.AssertExpectations(t)
	parser.AssertExpectations(t)
	ledgerRepo.AssertExpectations(t)
}

func TestRun_SkipPatternShortCircuitsExtraction(t *testing.T) {
	storage, extractor, _, _, _, _, ledgerRepo, svc := setupIngestion(ingestionConfig())

	key := "ski/25-26雪季/出发顺序表.pdf"
	storage.On("List", mock.Anything).Return([]string{key}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, key).Return(false, nil)
	ledgerRepo.On("Mark", mock.Anything, key, "pdf", domain.IngestSkipped, "matches skip pattern: 出发顺序").Return(nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{Total: 1, Skipped: 1}, report)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
	ledgerRepo.AssertExpectations(t)
}

func TestRun_AlreadyProcessedExcluded(t *testing.T) {
	storage, _, _, _, _, _, ledgerRepo, svc := setupIngestion(ingestionConfig())

	key := "ski/25-26雪季/done.pdf"
	storage.On("List", mock.Anything).Return([]string{key}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, key).Return(true, nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{}, report)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestRun_FailureDoesNotAbortBatch(t *testing.T) {
	storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc := setupIngestion(ingestionConfig())

	bad, good := "ski/bad.pdf", "ski/good.pdf"
	content := port.ExtractedContent{NativeText: "some sheet text"}

	storage.On("List", mock.Anything).Return([]string{bad, good}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	storage.On("Download", mock.Anything, bad).Return("", errors.New("object gone"))
	ledgerRepo.On("Mark", mock.Anything, bad, "pdf", domain.IngestFailed, "object gone").Return(nil)

	storage.On("Download", mock.Anything, good).Return("/tmp/good.pdf", nil)
	extractor.On("Extract", mock.Anything, "/tmp/good.pdf").Return(content, nil)
	parser.On("Parse", mock.Anything, content, good).Return(parsedSheet(good, "李娜"), nil)
	compRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Competition")).Return(int64(1), nil)
	eventRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(int64(10), nil)
	resultRepo.On("InsertBatch", mock.Anything, int64(10), mock.AnythingOfType("[]domain.Result")).Return(nil)
	ledgerRepo.On("Mark", mock.Anything, good, "pdf", domain.IngestSuccess, "").Return(nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{Total: 2, Processed: 1, Failed: 1}, report)
	ledgerRepo.AssertExpectations(t)
}

func TestRun_NoResultsLedgeredSkipped(t *testing.T) {
	storage, extractor, parser, _, _, _, ledgerRepo, svc := setupIngestion(ingestionConfig())

	key := "ski/empty.pdf"
	content := port.ExtractedContent{NativeText: "header only"}

	storage.On("List", mock.Anything).Return([]string{key}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, key).Return(false, nil)
	storage.On("Download", mock.Anything, key).Return("/tmp/empty.pdf", nil)
	extractor.On("Extract", mock.Anything, "/tmp/empty.pdf").Return(content, nil)
	parser.On("Parse", mock.Anything, content, key).Return(parsedSheet(key), nil)
	ledgerRepo.On("Mark", mock.Anything, key, "pdf", domain.IngestSkipped, "no results found in file").Return(nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{Total: 1, Skipped: 1}, report)
	ledgerRepo.AssertExpectations(t)
}

func TestRun_MaxFilesCapsBatch(t *testing.T) {
	cfg := ingestionConfig()
	cfg.MaxFiles = 1
	storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc := setupIngestion(cfg)

	first, second := "ski/a.pdf", "ski/b.pdf"
	content := port.ExtractedContent{NativeText: "some sheet text"}

	storage.On("List", mock.Anything).Return([]string{first, second}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
	storage.On("Download", mock.Anything, first).Return("/tmp/a.pdf", nil)
	extractor.On("Extract", mock.Anything, "/tmp/a.pdf").Return(content, nil)
	parser.On("Parse", mock.Anything, content, first).Return(parsedSheet(first, "王强"), nil)
	compRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Competition")).Return(int64(1), nil)
	eventRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(int64(10), nil)
	resultRepo.On("InsertBatch", mock.Anything, int64(10), mock.AnythingOfType("[]domain.Result")).Return(nil)
	ledgerRepo.On("Mark", mock.Anything, first, "pdf", domain.IngestSuccess, "").Return(nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, &domain.IngestReport{Total: 1, Processed: 1}, report)
	storage.AssertNotCalled(t, "Download", mock.Anything, second)
}

func TestRun_SeasonInferredFromPath(t *testing.T) {
	storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc := setupIngestion(ingestionConfig())

	key := "ski/比赛成绩汇总/25-26雪季/决赛.pdf"
	content := port.ExtractedContent{NativeText: "some sheet text"}

	sheet := parsedSheet(key, "赵敏")
	sheet.Season = "metadata-season"

	storage.On("List", mock.Anything).Return([]string{key}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, key).Return(false, nil)
	storage.On("Download", mock.Anything, key).Return("/tmp/决赛.pdf", nil)
	extractor.On("Extract", mock.Anything, "/tmp/决赛.pdf").Return(content, nil)
	parser.On("Parse", mock.Anything, content, key).Return(sheet, nil)
	compRepo.On("GetOrCreate", mock.Anything, mock.MatchedBy(func(c *domain.Competition) bool {
		return c.Season != nil && *c.Season == "25-26雪季"
	})).Return(int64(1), nil)
	eventRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(int64(10), nil)
	resultRepo.On("InsertBatch", mock.Anything, int64(10), mock.AnythingOfType("[]domain.Result")).Return(nil)
	ledgerRepo.On("Mark", mock.Anything, key, "pdf", domain.IngestSuccess, "").Return(nil)

	report, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	compRepo.AssertExpectations(t)
}

func TestRun_SecondsDerivedFromTimes(t *testing.T) {
	storage, extractor, parser, compRepo, eventRepo, resultRepo, ledgerRepo, svc := setupIngestion(ingestionConfig())

	key := "ski/times.pdf"
	content := port.ExtractedContent{NativeText: "some sheet text"}

	total := "1:03.32"
	sheet := &domain.ParsedSheet{SourceFile: key}
	sheet.Competition = "测试赛"
	sheet.Results = []domain.SheetResult{{Name: "张伟", Bib: "3", TotalTime: &total}}

	storage.On("List", mock.Anything).Return([]string{key}, nil)
	ledgerRepo.On("IsProcessed", mock.Anything, key).Return(false, nil)
	storage.On("Download", mock.Anything, key).Return("/tmp/times.pdf", nil)
	extractor.On("Extract", mock.Anything, "/tmp/times.pdf").Return(content, nil)
	parser.On("Parse", mock.Anything, content, key).Return(sheet, nil)
	compRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Competition")).Return(int64(1), nil)
	eventRepo.On("GetOrCreate", mock.Anything, mock.AnythingOfType("*domain.Event")).Return(int64(10), nil)
	resultRepo.On("InsertBatch", mock.Anything, int64(10), mock.MatchedBy(func(rows []domain.Result) bool {
		return len(rows) == 1 && rows[0].TotalSeconds != nil && *rows[0].TotalSeconds == 63.32
	})).Return(nil)
	ledgerRepo.On("Mark", mock.Anything, key, "pdf", domain.IngestSuccess, "").Return(nil)

	_, err := svc.Run(context.Background(), nil)

	assert.NoError(t, err)
	resultRepo.AssertExpectations(t)
}
