package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skiresults/internal/domain"
	"skiresults/internal/parser"
	"skiresults/internal/port"
	"skiresults/mocks"
)

const pageOneJSON = `{
	"competition": "城市青少年滑雪赛",
	"discipline": "大回转",
	"results": [{"rank": 1, "bib": "7", "name": "张伟", "total_time": "45.12", "status": "OK"}]
}`

const pageTwoJSON = `{
	"competition": "第二页标题",
	"results": [{"rank": 2, "bib": "9", "name": "李娜", "total_time": "1:03.32", "status": "OK"}]
}`

func TestParse_EmptyContent(t *testing.T) {
	model := new(mocks.MockModelClient)
	p := parser.NewSheetParser(model)

	_, err := p.Parse(context.Background(), port.ExtractedContent{}, "a.pdf")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_WhitespaceOnlyContent(t *testing.T) {
	model := new(mocks.MockModelClient)
	p := parser.NewSheetParser(model)

	_, err := p.Parse(context.Background(), port.ExtractedContent{NativeText: "  \n\t "}, "blank.pdf")

	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_NativeText(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return(pageOneJSON, nil)
	p := parser.NewSheetParser(model)

	sheet, err := p.Parse(context.Background(), port.ExtractedContent{NativeText: "表格原文"}, "a.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "城市青少年滑雪赛", sheet.Competition)
	assert.Equal(t, "a.pdf", sheet.SourceFile)
	model.AssertNumberOfCalls(t, "Generate", 1)
}

func TestParse_NativeTextRecoveryFailureIsFatal(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return("no structured data here", nil)
	p := parser.NewSheetParser(model)

	_, err := p.Parse(context.Background(), port.ExtractedContent{NativeText: "表格原文"}, "a.pdf")

	assert.ErrorIs(t, err, domain.ErrNoStructuredContent)
}

func TestParse_VisionSegmentsMergedWithoutModelCall(t *testing.T) {
	model := new(mocks.MockModelClient)
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{VisionSegments: []string{pageOneJSON, pageTwoJSON}}
	sheet, err := p.Parse(context.Background(), content, "scan.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "城市青少年滑雪赛", sheet.Competition)
	assert.Len(t, sheet.Results, 2)
	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestParse_BadSegmentResubmittedToTextModel(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return(pageTwoJSON, nil)
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{VisionSegments: []string{pageOneJSON, "garbled model chatter"}}
	sheet, err := p.Parse(context.Background(), content, "scan.pdf")

	assert.NoError(t, err)
	assert.Len(t, sheet.Results, 2)
	model.AssertNumberOfCalls(t, "Generate", 1)
}

func TestParse_UnrecoverableSegmentDropped(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return("still no json", nil)
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{VisionSegments: []string{pageOneJSON, "garbled model chatter"}}
	sheet, err := p.Parse(context.Background(), content, "scan.pdf")

	assert.NoError(t, err)
	assert.Len(t, sheet.Results, 1)
}

func TestParse_AllSegmentsFailing(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return("still no json", nil)
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{VisionSegments: []string{"garbled one", "garbled two"}}
	_, err := p.Parse(context.Background(), content, "scan.pdf")

	assert.ErrorIs(t, err, domain.ErrNoStructuredContent)
}

func TestParse_ModelErrorPropagates(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return("", errors.New("throttled"))
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{VisionSegments: []string{"garbled model chatter"}}
	_, err := p.Parse(context.Background(), content, "scan.pdf")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoStructuredContent)
}

func TestParse_MixedContentNativePageLeads(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return(pageOneJSON, nil)
	p := parser.NewSheetParser(model)

	content := port.ExtractedContent{
		NativeText:     "第一页的数字文本",
		VisionSegments: []string{pageTwoJSON},
	}
	sheet, err := p.Parse(context.Background(), content, "mixed.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "城市青少年滑雪赛", sheet.Competition)
	assert.Len(t, sheet.Results, 2)
}

func TestParse_SecondsRecomputedAndStatusNormalized(t *testing.T) {
	model := new(mocks.MockModelClient)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), (*port.Image)(nil)).Return(`{
		"competition": "赛事",
		"results": [
			{"rank": 1, "bib": "1", "name": "张伟", "total_time": "1:03.32", "total_seconds": 999.0, "status": "完赛"},
			{"rank": null, "bib": "2", "name": "李娜", "total_time": "DNF", "status": "DNF"}
		]
	}`, nil)
	p := parser.NewSheetParser(model)

	sheet, err := p.Parse(context.Background(), port.ExtractedContent{NativeText: "原文"}, "a.pdf")

	assert.NoError(t, err)
	assert.Equal(t, 63.32, *sheet.Results[0].TotalSeconds)
	assert.Equal(t, "OK", sheet.Results[0].Status)
	assert.Nil(t, sheet.Results[1].TotalSeconds)
	assert.Equal(t, "DNF", sheet.Results[1].Status)
}
