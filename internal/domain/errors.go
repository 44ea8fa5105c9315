package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmptyInput          = errors.New("empty input text")
	ErrNoStructuredContent = errors.New("no structured content recovered from model output")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
