package service

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document contains no extractable text")
	ErrSessionNotFound     = errors.New("session not found")
	ErrIndexingFailed      = errors.New("document indexing failed")
)
