package domain

import "errors"

// Domain errors
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file too large")
	ErrArchiveDisabled = errors.New("report archive not configured")
)
