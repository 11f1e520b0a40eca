package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalid           = errors.New("invalid")
	ErrConflict          = errors.New("conflict")
	ErrFeedFetch         = errors.New("feed fetch failed")
	ErrAlreadyRefreshing = errors.New("refresh already in progress")
	ErrImportRunning     = fmt.Errorf("import already running: %w", ErrConflict)
)

// FetchFailedError is the outcome of an ingestion cycle whose fetch failed.
// The feed's refresh timestamp is left untouched.
type FetchFailedError struct {
	URL    string
	Reason string
	Err    error
}

func (e *FetchFailedError) Error() string {
	return "fetch " + e.URL + ": " + e.Reason
}

func (e *FetchFailedError) Unwrap() error {
	return e.Err
}

func (e *FetchFailedError) Is(target error) bool {
	return target == ErrFeedFetch
}
