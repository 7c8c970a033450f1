package controller

import (
	"errors"
)

// Hard failures.
var (
	ErrLoad        = errors.New("load ranking failed")
	ErrNotReady    = errors.New("controller not ready")
	ErrLoaded      = errors.New("controller already loaded")
	ErrUnknownYear = errors.New("unknown year")
	ErrFixedYear   = errors.New("page has no year selector")
	ErrUnknownPage = errors.New("unknown page")
)

// Soft conditions: recognised empty results that get a friendly message.
var (
	ErrEmptyDataset = errors.New("dataset is empty")
	ErrNoYears      = errors.New("no usable year in dataset")
	ErrEmptyFilter  = errors.New("no general ranking rows for year")
)

// IsSoft reports whether err is an expected empty-result condition.
func IsSoft(err error) bool {
	return errors.Is(err, ErrEmptyDataset) || errors.Is(err, ErrNoYears) || errors.Is(err, ErrEmptyFilter)
}

// outcome names err for the page render metric.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ready"
	case errors.Is(err, ErrEmptyDataset):
		return "empty_dataset"
	case errors.Is(err, ErrNoYears):
		return "no_years"
	case errors.Is(err, ErrEmptyFilter):
		return "empty_filter"
	case errors.Is(err, ErrLoad):
		return "load_error"
	default:
		return "error"
	}
}
