package interactions

import (
	"errors"
	"fmt"

	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

var (
	// ErrNetwork covers every way the source can fail to produce a payload:
	// transport errors, timeouts, non-2xx status and undecodable bodies.
	ErrNetwork = errors.New("network error")

	// ErrEmptyData means the source answered with zero records.
	ErrEmptyData = errors.New("empty data")

	// ErrTooLarge is the cause of a network error for a payload over the
	// read limit.
	ErrTooLarge = errors.New("response too large")
)

// FetchError is returned by Fetch. Kind is ErrNetwork or ErrEmptyData.
type FetchError struct {
	Kind   error
	Err    error
	Source string
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Kind)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *FetchError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func networkError(source string, err error) error {
	return &FetchError{Kind: ErrNetwork, Source: source, Err: err}
}

func emptyDataError(source string) error {
	return &FetchError{Kind: ErrEmptyData, Source: source}
}

// Status classifies the outcome of a fetch for the history log.
func Status(err error) models.FetchStatus {
	switch {
	case err == nil:
		return models.FetchStatusOK
	case errors.Is(err, ErrEmptyData):
		return models.FetchStatusEmpty
	default:
		return models.FetchStatusNetworkError
	}
}
