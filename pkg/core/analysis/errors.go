package analysis

import (
	"errors"
	"fmt"
)

// Error kinds reported by Analyze. Use errors.Is to classify.
var (
	ErrNotFound        = errors.New("entity not found")
	ErrDataUnavailable = errors.New("financial statements unavailable")
	ErrComputation     = errors.New("analysis failed")
)

// AnalysisError carries the identifier and underlying cause of a failed
// analysis.
type AnalysisError struct {
	Kind   error
	Ticker string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Ticker, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Ticker, e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

func (e *AnalysisError) Is(target error) bool { return target == e.Kind }

// Detail is the client-facing message for the error kind.
func (e *AnalysisError) Detail() string {
	switch e.Kind {
	case ErrNotFound:
		return "Ticker not found or no data available."
	case ErrDataUnavailable:
		return "Financial statements unavailable via API for this ticker."
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Kind.Error()
	}
}

func newError(kind error, ticker string, err error) *AnalysisError {
	return &AnalysisError{Kind: kind, Ticker: ticker, Err: err}
}
