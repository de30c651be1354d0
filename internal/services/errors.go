package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrClassification = errors.New("classification failure")
	ErrStaleElement   = errors.New("stale element")
	ErrStore          = errors.New("store error")
	ErrFilesystem     = errors.New("filesystem error")
	ErrValidation     = errors.New("validation error")
	ErrConfiguration  = errors.New("configuration error")
	ErrNotFound       = errors.New("not found")
	ErrTimeout        = errors.New("timeout")
	ErrTransient      = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Outcome describes how a pass should react to an error returned by one of
// its steps.
type Outcome int

const (
	// OutcomeContinue means the failure only affects the current unit of work.
	OutcomeContinue Outcome = iota
	// OutcomeAbort means the pass must stop; committed work stays.
	OutcomeAbort
)

// Classify maps an error to the reaction expected from the scan loop.
// Stale elements, per-entry validation problems and vanished pages abandon
// the current unit; everything else ends the pass.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeContinue
	case errors.Is(err, ErrStaleElement), errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound):
		return OutcomeContinue
	default:
		return OutcomeAbort
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
