package types

import "errors"

// Pipeline error taxonomy. Stages wrap these sentinels with fmt.Errorf
// and %w so the orchestrator can classify failures with errors.Is.
var (
	// ErrEmptyInput marks empty or invalid caller input. Never retried.
	ErrEmptyInput = errors.New("empty input")

	// ErrServiceUnavailable marks a transient fault in a backing
	// generative service (network error or non-success status). The
	// orchestrator may retry these with backoff.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrMissingAsset marks a required local asset that could not be
	// found. Fatal: a configuration gap, not a transient fault.
	ErrMissingAsset = errors.New("missing asset")

	// ErrEncoding marks a rejected artifact in the renderer. Fatal:
	// usually malformed upstream input rather than a transient fault.
	ErrEncoding = errors.New("encoding failed")

	// ErrEmptyStoryboard marks a storyboard with zero frames. Fatal:
	// video construction cannot proceed.
	ErrEmptyStoryboard = errors.New("empty storyboard")

	// ErrInvalidDuration marks a non-positive duration argument.
	ErrInvalidDuration = errors.New("invalid duration")
)
