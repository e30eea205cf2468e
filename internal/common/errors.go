// Package common defines shared sentinel errors used across the PDF scan
// service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage error")

	// ErrNoData marks an aggregate query over an empty result set, so
	// callers can tell "no metrics recorded" apart from a zero average.
	ErrNoData = errors.New("no data")

	// Pipeline-level errors.
	ErrValidation = errors.New("validation error")
	ErrScan       = errors.New("scan error")

	// Extractor-level errors. The processor wraps both into ErrScan and
	// records them on the document instead of propagating.
	ErrEncrypted  = errors.New("document is password-protected")
	ErrUnreadable = errors.New("document is corrupt or unreadable")
)
