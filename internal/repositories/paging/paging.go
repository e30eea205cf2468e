// Package paging normalizes limit/offset values so every repository
// backend honors identical pagination semantics.
package paging

const (
	// DefaultLimit applies when the caller passes a non-positive limit.
	DefaultLimit = 100
	// MaxLimit caps any requested page size.
	MaxLimit = 1000
)

// Clamp normalizes limit and offset to the documented bounds.
func Clamp(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
