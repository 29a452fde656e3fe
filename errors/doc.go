// Package errors provides standardized error handling patterns for MemoCache packages.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input or configuration,
// non-retryable), and Fatal (unrecoverable, stop processing).
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for common conditions:
//
//	if capacity == 0 {
//	    return errors.ErrCapacityExceeded
//	}
//
// Wrap errors with context for debugging:
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.WrapInvalid(err, "cache", "NewFromConfig", "config validation")
//	}
//
// Check classification where it matters:
//
//	if errors.IsInvalid(err) {
//	    // construction-time problem, surface to the caller
//	}
//
// # Domain errors
//
// The sentinel errors cover the memoization domain:
//
//   - ErrKeyNotFound: lookup for an absent key where absence is an error
//   - ErrCapacityExceeded: an insert that the cache cannot hold (zero capacity)
//   - ErrUnhashableKey: call arguments that cannot form a cache key; callers
//     recover by skipping caching for that call
//   - ErrInvalidSelection: a random-replacement selection function returned a
//     key not present in the cache
//   - ErrInvalidConfig / ErrMissingConfig: construction-time configuration
//     problems, always classified invalid
package errors
