// Package errors provides error handling for FONTO.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, error wrapping, and user-facing hints, and defines the sentinel
// conditions the query engine reports to its callers.
//
// Usage:
//
//	// Wrap with context
//	if err := pipeline.Run(ctx); err != nil {
//	    return errors.Wrap(err, "ingestion failed")
//	}
//
//	// Check conditions
//	if errors.Is(err, errors.ErrNotReady) {
//	    // retry after the engine finishes loading
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
	Join   = crdb.Join
)

// Sentinel conditions surfaced by the engine. Callers distinguish them with
// errors.Is(); everything else coming out of the engine is a plain failure.
//
// Note that a lookup resolving to no entity is NOT one of these: not-found is
// a normal empty result, reported as a nil result value with a nil error.
var (
	// ErrInvalidArgument indicates a malformed query argument, such as a
	// non-positive search limit or an unknown traversal direction.
	ErrInvalidArgument = New("invalid argument")

	// ErrNotReady indicates the engine is still loading or rebuilding its
	// indices and is configured to reject rather than block.
	ErrNotReady = New("engine not ready")

	// ErrUnavailable indicates the ontology could not be loaded at all:
	// no cache and zero source documents parsed. The engine never becomes
	// ready after this.
	ErrUnavailable = New("ontology unavailable")
)

// IsInvalidArgument checks if an error is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsNotReady checks if an error is or wraps ErrNotReady.
func IsNotReady(err error) bool {
	return err != nil && Is(err, ErrNotReady)
}

// IsUnavailable checks if an error is or wraps ErrUnavailable.
func IsUnavailable(err error) bool {
	return err != nil && Is(err, ErrUnavailable)
}

// InvalidArgumentf creates an invalid-argument error with a formatted message.
func InvalidArgumentf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidArgument, Newf(format, args...).Error())
}
