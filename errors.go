package xorfilter

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a BuildError so callers can branch on it without
// string matching.
type ErrorKind int

const (
	// ErrKindUnknown is the zero value and never returned by this package.
	ErrKindUnknown ErrorKind = iota
	// ErrKindRetriesExceeded means peeling failed on every seed attempt
	// up to the configured maximum (see WithMaxIterations). This is
	// almost always a sign of duplicate keys.
	ErrKindRetriesExceeded
	// ErrKindSizeTooSmall means n is below the minimum this variant's
	// sizing arithmetic can produce a usable table for.
	ErrKindSizeTooSmall
	// ErrKindSizeOverflow means n is large enough that the slot count
	// would overflow uint32.
	ErrKindSizeOverflow
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindRetriesExceeded:
		return "retries exceeded"
	case ErrKindSizeTooSmall:
		return "size too small"
	case ErrKindSizeOverflow:
		return "size overflow"
	default:
		return "unknown"
	}
}

// Sentinel errors. Callers should branch on these with errors.Is, never by
// comparing error strings; BuildError.Kind is an equally valid (and
// sometimes more convenient) discriminant.
var (
	ErrRetriesExceeded = errors.New("xorfilter: exceeded maximum build attempts, check for duplicate keys")
	ErrSizeTooSmall    = errors.New("xorfilter: key set too small for this filter variant")
	ErrSizeOverflow    = errors.New("xorfilter: key set too large, slot count overflows uint32")
)

// BuildError is returned by every Populate function. It carries a Kind for
// structured handling in addition to satisfying errors.Is against the
// package sentinels via Unwrap.
type BuildError struct {
	Kind    ErrorKind
	Variant string
	err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("xorfilter: %s: %s", e.Variant, e.err.Error())
}

func (e *BuildError) Unwrap() error { return e.err }

func newBuildError(variant string, kind ErrorKind, sentinel error, format string, args ...interface{}) *BuildError {
	return &BuildError{
		Kind:    kind,
		Variant: variant,
		err:     fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel),
	}
}
