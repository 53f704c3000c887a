// Package errors provides error handling for pyns.
//
// It re-exports github.com/cockroachdb/errors and adds the generator's error
// taxonomy. Fatal failures carry one of the ErrConfiguration, ErrIO or
// ErrMetadata marks; test them with Is:
//
//	if errors.Is(err, errors.ErrIO) {
//	    // the output file must be discarded
//	}
//
// ErrAttributeMissing marks the only recoverable condition: a descriptor whose
// attribute is no longer present on the live object. The emitter records it
// and moves on.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
)

// User-facing hints and details
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	GetAllHints  = crdb.GetAllHints
	FlattenHints = crdb.FlattenHints
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Mark      = crdb.Mark
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Taxonomy marks.
var (
	ErrConfiguration    = New("configuration error")
	ErrIO               = New("i/o error")
	ErrMetadata         = New("metadata error")
	ErrAttributeMissing = New("live attribute missing")
)

// Configurationf reports an unresolvable module name or output path.
func Configurationf(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrConfiguration)
}

// WrapIO marks err as a directory, file creation or write failure.
func WrapIO(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Mark(crdb.WrapWithDepthf(1, err, format, args...), ErrIO)
}

// Metadataf reports a malformed metadata table.
func Metadataf(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrMetadata)
}

// WrapMetadata marks err as an introspection failure.
func WrapMetadata(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Mark(crdb.WrapWithDepthf(1, err, format, args...), ErrMetadata)
}

// AttributeMissingf reports a descriptor whose attribute is absent on the live object.
func AttributeMissingf(format string, args ...interface{}) error {
	return Mark(crdb.NewWithDepthf(1, format, args...), ErrAttributeMissing)
}

// IsFatal reports whether err must abort a generation run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !Is(err, ErrAttributeMissing)
}
