// Package types provides the error taxonomy shared by the acquisition pipeline.
package types

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown is the zero value and never produced by the pipeline.
	KindUnknown Kind = iota
	// KindUnsupportedPlatform means the host OS could not be classified.
	KindUnsupportedPlatform
	// KindVersionDetection means the installed browser version could not be determined.
	KindVersionDetection
	// KindDownload means the driver archive could not be fetched.
	KindDownload
	// KindArchiveExtraction means the archive could not be unpacked or held no driver.
	KindArchiveExtraction
	// KindPatch means the driver binary could not be patched.
	KindPatch
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindUnsupportedPlatform:
		return "unsupported platform"
	case KindVersionDetection:
		return "version detection failure"
	case KindDownload:
		return "download failure"
	case KindArchiveExtraction:
		return "archive extraction failure"
	case KindPatch:
		return "patch failure"
	default:
		return "unknown failure"
	}
}

// Sentinel errors, one per Kind. Any *Error matches the sentinel of its kind
// through errors.Is.
var (
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrVersionDetection    = errors.New("version detection failure")
	ErrDownload            = errors.New("download failure")
	ErrArchiveExtraction   = errors.New("archive extraction failure")
	ErrPatch               = errors.New("patch failure")
)

var sentinels = map[Kind]error{
	KindUnsupportedPlatform: ErrUnsupportedPlatform,
	KindVersionDetection:    ErrVersionDetection,
	KindDownload:            ErrDownload,
	KindArchiveExtraction:   ErrArchiveExtraction,
	KindPatch:               ErrPatch,
}

// Error is a tagged pipeline failure. It implements the error interface and
// supports error unwrapping.
type Error struct {
	Kind Kind   // Failure class
	Op   string // Operation that failed, e.g. "download archive"
	Err  error  // Underlying cause (may be nil)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && target == sentinel
}

// New creates a tagged error. Passing a nil cause is allowed.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UnsupportedPlatform creates a KindUnsupportedPlatform error.
func UnsupportedPlatform(op string, err error) *Error {
	return New(KindUnsupportedPlatform, op, err)
}

// VersionDetection creates a KindVersionDetection error.
func VersionDetection(op string, err error) *Error {
	return New(KindVersionDetection, op, err)
}

// Download creates a KindDownload error.
func Download(op string, err error) *Error {
	return New(KindDownload, op, err)
}

// ArchiveExtraction creates a KindArchiveExtraction error.
func ArchiveExtraction(op string, err error) *Error {
	return New(KindArchiveExtraction, op, err)
}

// Patch creates a KindPatch error.
func Patch(op string, err error) *Error {
	return New(KindPatch, op, err)
}
