package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies operation failures.
type Kind int

const (
	KindGeneric Kind = iota
	KindNotFound
	KindPermission
	KindNotEmpty
	KindUnsupported
)

// String returns a short human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindPermission:
		return "permission denied"
	case KindNotEmpty:
		return "directory not empty"
	case KindUnsupported:
		return "unsupported"
	default:
		return "filesystem error"
	}
}

// Sentinel causes reported by operations, in addition to the io/fs errors
// (fs.ErrNotExist, fs.ErrExist, fs.ErrPermission) used for stat-level causes.
var (
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotDirectory = errors.New("not a directory")
	ErrNotEmpty     = errors.New("directory not empty")
	ErrInvalidName  = errors.New("invalid name")
)

// Error describes a failed operation with its path context.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Dest string // set for two-path operations
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Dest != "" {
		return fmt.Sprintf("%s %s -> %s: %v", e.Op, e.Path, e.Dest, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// opError builds an Error classified from its cause.
func opError(op, path string, err error) *Error {
	return &Error{Kind: classify(err), Op: op, Path: path, Err: err}
}

// kindError builds an Error with an explicit kind.
func kindError(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// classify maps sentinel causes onto kinds.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, ErrNotEmpty):
		return KindNotEmpty
	default:
		return KindGeneric
	}
}

func hasKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// IsNotFound reports whether err is a missing-path failure.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsPermission reports whether err is a permission failure.
func IsPermission(err error) bool { return hasKind(err, KindPermission) }

// IsNotEmpty reports whether err is a non-empty directory failure.
func IsNotEmpty(err error) bool { return hasKind(err, KindNotEmpty) }

// IsUnsupported reports whether err is an unsupported-operation failure.
func IsUnsupported(err error) bool { return hasKind(err, KindUnsupported) }
