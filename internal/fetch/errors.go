package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies a transport failure.
type Kind int

const (
	// KindNetwork covers request construction, connection, HTTP status and
	// body streaming failures.
	KindNetwork Kind = iota + 1

	// KindFilesystem covers local I/O failures while writing a download.
	KindFilesystem

	// KindArchive covers unreadable, corrupt or unsafe archives.
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindFilesystem:
		return "filesystem"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// Error is returned by Download and Extract.
type Error struct {
	Kind Kind
	Op   string // "download", "extract", ...
	Path string // URL for network errors, local path otherwise
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// ErrUnexpectedStatus is wrapped by network errors caused by a non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// StatusError carries the HTTP status of a failed response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// IllegalPathError reports an archive entry that would be written outside the
// extraction directory.
type IllegalPathError struct {
	Name string
}

func (e *IllegalPathError) Error() string {
	return fmt.Sprintf("%s: illegal file path", e.Name)
}
