package kaggle

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to check for them.
var (
	// ErrNotInstalled means the Kaggle client is not available in this run.
	ErrNotInstalled = errors.New("kaggle client not installed")

	// ErrNotConfigured means no usable credentials were found.
	ErrNotConfigured = errors.New("kaggle API credentials not found")

	// ErrInvalidRef means a dataset reference is not of the form owner/slug.
	ErrInvalidRef = errors.New("invalid dataset reference")

	// ErrUnauthorized means the API rejected the credentials.
	ErrUnauthorized = errors.New("kaggle API rejected the credentials")

	// ErrDatasetNotFound means the API has no dataset with the given reference.
	ErrDatasetNotFound = errors.New("dataset not found on kaggle")
)

// APIError wraps any failure of a Kaggle API call.
type APIError struct {
	Ref string
	Op  string
	Err error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kaggle %s %s: %v", e.Op, e.Ref, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
