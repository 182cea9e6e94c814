package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotConfigured indicates no catalog API key is available
	ErrNotConfigured = errors.New("catalog API key is not configured")

	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrGenreNotFound indicates no genre matched the requested name
	ErrGenreNotFound = errors.New("genre not found")
)

// NetworkError is returned when the catalog answers with a non-2xx status
// or cannot be reached at all (Status 0).
type NetworkError struct {
	Status     int
	StatusText string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return "Error: " + e.Err.Error()
		}
		return "Error: " + e.StatusText
	}
	return fmt.Sprintf("Error: %d %s", e.Status, e.StatusText)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is returned when a catalog response body is not valid JSON
// for the expected shape.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError reports an unreadable persisted favorites collection.
// Readers normalize it to an empty collection; it is only logged.
type StorageError struct {
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("stored value %q is unreadable: %v", e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
