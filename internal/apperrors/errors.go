package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewCollectionNotFoundError is returned by the store when the backing file does not exist.
func NewCollectionNotFoundError(path string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "collection",
		ID:       path,
	}
}

// ErrMalformedRecord is reported when one stored record cannot be used.
// Index is the record position in the collection, or the 1-based line number
// for line-delimited files.
type ErrMalformedRecord struct {
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed record at %d: %s", e.Index, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrMalformedRecord) Is(target error) bool {
	_, ok := target.(*ErrMalformedRecord)
	return ok
}

// ErrSourceFailed is returned when a collector could not read a source listing.
type ErrSourceFailed struct {
	Source string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *ErrSourceFailed) Error() string {
	return fmt.Sprintf("source %s failed at %s: %v", e.Source, e.URL, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ErrSourceFailed) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is().
func (e *ErrSourceFailed) Is(target error) bool {
	_, ok := target.(*ErrSourceFailed)
	return ok
}
