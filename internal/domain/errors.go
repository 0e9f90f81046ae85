package domain

import "errors"

// Sentinel errors for the core outcome taxonomy - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotEmpty is returned when deleting a folder that still has
	// child folders or assets. Deletion is refused, never cascaded.
	ErrNotEmpty = errors.New("folder not empty")

	// ErrStorageWrite is returned when the blob store rejects an upload.
	// No metadata record exists when this is surfaced.
	ErrStorageWrite = errors.New("storage write failed")
)

// ConflictError represents a unique-constraint conflict with details about
// the existing resource.
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, asset)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
