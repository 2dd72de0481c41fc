package generation

import "errors"

var (
	// ErrValidation marks malformed or out-of-range request fields.
	ErrValidation = errors.New("validation failed")
	// ErrRegenerationMissingParent marks a regeneration request without a
	// previous_version_uuid.
	ErrRegenerationMissingParent = errors.New("regeneration requires previous_version_uuid")
	// ErrParentNotFound marks a regeneration whose parent generation does
	// not exist for the requested document type.
	ErrParentNotFound = errors.New("previous generation not found")
	// ErrMalformedOutput marks model output that does not satisfy the
	// declared document schema.
	ErrMalformedOutput = errors.New("model output does not match document schema")
)
