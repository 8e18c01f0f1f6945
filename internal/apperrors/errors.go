package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting user lacks the role or ownership
// required for the requested operation.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition indicates an expense state precondition did not hold,
// including the case where a concurrent transition won the race.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrStorageUnavailable indicates the receipt storage collaborator failed.
// It never escapes the intake pipeline; the pipeline absorbs it into an
// absent receipt reference.
var ErrStorageUnavailable = errors.New("receipt storage unavailable")

// ErrExtractionUnavailable indicates the field extraction collaborator failed.
// Like ErrStorageUnavailable it stays inside the intake pipeline.
var ErrExtractionUnavailable = errors.New("field extraction unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
