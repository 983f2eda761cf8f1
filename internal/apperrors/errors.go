package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStaleRevision indicates the supplied revision token no longer matches the stored one.
var ErrStaleRevision = errors.New("revision is stale")

// ErrIdentifierMismatch indicates a code and a uuid were both supplied but name different records.
var ErrIdentifierMismatch = errors.New("code and uuid refer to different records")

// ErrInvalidIdentifier indicates a malformed or missing identifier.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrParentNotFound indicates the parent account of an add/update could not be resolved.
var ErrParentNotFound = errors.New("parent account not found")

// ErrNotInitialized indicates the ledger has no root account yet.
var ErrNotInitialized = errors.New("ledger not initialized")

// ErrHasChildren indicates a delete was blocked by sub-accounts.
var ErrHasChildren = errors.New("account has sub-accounts")

// ErrCycleDetected indicates a parent change would make an account its own ancestor.
var ErrCycleDetected = errors.New("account hierarchy cycle detected")

// ErrConflictingFlags indicates mutually exclusive fields were set together.
var ErrConflictingFlags = errors.New("conflicting flags")

// ErrAccountInUse indicates an account cannot be removed because entries reference it.
var ErrAccountInUse = errors.New("account is referenced by entries")

// ErrInternal indicates an unexpected failure in an underlying collaborator.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure failure with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches ErrInternal for server-side codes.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= http.StatusInternalServerError
}

// Violation is one business-rule failure. Key is an English format string that doubles
// as the message catalog key; Args fill its verbs.
type Violation struct {
	Key  string
	Args []any
}

// Message renders the violation in English.
func (v Violation) Message() string {
	if len(v.Args) == 0 {
		return v.Key
	}
	return fmt.Sprintf(v.Key, v.Args...)
}

// NewViolation builds a Violation.
func NewViolation(key string, args ...any) Violation {
	return Violation{Key: key, Args: args}
}

// ValidationErrors is an ordered batch of violations reported as one failure.
type ValidationErrors struct {
	Violations []Violation
}

// Add appends a violation.
func (v *ValidationErrors) Add(key string, args ...any) {
	v.Violations = append(v.Violations, NewViolation(key, args...))
}

// Merge appends every violation of other.
func (v *ValidationErrors) Merge(other *ValidationErrors) {
	if other == nil {
		return
	}
	v.Violations = append(v.Violations, other.Violations...)
}

// Empty reports whether no violation was collected.
func (v *ValidationErrors) Empty() bool {
	return v == nil || len(v.Violations) == 0
}

// Err returns nil when empty, otherwise the batch itself.
func (v *ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

// Messages returns the English messages in order.
func (v *ValidationErrors) Messages() []string {
	msgs := make([]string, len(v.Violations))
	for i, violation := range v.Violations {
		msgs[i] = violation.Message()
	}
	return msgs
}

func (v *ValidationErrors) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(v.Messages(), "; "))
}

// Is makes errors.Is(err, ErrValidation) hold for a batch.
func (v *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError wraps a single violation as a batch.
func NewValidationError(key string, args ...any) error {
	errs := &ValidationErrors{}
	errs.Add(key, args...)
	return errs
}

// Status is the coarse classification surfaced next to the error list.
type Status string

const (
	StatusBadRequest Status = "bad_request"
	StatusNotFound   Status = "not_found"
	StatusConflict   Status = "conflict"
	StatusInternal   Status = "internal"
)

// Classify maps an error to its status class and HTTP status code.
func Classify(err error) (Status, int) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrParentNotFound), errors.Is(err, ErrNotInitialized):
		return StatusNotFound, http.StatusNotFound
	case errors.Is(err, ErrStaleRevision), errors.Is(err, ErrDuplicate), errors.Is(err, ErrHasChildren),
		errors.Is(err, ErrAccountInUse):
		return StatusConflict, http.StatusConflict
	case errors.Is(err, ErrValidation), errors.Is(err, ErrIdentifierMismatch), errors.Is(err, ErrInvalidIdentifier),
		errors.Is(err, ErrCycleDetected), errors.Is(err, ErrConflictingFlags):
		return StatusBadRequest, http.StatusBadRequest
	default:
		return StatusInternal, http.StatusInternalServerError
	}
}
