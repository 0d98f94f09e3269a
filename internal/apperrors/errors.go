package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrSelfReference indicates an operation that would relate an account to itself
// (e.g. connecting an account to itself). This is a caller bug, distinct from the
// benign duplicate-edge case covered by ErrDuplicate.
var ErrSelfReference = errors.New("operation references the same account twice")
