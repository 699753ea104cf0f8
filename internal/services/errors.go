package services

import (
	"errors"
	"fmt"
)

// Domain failure conditions. Handlers translate these into HTTP status
// codes; nothing below is ever swallowed inside the services layer.
var (
	ErrNotFound              = errors.New("entity not found")
	ErrAuthorizationDenied   = errors.New("actor is not the author of this recipe")
	ErrDuplicateRelation     = errors.New("relation already exists")
	ErrRelationNotFound      = errors.New("relation does not exist")
	ErrSelfRelationForbidden = errors.New("users cannot follow themselves")
	ErrEmptyCart             = errors.New("shopping cart is empty")
)

// ValidationError reports the first input rule a create/update request
// violated, keyed by the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
