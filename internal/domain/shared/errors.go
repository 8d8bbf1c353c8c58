package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Validation error

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

// InvariantViolationError reports restored or migrated data that breaks an aggregate invariant
type InvariantViolationError struct {
	*DomainError
	Entity string
}

func NewInvariantViolationError(entity, message string) *InvariantViolationError {
	return &InvariantViolationError{
		DomainError: NewDomainError(fmt.Sprintf("%s: %s", entity, message)),
		Entity:      entity,
	}
}
