package resource

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// InsufficientResourceError is returned when a removal would drive a quantity negative
type InsufficientResourceError struct {
	*shared.DomainError
	Kind      Kind
	Required  int
	Available int
}

func NewInsufficientResourceError(kind Kind, required, available int) *InsufficientResourceError {
	return &InsufficientResourceError{
		DomainError: shared.NewDomainError(fmt.Sprintf("insufficient %s: need %d, have %d", kind, required, available)),
		Kind:        kind,
		Required:    required,
		Available:   available,
	}
}
