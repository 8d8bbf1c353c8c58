package research

import "github.com/islandepoch/islandepoch-go/internal/domain/shared"

type ResearchErrorKind string

const (
	AlreadyCompleted      ResearchErrorKind = "ALREADY_COMPLETED"
	ResearchNotFound      ResearchErrorKind = "RESEARCH_NOT_FOUND"
	InsufficientResources ResearchErrorKind = "INSUFFICIENT_RESOURCES"
	InvalidIsland         ResearchErrorKind = "INVALID_ISLAND"
)

// ResearchError is returned by Service.Complete
type ResearchError struct {
	*shared.DomainError
	Kind ResearchErrorKind
}

func newResearchError(kind ResearchErrorKind, message string) *ResearchError {
	return &ResearchError{DomainError: shared.NewDomainError(message), Kind: kind}
}

func (e *ResearchError) KindName() string {
	return string(e.Kind)
}

func (e *ResearchError) Is(target error) bool {
	t, ok := target.(*ResearchError)
	return ok && t.Kind == e.Kind
}

var (
	ErrAlreadyCompleted      = newResearchError(AlreadyCompleted, "research already completed")
	ErrResearchNotFound      = newResearchError(ResearchNotFound, "research not found")
	ErrInsufficientResources = newResearchError(InsufficientResources, "insufficient resources for research")
	ErrInvalidIsland         = newResearchError(InvalidIsland, "invalid island")
)
