package shared

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator hands out identities for islands, buildings and research records
type IDGenerator interface {
	NewID() uuid.UUID
}

// UUIDGenerator produces random version 4 identifiers
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a fresh random UUID
func (g *UUIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}

// SequenceIDGenerator derives name-based UUIDs from a seed and a counter.
// Two generators with the same seed yield the same sequence.
type SequenceIDGenerator struct {
	namespace uuid.UUID
	next      int
}

func NewSequenceIDGenerator(seed string) *SequenceIDGenerator {
	return &SequenceIDGenerator{
		namespace: uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)),
	}
}

// NewID returns the next identifier in the sequence
func (g *SequenceIDGenerator) NewID() uuid.UUID {
	g.next++
	return uuid.NewSHA1(g.namespace, []byte(strconv.Itoa(g.next)))
}
