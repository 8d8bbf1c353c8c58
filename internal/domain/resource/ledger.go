package resource

import (
	"fmt"

	"github.com/islandepoch/islandepoch-go/internal/domain/shared"
)

// Ledger maps resource kinds to non-negative quantities.
// A kind that was never written reads as zero.
type Ledger struct {
	quantities map[Kind]int
}

// Entry is a single ledger line
type Entry struct {
	Kind     Kind
	Quantity int
}

// NewLedger creates an empty ledger. Listed kinds are stored with an explicit zero.
func NewLedger(kinds ...Kind) *Ledger {
	l := &Ledger{quantities: make(map[Kind]int, len(kinds))}
	for _, k := range kinds {
		l.quantities[k] = 0
	}
	return l
}

// ReconstructLedger rebuilds a ledger from stored quantities
func ReconstructLedger(quantities map[Kind]int) (*Ledger, error) {
	l := &Ledger{quantities: make(map[Kind]int, len(quantities))}
	for k, q := range quantities {
		if !k.IsValid() {
			return nil, shared.NewValidationError("kind", fmt.Sprintf("unknown resource kind %q", k))
		}
		if q < 0 {
			return nil, shared.NewValidationError(string(k), fmt.Sprintf("quantity cannot be negative, got %d", q))
		}
		l.quantities[k] = q
	}
	return l, nil
}

// Quantity returns the stored quantity, zero for absent kinds
func (l *Ledger) Quantity(kind Kind) int {
	return l.quantities[kind]
}

// Has reports whether at least qty of kind is stored
func (l *Ledger) Has(kind Kind, qty int) bool {
	return l.quantities[kind] >= qty
}

// HasAll reports whether every amount is covered at the same time
func (l *Ledger) HasAll(amounts map[Kind]int) bool {
	for k, q := range amounts {
		if !l.Has(k, q) {
			return false
		}
	}
	return true
}

// Add increases the quantity of kind
func (l *Ledger) Add(kind Kind, qty int) error {
	if qty < 0 {
		return shared.NewValidationError("qty", fmt.Sprintf("cannot add negative quantity %d", qty))
	}
	l.quantities[kind] += qty
	return nil
}

// Remove decreases the quantity of kind, leaving the ledger untouched on failure
func (l *Ledger) Remove(kind Kind, qty int) error {
	if qty < 0 {
		return shared.NewValidationError("qty", fmt.Sprintf("cannot remove negative quantity %d", qty))
	}
	current := l.quantities[kind]
	if current < qty {
		return NewInsufficientResourceError(kind, qty, current)
	}
	l.quantities[kind] = current - qty
	return nil
}

// RemoveAll removes every amount or nothing. The first short kind in display order is reported.
func (l *Ledger) RemoveAll(amounts map[Kind]int) error {
	for _, k := range SortedKinds(amounts) {
		q := amounts[k]
		if q < 0 {
			return shared.NewValidationError("qty", fmt.Sprintf("cannot remove negative quantity %d", q))
		}
		if !l.Has(k, q) {
			return NewInsufficientResourceError(k, q, l.quantities[k])
		}
	}
	for k, q := range amounts {
		l.quantities[k] -= q
	}
	return nil
}

// Merge adds every quantity held by other
func (l *Ledger) Merge(other *Ledger) {
	for k, q := range other.quantities {
		l.quantities[k] += q
	}
}

// CategoryTotal sums the quantities of every kind in the category
func (l *Ledger) CategoryTotal(c Category) int {
	total := 0
	for k, q := range l.quantities {
		if k.Category() == c {
			total += q
		}
	}
	return total
}

// Entries returns the stored lines in display order, explicit zeros included
func (l *Ledger) Entries() []Entry {
	entries := make([]Entry, 0, len(l.quantities))
	for _, k := range SortedKinds(l.quantities) {
		entries = append(entries, Entry{Kind: k, Quantity: l.quantities[k]})
	}
	return entries
}

// Quantities returns a copy of the stored map
func (l *Ledger) Quantities() map[Kind]int {
	out := make(map[Kind]int, len(l.quantities))
	for k, q := range l.quantities {
		out[k] = q
	}
	return out
}

// IsEmpty reports whether every stored quantity is zero
func (l *Ledger) IsEmpty() bool {
	for _, q := range l.quantities {
		if q != 0 {
			return false
		}
	}
	return true
}

func (l *Ledger) Clone() *Ledger {
	return &Ledger{quantities: l.Quantities()}
}
