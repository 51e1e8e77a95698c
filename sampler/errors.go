package sampler

import (
	"errors"
	"fmt"
)

// ErrNilRNG is returned when random seeding is requested without an RNG.
var ErrNilRNG = errors.New("sampler: rng is nil and FixSeed is false")

// NotProteinError indicates a record without residue annotation.
type NotProteinError struct {
	Name string
}

func (e *NotProteinError) Error() string {
	return fmt.Sprintf("sampler: record %q has no residue annotation", e.Name)
}

// NoBackboneError indicates a record whose atoms are all sidechain.
// Such a record cannot seed a subgraph.
type NoBackboneError struct {
	Name string
}

func (e *NoBackboneError) Error() string {
	return fmt.Sprintf("sampler: record %q has no backbone atoms", e.Name)
}

// ResidueOverflowError indicates a residue id at or above the configured
// ceiling. This is a configuration error, not a recoverable condition.
type ResidueOverflowError struct {
	Name       string
	ResidueID  int
	MaxResidue int
}

func (e *ResidueOverflowError) Error() string {
	return fmt.Sprintf("sampler: record %q residue id %d exceeds max residue %d",
		e.Name, e.ResidueID, e.MaxResidue)
}
