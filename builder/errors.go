package builder

import "fmt"

// RejectKind classifies why a structure was rejected.
type RejectKind int

const (
	// RejectNoBonds marks structures whose bond table is empty.
	// Message passing downstream needs at least one edge.
	RejectNoBonds RejectKind = iota + 1
	// RejectNoSidechain marks protein structures with zero sidechain atoms.
	RejectNoSidechain
	// RejectAnnotationMismatch marks structures whose atom ordering
	// disagrees with the supplied reference atom list.
	RejectAnnotationMismatch
)

func (k RejectKind) String() string {
	switch k {
	case RejectNoBonds:
		return "no-bonds"
	case RejectNoSidechain:
		return "no-sidechain"
	case RejectAnnotationMismatch:
		return "annotation-mismatch"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// RejectError indicates a structure that cannot become a record.
// It is fatal for the single structure, never for the batch: callers
// count it and continue.
type RejectError struct {
	Kind      RejectKind
	Structure string
	Detail    string
}

func (e *RejectError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("builder: reject %q (%s): %s", e.Structure, e.Kind, e.Detail)
	}
	return fmt.Sprintf("builder: reject %q (%s)", e.Structure, e.Kind)
}

// ResidueOverflowError indicates a residue id at or above the configured
// ceiling. This is a configuration error: the ceiling must be raised, the
// input is not silently clamped or skipped.
type ResidueOverflowError struct {
	Structure  string
	ResidueID  int
	MaxResidue int
}

func (e *ResidueOverflowError) Error() string {
	return fmt.Sprintf("builder: structure %q residue id %d exceeds max residue %d",
		e.Structure, e.ResidueID, e.MaxResidue)
}

// ParseFailure indicates that the structure parser could not produce a
// structure from a path. It is distinguishable from I/O and build errors
// so batch jobs can count parse failures separately.
type ParseFailure struct {
	Path  string
	Cause error
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("builder: parse %q failed: %v", e.Path, e.Cause)
}

func (e *ParseFailure) Unwrap() error { return e.Cause }
