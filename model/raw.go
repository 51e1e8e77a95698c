package model

import "errors"

// ErrInvalidRecord indicates a record that violates a structural invariant.
var ErrInvalidRecord = errors.New("model: invalid record")

// RawResidue is the residue annotation attached to a RawAtom by the
// structure parser.
type RawResidue struct {
	// Name is the residue name (e.g. "GLY").
	Name string
	// Number is the residue sequence number as found in the source file.
	// It is normalized to a zero-based id at build time.
	Number int
	// AtomName is the atom name within the residue (e.g. "CA", "CB").
	AtomName string
}

// RawAtom is one atom of a parsed structure.
type RawAtom struct {
	// Element is the atomic number.
	Element int64
	// X, Y, Z are the 3D coordinates.
	X, Y, Z float32
	// Aromatic marks atoms flagged aromatic by the parser.
	Aromatic bool
	// Hybridization is one of the Hybridization* codes.
	Hybridization int8
	// Residue is non-nil for protein structures.
	Residue *RawResidue
}

// RawBond is one undirected bond of the parsed bond table.
type RawBond struct {
	// From and To are atom indices into the structure's atom list.
	From, To int
	// Type is the opaque bond-category code.
	Type int64
}

// RefAtom is one entry of an externally supplied reference atom list,
// used to cross-check the parser's atom ordering against the source file.
type RefAtom struct {
	ResidueName   string
	ResidueNumber int
	AtomName      string
}

// RawStructure is the opaque parsed structure handed to the builder.
// Coordinates and bond chemistry are inputs; the builder never computes
// or verifies them.
type RawStructure struct {
	// Name identifies the source (file stem, PDB id, ...).
	Name  string
	Atoms []RawAtom
	Bonds []RawBond
	// Reference, when non-empty, must be index-aligned with Atoms.
	// Any residue-name/number or atom-name mismatch rejects the structure.
	Reference []RefAtom

	// Per-conformer labels, when the source provides them.
	Energy          *float32
	BoltzmannWeight *float32
}

// IsProtein reports whether every atom carries residue annotation.
// Mixed annotation is treated as absent.
func (s *RawStructure) IsProtein() bool {
	if len(s.Atoms) == 0 {
		return false
	}
	for i := range s.Atoms {
		if s.Atoms[i].Residue == nil {
			return false
		}
	}
	return true
}
