package model

import (
	"fmt"
	"slices"
)

// Edge is one directed edge of the symmetric edge list.
type Edge struct {
	Src int32 `json:"src"`
	Dst int32 `json:"dst"`
}

// Key returns the canonical sort key src*n + dst for a graph of n atoms.
func (e Edge) Key(n int) int64 {
	return int64(e.Src)*int64(n) + int64(e.Dst)
}

// ResidueInfo carries per-atom residue annotation for protein records.
// All slices are index-aligned with the record's AtomType.
type ResidueInfo struct {
	// AtomToResidue maps each atom to its zero-based residue id. The
	// builder normalizes ids to start at 0 by subtracting the minimum
	// source residue number; gapped source numbering and subgraph
	// extraction both leave gaps in the id range.
	AtomToResidue []int32 `json:"atom_to_residue"`
	// IsSidechain marks atoms that are not part of the backbone (N, CA, C, O).
	IsSidechain []bool `json:"is_sidechain"`
	// IsAlphaCarbon marks CA atoms.
	IsAlphaCarbon []bool `json:"is_alpha_carbon"`
	// AtomToAlpha maps each atom to the index of the alpha carbon of its
	// residue, or -1 when the residue has no alpha carbon.
	AtomToAlpha []int32 `json:"atom_to_alpha"`
}

// Clone returns a deep copy.
func (ri *ResidueInfo) Clone() *ResidueInfo {
	if ri == nil {
		return nil
	}
	return &ResidueInfo{
		AtomToResidue: slices.Clone(ri.AtomToResidue),
		IsSidechain:   slices.Clone(ri.IsSidechain),
		IsAlphaCarbon: slices.Clone(ri.IsAlphaCarbon),
		AtomToAlpha:   slices.Clone(ri.AtomToAlpha),
	}
}

// NumResidues returns one past the highest residue id. Ids may be
// sparse, so this is an upper bound on the number of residues present.
func (ri *ResidueInfo) NumResidues() int {
	if ri == nil || len(ri.AtomToResidue) == 0 {
		return 0
	}
	maxID := int32(-1)
	for _, r := range ri.AtomToResidue {
		if r > maxID {
			maxID = r
		}
	}
	return int(maxID) + 1
}

// GraphRecord is one molecular/structural graph with 3D positions.
//
// Positions are stored row-major: atom i occupies Pos[3*i : 3*i+3].
// EdgeIndex stores every bond twice (both directions) and is sorted by
// the canonical key src*N+dst, so the edge order is independent of the
// bond-table order in the source structure.
type GraphRecord struct {
	// Name identifies the source structure (e.g. a PDB id).
	Name string `json:"name,omitempty"`
	// MoleculeID is the 2D-topology identity used to group conformers.
	MoleculeID string `json:"molecule_id,omitempty"`

	AtomType  []int64   `json:"atom_type"`
	Pos       []float32 `json:"pos"`
	EdgeIndex []Edge    `json:"edge_index"`
	EdgeType  []int64   `json:"edge_type"`

	// Optional per-atom chemistry flags. Either nil or index-aligned
	// with AtomType.
	Aromatic      []bool `json:"aromatic,omitempty"`
	Hybridization []int8 `json:"hybridization,omitempty"`

	// Residues is non-nil only for protein records.
	Residues *ResidueInfo `json:"residues,omitempty"`

	// Per-conformer energetics, present only on conformer records that
	// came with labels. Dropped when records are packed.
	Energy          *float32 `json:"energy,omitempty"`
	BoltzmannWeight *float32 `json:"boltzmann_weight,omitempty"`
}

// Hybridization codes.
const (
	HybridizationNone int8 = iota
	HybridizationSP
	HybridizationSP2
	HybridizationSP3
)

// NumAtoms returns the atom count N.
func (r *GraphRecord) NumAtoms() int {
	return len(r.AtomType)
}

// NumEdges returns the number of directed edges (2x the bond count).
func (r *GraphRecord) NumEdges() int {
	return len(r.EdgeIndex)
}

// HasResidues reports whether the record carries residue annotation.
func (r *GraphRecord) HasResidues() bool {
	return r.Residues != nil
}

// Position returns the coordinates of atom i.
func (r *GraphRecord) Position(i int) (x, y, z float32) {
	return r.Pos[3*i], r.Pos[3*i+1], r.Pos[3*i+2]
}

// Clone returns a deep copy of the record. Mutating the copy never
// affects the original, so stored records can be handed out safely.
func (r *GraphRecord) Clone() *GraphRecord {
	if r == nil {
		return nil
	}
	out := &GraphRecord{
		Name:          r.Name,
		MoleculeID:    r.MoleculeID,
		AtomType:      slices.Clone(r.AtomType),
		Pos:           slices.Clone(r.Pos),
		EdgeIndex:     slices.Clone(r.EdgeIndex),
		EdgeType:      slices.Clone(r.EdgeType),
		Aromatic:      slices.Clone(r.Aromatic),
		Hybridization: slices.Clone(r.Hybridization),
		Residues:      r.Residues.Clone(),
	}
	if r.Energy != nil {
		e := *r.Energy
		out.Energy = &e
	}
	if r.BoltzmannWeight != nil {
		w := *r.BoltzmannWeight
		out.BoltzmannWeight = &w
	}
	return out
}

// Validate checks the structural invariants of the record.
func (r *GraphRecord) Validate() error {
	n := r.NumAtoms()
	if len(r.Pos) != 3*n {
		return fmt.Errorf("%w: %d atoms but %d position values", ErrInvalidRecord, n, len(r.Pos))
	}
	if len(r.EdgeType) != len(r.EdgeIndex) {
		return fmt.Errorf("%w: %d edges but %d edge types", ErrInvalidRecord, len(r.EdgeIndex), len(r.EdgeType))
	}
	if r.Aromatic != nil && len(r.Aromatic) != n {
		return fmt.Errorf("%w: aromatic flags not atom-aligned", ErrInvalidRecord)
	}
	if r.Hybridization != nil && len(r.Hybridization) != n {
		return fmt.Errorf("%w: hybridization flags not atom-aligned", ErrInvalidRecord)
	}

	prev := int64(-1)
	for i, e := range r.EdgeIndex {
		if e.Src < 0 || int(e.Src) >= n || e.Dst < 0 || int(e.Dst) >= n {
			return fmt.Errorf("%w: edge %d (%d,%d) out of range [0,%d)", ErrInvalidRecord, i, e.Src, e.Dst, n)
		}
		key := e.Key(n)
		if key < prev {
			return fmt.Errorf("%w: edge list not in canonical order at %d", ErrInvalidRecord, i)
		}
		prev = key
	}

	if ri := r.Residues; ri != nil {
		if len(ri.AtomToResidue) != n || len(ri.IsSidechain) != n || len(ri.IsAlphaCarbon) != n || len(ri.AtomToAlpha) != n {
			return fmt.Errorf("%w: residue annotation not atom-aligned", ErrInvalidRecord)
		}
		for i, res := range ri.AtomToResidue {
			if res < 0 {
				return fmt.Errorf("%w: atom %d has negative residue id", ErrInvalidRecord, i)
			}
		}
		for i, a := range ri.AtomToAlpha {
			if a != -1 && (a < 0 || int(a) >= n) {
				return fmt.Errorf("%w: atom %d alpha index %d out of range", ErrInvalidRecord, i, a)
			}
		}
	}

	return nil
}

// PackedGraphRecord holds one molecule's shared 2D topology plus the
// stacked positions of all its conformers.
type PackedGraphRecord struct {
	Name       string `json:"name,omitempty"`
	MoleculeID string `json:"molecule_id,omitempty"`

	AtomType  []int64 `json:"atom_type"`
	EdgeIndex []Edge  `json:"edge_index"`
	EdgeType  []int64 `json:"edge_type"`

	Aromatic      []bool       `json:"aromatic,omitempty"`
	Hybridization []int8       `json:"hybridization,omitempty"`
	Residues      *ResidueInfo `json:"residues,omitempty"`

	// PosRef concatenates every conformer's positions in group order,
	// NumConformers * NumAtoms * 3 values.
	PosRef []float32 `json:"pos_ref"`
	// NumConformers is the conformer count K.
	NumConformers int `json:"num_conformers"`
}

// NumAtoms returns the atom count N of the shared topology.
func (p *PackedGraphRecord) NumAtoms() int {
	return len(p.AtomType)
}

// ConformerPos returns the positions of conformer k as a subslice of
// PosRef. The caller must not mutate it.
func (p *PackedGraphRecord) ConformerPos(k int) []float32 {
	n := 3 * p.NumAtoms()
	return p.PosRef[k*n : (k+1)*n]
}

// Clone returns a deep copy.
func (p *PackedGraphRecord) Clone() *PackedGraphRecord {
	if p == nil {
		return nil
	}
	return &PackedGraphRecord{
		Name:          p.Name,
		MoleculeID:    p.MoleculeID,
		AtomType:      slices.Clone(p.AtomType),
		EdgeIndex:     slices.Clone(p.EdgeIndex),
		EdgeType:      slices.Clone(p.EdgeType),
		Aromatic:      slices.Clone(p.Aromatic),
		Hybridization: slices.Clone(p.Hybridization),
		Residues:      p.Residues.Clone(),
		PosRef:        slices.Clone(p.PosRef),
		NumConformers: p.NumConformers,
	}
}

// Validate checks the packed-record invariants.
func (p *PackedGraphRecord) Validate() error {
	if p.NumConformers < 1 {
		return fmt.Errorf("%w: packed record with %d conformers", ErrInvalidRecord, p.NumConformers)
	}
	if len(p.PosRef) != 3*p.NumAtoms()*p.NumConformers {
		return fmt.Errorf("%w: pos_ref length %d, want %d", ErrInvalidRecord, len(p.PosRef), 3*p.NumAtoms()*p.NumConformers)
	}
	if len(p.EdgeType) != len(p.EdgeIndex) {
		return fmt.Errorf("%w: %d edges but %d edge types", ErrInvalidRecord, len(p.EdgeIndex), len(p.EdgeType))
	}
	return nil
}
