// Package builder converts parsed 3D structures into canonical graph
// records.
//
// The builder owns the edge-canonicalization, residue normalization and
// rejection policy. Structures it cannot use are rejected with a typed
// error and counted; a batch job keeps going.
package builder

import (
	"fmt"
	"sort"

	"github.com/confgraph/confgraph/model"
)

// DefaultMaxResidue is the ceiling on normalized residue ids.
const DefaultMaxResidue = 5000

// Backbone atom names of the protein main chain.
var backboneAtoms = map[string]bool{
	"N": true, "CA": true, "C": true, "O": true,
}

// Builder converts RawStructures into GraphRecords.
type Builder struct {
	maxResidue int
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxResidue overrides the residue-id ceiling.
func WithMaxResidue(maxResidue int) Option {
	return func(b *Builder) {
		if maxResidue > 0 {
			b.maxResidue = maxResidue
		}
	}
}

// New creates a Builder.
func New(optFns ...Option) *Builder {
	b := &Builder{maxResidue: DefaultMaxResidue}
	for _, fn := range optFns {
		fn(b)
	}
	return b
}

// Build converts one structure into a canonical GraphRecord.
//
// identity is the 2D-topology identity hint used to group conformers
// (e.g. a canonical structure string); when empty, the structure name
// is used.
//
// Rejected structures return a *RejectError; residue ids at or above
// the configured ceiling return a *ResidueOverflowError, which is a
// configuration error, not a skip.
func (b *Builder) Build(s *model.RawStructure, identity string) (*model.GraphRecord, error) {
	if len(s.Bonds) == 0 {
		return nil, &RejectError{Kind: RejectNoBonds, Structure: s.Name}
	}
	if err := b.checkReference(s); err != nil {
		return nil, err
	}

	n := len(s.Atoms)
	rec := &model.GraphRecord{
		Name:            s.Name,
		MoleculeID:      identity,
		AtomType:        make([]int64, n),
		Pos:             make([]float32, 3*n),
		Energy:          copyFloat(s.Energy),
		BoltzmannWeight: copyFloat(s.BoltzmannWeight),
	}
	if rec.MoleculeID == "" {
		rec.MoleculeID = s.Name
	}

	var aromatic []bool
	var hybrid []int8
	for i := range s.Atoms {
		a := &s.Atoms[i]
		rec.AtomType[i] = a.Element
		rec.Pos[3*i] = a.X
		rec.Pos[3*i+1] = a.Y
		rec.Pos[3*i+2] = a.Z
		if a.Aromatic {
			if aromatic == nil {
				aromatic = make([]bool, n)
			}
			aromatic[i] = true
		}
		if a.Hybridization != model.HybridizationNone {
			if hybrid == nil {
				hybrid = make([]int8, n)
			}
			hybrid[i] = a.Hybridization
		}
	}
	rec.Aromatic = aromatic
	rec.Hybridization = hybrid

	rec.EdgeIndex, rec.EdgeType = canonicalEdges(s.Bonds, n)

	if s.IsProtein() {
		ri, err := b.buildResidueInfo(s)
		if err != nil {
			return nil, err
		}
		rec.Residues = ri
	}

	return rec, nil
}

// canonicalEdges emits both directions per bond and sorts by src*n+dst,
// making the edge order independent of the source bond-table order.
func canonicalEdges(bonds []model.RawBond, n int) ([]model.Edge, []int64) {
	edges := make([]model.Edge, 0, 2*len(bonds))
	types := make([]int64, 0, 2*len(bonds))
	for _, bo := range bonds {
		edges = append(edges,
			model.Edge{Src: int32(bo.From), Dst: int32(bo.To)},
			model.Edge{Src: int32(bo.To), Dst: int32(bo.From)},
		)
		types = append(types, bo.Type, bo.Type)
	}

	perm := make([]int, len(edges))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return edges[perm[i]].Key(n) < edges[perm[j]].Key(n)
	})

	sortedEdges := make([]model.Edge, len(edges))
	sortedTypes := make([]int64, len(types))
	for i, p := range perm {
		sortedEdges[i] = edges[p]
		sortedTypes[i] = types[p]
	}
	return sortedEdges, sortedTypes
}

// checkReference cross-checks the parser's atom ordering against an
// externally supplied reference atom list.
func (b *Builder) checkReference(s *model.RawStructure) error {
	if len(s.Reference) == 0 {
		return nil
	}
	if len(s.Reference) != len(s.Atoms) {
		return &RejectError{
			Kind:      RejectAnnotationMismatch,
			Structure: s.Name,
			Detail:    fmt.Sprintf("%d reference entries for %d atoms", len(s.Reference), len(s.Atoms)),
		}
	}
	for i := range s.Atoms {
		res := s.Atoms[i].Residue
		if res == nil {
			continue
		}
		ref := &s.Reference[i]
		if res.Name != ref.ResidueName || res.AtomName != ref.AtomName || res.Number != ref.ResidueNumber {
			return &RejectError{
				Kind:      RejectAnnotationMismatch,
				Structure: s.Name,
				Detail: fmt.Sprintf("atom %d: %s/%s/%d vs reference %s/%s/%d",
					i, res.Name, res.AtomName, res.Number,
					ref.ResidueName, ref.AtomName, ref.ResidueNumber),
			}
		}
	}
	return nil
}

func (b *Builder) buildResidueInfo(s *model.RawStructure) (*model.ResidueInfo, error) {
	n := len(s.Atoms)
	ri := &model.ResidueInfo{
		AtomToResidue: make([]int32, n),
		IsSidechain:   make([]bool, n),
		IsAlphaCarbon: make([]bool, n),
		AtomToAlpha:   make([]int32, n),
	}

	minRes := s.Atoms[0].Residue.Number
	for i := range s.Atoms {
		if num := s.Atoms[i].Residue.Number; num < minRes {
			minRes = num
		}
	}

	sidechainCount := 0
	maxRes := int32(0)
	for i := range s.Atoms {
		res := s.Atoms[i].Residue
		id := int32(res.Number - minRes)
		if id > maxRes {
			maxRes = id
		}
		ri.AtomToResidue[i] = id
		ri.IsAlphaCarbon[i] = res.AtomName == "CA"
		if !backboneAtoms[res.AtomName] {
			ri.IsSidechain[i] = true
			sidechainCount++
		}
	}
	if int(maxRes) >= b.maxResidue {
		return nil, &ResidueOverflowError{Structure: s.Name, ResidueID: int(maxRes), MaxResidue: b.maxResidue}
	}

	// Proteins built solely on glycine have no sidechain atoms and are
	// unusable for sidechain prediction.
	if sidechainCount == 0 {
		return nil, &RejectError{Kind: RejectNoSidechain, Structure: s.Name}
	}

	// Residue id -> alpha-carbon atom index, -1 when the residue lacks one.
	resToAlpha := make([]int32, maxRes+1)
	for i := range resToAlpha {
		resToAlpha[i] = -1
	}
	for i := range s.Atoms {
		if ri.IsAlphaCarbon[i] {
			resToAlpha[ri.AtomToResidue[i]] = int32(i)
		}
	}
	for i := range s.Atoms {
		ri.AtomToAlpha[i] = resToAlpha[ri.AtomToResidue[i]]
	}

	return ri, nil
}

func copyFloat(f *float32) *float32 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
