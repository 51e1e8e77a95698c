// Package sampler extracts spatially-local, residue-complete subgraphs
// from large protein graph records.
//
// Protein graphs can contain thousands of atoms; training needs
// bounded-size, spatially coherent subgraphs. A subgraph never splits a
// residue: a residue with any atom inside the cutoff sphere is kept
// whole, so downstream sidechain prediction always sees chemically
// complete units.
package sampler

import (
	"math"

	"github.com/confgraph/confgraph/internal/bitmask"
	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/util"
)

// Defaults for the sampling configuration surface.
const (
	DefaultCutoff     float32 = 10.0
	DefaultMaxResidue         = 5000
)

// Options configures subgraph sampling.
type Options struct {
	// Cutoff is the Euclidean distance below which an atom counts as
	// near the seed atom.
	Cutoff float32
	// MaxResidue is the ceiling on residue ids. Inputs at or above it
	// are a configuration error.
	MaxResidue int
	// FixSeed selects the middle backbone atom instead of a random one,
	// for deterministic evaluation.
	FixSeed bool
}

// DefaultOptions returns the default sampling configuration.
func DefaultOptions() Options {
	return Options{
		Cutoff:     DefaultCutoff,
		MaxResidue: DefaultMaxResidue,
	}
}

// Sampler extracts subgraphs around a seed backbone atom.
type Sampler struct {
	opts Options
}

// New creates a Sampler. Zero-valued option fields fall back to defaults.
func New(opts Options) *Sampler {
	if opts.Cutoff <= 0 {
		opts.Cutoff = DefaultCutoff
	}
	if opts.MaxResidue <= 0 {
		opts.MaxResidue = DefaultMaxResidue
	}
	return &Sampler{opts: opts}
}

// Options returns the sampler configuration.
func (s *Sampler) Options() Options {
	return s.opts
}

// Sample extracts one residue-complete subgraph from rec.
//
// The source record is never mutated; the subgraph is a freshly
// constructed record with densely reindexed atoms. A (nil, nil) return
// means the sampled subgraph had no sidechain atoms and the caller
// should skip this sample; it is not an error.
//
// rng drives the seed-atom choice when FixSeed is false and may be nil
// when FixSeed is true.
func (s *Sampler) Sample(rec *model.GraphRecord, rng *util.RNG) (*model.GraphRecord, error) {
	if !rec.HasResidues() {
		return nil, &NotProteinError{Name: rec.Name}
	}
	ri := rec.Residues

	backbone := make([]int, 0, rec.NumAtoms())
	for i, side := range ri.IsSidechain {
		if !side {
			backbone = append(backbone, i)
		}
	}
	if len(backbone) == 0 {
		return nil, &NoBackboneError{Name: rec.Name}
	}

	var seed int
	if s.opts.FixSeed {
		seed = backbone[len(backbone)/2]
	} else {
		if rng == nil {
			return nil, ErrNilRNG
		}
		seed = backbone[rng.Intn(len(backbone))]
	}

	return s.around(rec, seed)
}

// around builds the residue-complete subgraph centered at the seed atom.
func (s *Sampler) around(rec *model.GraphRecord, seed int) (*model.GraphRecord, error) {
	ri := rec.Residues
	n := rec.NumAtoms()

	for _, res := range ri.AtomToResidue {
		if int(res) >= s.opts.MaxResidue {
			return nil, &ResidueOverflowError{Name: rec.Name, ResidueID: int(res), MaxResidue: s.opts.MaxResidue}
		}
	}

	// Distance mask, aggregated by residue: a residue is kept iff any
	// of its atoms lies within the cutoff sphere.
	sx, sy, sz := rec.Position(seed)
	keepResidues := bitmask.New()
	for i := 0; i < n; i++ {
		x, y, z := rec.Position(i)
		dx, dy, dz := x-sx, y-sy, z-sz
		if float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz))) <= s.opts.Cutoff {
			keepResidues.Add(int(ri.AtomToResidue[i]))
		}
	}

	// Residue completion: keep every atom of every kept residue.
	keepAtoms := bitmask.New()
	sidechainKept := false
	for i := 0; i < n; i++ {
		if keepResidues.Contains(int(ri.AtomToResidue[i])) {
			keepAtoms.Add(i)
			if ri.IsSidechain[i] {
				sidechainKept = true
			}
		}
	}
	if !sidechainKept {
		// Sampling miss: nothing to predict in this neighborhood.
		return nil, nil
	}

	return extract(rec, keepAtoms), nil
}

// extract gathers the kept atoms into a new, densely reindexed record.
// Kept atoms retain their original relative order.
func extract(rec *model.GraphRecord, keepAtoms *bitmask.Mask) *model.GraphRecord {
	n := rec.NumAtoms()
	ri := rec.Residues

	mapping := make([]int32, n)
	for i := range mapping {
		mapping[i] = -1
	}
	kept := keepAtoms.Indices()
	for newIdx, oldIdx := range kept {
		mapping[oldIdx] = int32(newIdx)
	}

	m := len(kept)
	sub := &model.GraphRecord{
		Name:       rec.Name,
		MoleculeID: rec.MoleculeID,
		AtomType:   make([]int64, m),
		Pos:        make([]float32, 3*m),
		Residues: &model.ResidueInfo{
			AtomToResidue: make([]int32, m),
			IsSidechain:   make([]bool, m),
			IsAlphaCarbon: make([]bool, m),
			AtomToAlpha:   make([]int32, m),
		},
	}
	if rec.Aromatic != nil {
		sub.Aromatic = make([]bool, m)
	}
	if rec.Hybridization != nil {
		sub.Hybridization = make([]int8, m)
	}

	for newIdx, oldIdx := range kept {
		sub.AtomType[newIdx] = rec.AtomType[oldIdx]
		copy(sub.Pos[3*newIdx:3*newIdx+3], rec.Pos[3*oldIdx:3*oldIdx+3])
		sub.Residues.AtomToResidue[newIdx] = ri.AtomToResidue[oldIdx]
		sub.Residues.IsSidechain[newIdx] = ri.IsSidechain[oldIdx]
		sub.Residues.IsAlphaCarbon[newIdx] = ri.IsAlphaCarbon[oldIdx]
		if sub.Aromatic != nil {
			sub.Aromatic[newIdx] = rec.Aromatic[oldIdx]
		}
		if sub.Hybridization != nil {
			sub.Hybridization[newIdx] = rec.Hybridization[oldIdx]
		}
		// Alpha indices are remapped through the same old->new table;
		// an alpha carbon outside the subgraph degrades to the sentinel.
		if a := ri.AtomToAlpha[oldIdx]; a >= 0 {
			sub.Residues.AtomToAlpha[newIdx] = mapping[a]
		} else {
			sub.Residues.AtomToAlpha[newIdx] = -1
		}
	}

	// An edge survives iff both endpoints were kept.
	for i, e := range rec.EdgeIndex {
		src, dst := mapping[e.Src], mapping[e.Dst]
		if src >= 0 && dst >= 0 {
			sub.EdgeIndex = append(sub.EdgeIndex, model.Edge{Src: src, Dst: dst})
			sub.EdgeType = append(sub.EdgeType, rec.EdgeType[i])
		}
	}

	return sub
}

// Cover decomposes a whole protein into residue-complete subgraphs by
// repeatedly seeding at a random uncovered alpha carbon until every
// alpha carbon is covered. Subgraphs without sidechain atoms are
// skipped but still count toward coverage, so the walk terminates.
//
// Each returned subgraph also reports the original atom indices it was
// cut from, so per-atom results can be scattered back onto the source.
func (s *Sampler) Cover(rec *model.GraphRecord, rng *util.RNG) ([]Covered, error) {
	if !rec.HasResidues() {
		return nil, &NotProteinError{Name: rec.Name}
	}
	if rng == nil {
		return nil, ErrNilRNG
	}
	ri := rec.Residues
	n := rec.NumAtoms()

	covered := bitmask.New()
	var out []Covered
	for {
		var uncoveredAlpha []int
		for i := 0; i < n; i++ {
			if ri.IsAlphaCarbon[i] && !covered.Contains(i) {
				uncoveredAlpha = append(uncoveredAlpha, i)
			}
		}
		if len(uncoveredAlpha) == 0 {
			return out, nil
		}

		seed := uncoveredAlpha[rng.Intn(len(uncoveredAlpha))]
		sub, err := s.around(rec, seed)
		if err != nil {
			return nil, err
		}

		// Mark the seed's cutoff neighborhood as covered whether or not
		// the subgraph was usable.
		sx, sy, sz := rec.Position(seed)
		keepResidues := bitmask.New()
		for i := 0; i < n; i++ {
			x, y, z := rec.Position(i)
			dx, dy, dz := x-sx, y-sy, z-sz
			if float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz))) <= s.opts.Cutoff {
				keepResidues.Add(int(ri.AtomToResidue[i]))
			}
		}
		var atoms []int32
		for i := 0; i < n; i++ {
			if keepResidues.Contains(int(ri.AtomToResidue[i])) {
				covered.Add(i)
				atoms = append(atoms, int32(i))
			}
		}

		if sub != nil {
			out = append(out, Covered{Subgraph: sub, SourceAtoms: atoms})
		}
	}
}

// Covered is one subgraph of a covering decomposition.
type Covered struct {
	// Subgraph is the reindexed residue-complete subgraph.
	Subgraph *model.GraphRecord
	// SourceAtoms maps subgraph atom i to its index in the source record.
	SourceAtoms []int32
}
