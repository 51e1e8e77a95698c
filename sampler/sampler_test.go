package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/util"
)

// clusterRecord builds one residue per center, three atoms each:
// backbone N at the center, alpha CA at +1x, sidechain CB at +2x.
// Consecutive atoms are chained so the graph has edges.
func clusterRecord(centers [][3]float32) *model.GraphRecord {
	n := 3 * len(centers)
	rec := &model.GraphRecord{
		Name:       "prot",
		MoleculeID: "prot",
		AtomType:   make([]int64, n),
		Pos:        make([]float32, 3*n),
		Residues: &model.ResidueInfo{
			AtomToResidue: make([]int32, n),
			IsSidechain:   make([]bool, n),
			IsAlphaCarbon: make([]bool, n),
			AtomToAlpha:   make([]int32, n),
		},
	}
	for r, c := range centers {
		for k := 0; k < 3; k++ {
			i := 3*r + k
			rec.AtomType[i] = 6
			rec.Pos[3*i] = c[0] + float32(k)
			rec.Pos[3*i+1] = c[1]
			rec.Pos[3*i+2] = c[2]
			rec.Residues.AtomToResidue[i] = int32(r)
			rec.Residues.IsSidechain[i] = k == 2
			rec.Residues.IsAlphaCarbon[i] = k == 1
			rec.Residues.AtomToAlpha[i] = int32(3*r + 1)
		}
	}
	for i := 1; i < n; i++ {
		rec.EdgeIndex = append(rec.EdgeIndex, model.Edge{Src: int32(i - 1), Dst: int32(i)})
		rec.EdgeType = append(rec.EdgeType, 1)
	}
	for i := 1; i < n; i++ {
		rec.EdgeIndex = append(rec.EdgeIndex, model.Edge{Src: int32(i), Dst: int32(i - 1)})
		rec.EdgeType = append(rec.EdgeType, 1)
	}
	sortCanonical(rec)
	return rec
}

func sortCanonical(rec *model.GraphRecord) {
	n := rec.NumAtoms()
	for i := 0; i < len(rec.EdgeIndex); i++ {
		for j := i + 1; j < len(rec.EdgeIndex); j++ {
			if rec.EdgeIndex[j].Key(n) < rec.EdgeIndex[i].Key(n) {
				rec.EdgeIndex[i], rec.EdgeIndex[j] = rec.EdgeIndex[j], rec.EdgeIndex[i]
				rec.EdgeType[i], rec.EdgeType[j] = rec.EdgeType[j], rec.EdgeType[i]
			}
		}
	}
}

func TestSampleAround(t *testing.T) {
	t.Run("CutoffSelectsResidues", func(t *testing.T) {
		// Residues 0 and 1 sit near the origin, 2 and 3 a hundred units
		// away. Seeding at atom 0 must keep exactly residues 0 and 1,
		// every atom of each.
		rec := clusterRecord([][3]float32{
			{0, 0, 0}, {5, 0, 0}, {100, 0, 0}, {105, 0, 0},
		})

		sub, err := New(Options{Cutoff: 10}).around(rec, 0)
		require.NoError(t, err)
		require.NotNil(t, sub)
		require.NoError(t, sub.Validate())

		assert.Equal(t, 6, sub.NumAtoms())
		assert.Equal(t, []int32{0, 0, 0, 1, 1, 1}, sub.Residues.AtomToResidue)
		for i := 0; i < 6; i++ {
			x, y, z := sub.Position(i)
			ox, oy, oz := rec.Position(i)
			assert.Equal(t, [3]float32{ox, oy, oz}, [3]float32{x, y, z})
		}
	})

	t.Run("ResidueCompletion", func(t *testing.T) {
		// Only residue 1's backbone N is inside the cutoff; the residue
		// must still be kept whole.
		rec := clusterRecord([][3]float32{{0, 0, 0}, {9, 0, 0}})
		// Push CA and CB of residue 1 far out.
		for _, i := range []int{4, 5} {
			rec.Pos[3*i] = 80
		}

		sub, err := New(Options{Cutoff: 10}).around(rec, 0)
		require.NoError(t, err)
		require.NotNil(t, sub)

		assert.Equal(t, 6, sub.NumAtoms())
		assert.Equal(t, []int32{0, 0, 0, 1, 1, 1}, sub.Residues.AtomToResidue)
	})

	t.Run("ReindexAndEdges", func(t *testing.T) {
		rec := clusterRecord([][3]float32{
			{0, 0, 0}, {100, 0, 0}, {104, 0, 0},
		})

		// Seed inside residue 1; residues 1 and 2 are kept, residue 0 is
		// not, so old atoms 3..8 become 0..5.
		sub, err := New(Options{Cutoff: 10}).around(rec, 3)
		require.NoError(t, err)
		require.NotNil(t, sub)
		require.NoError(t, sub.Validate())

		assert.Equal(t, 6, sub.NumAtoms())
		assert.Equal(t, []int32{1, 1, 1, 2, 2, 2}, sub.Residues.AtomToResidue)
		assert.Equal(t, []int32{1, 1, 1, 4, 4, 4}, sub.Residues.AtomToAlpha)

		// The chain edge between old atoms 2 and 3 crossed the boundary
		// and must be gone; the surviving chain is atoms 0..5.
		want := []model.Edge{
			{Src: 0, Dst: 1}, {Src: 1, Dst: 0}, {Src: 1, Dst: 2}, {Src: 2, Dst: 1}, {Src: 2, Dst: 3}, {Src: 3, Dst: 2}, {Src: 3, Dst: 4}, {Src: 4, Dst: 3}, {Src: 4, Dst: 5}, {Src: 5, Dst: 4},
		}
		assert.Equal(t, want, sub.EdgeIndex)
	})

	t.Run("SamplingMiss", func(t *testing.T) {
		rec := clusterRecord([][3]float32{{0, 0, 0}, {100, 0, 0}})
		// Strip residue 0 of its sidechain flag so the neighborhood has
		// nothing to predict.
		rec.Residues.IsSidechain[2] = false

		sub, err := New(Options{Cutoff: 10}).around(rec, 0)
		require.NoError(t, err)
		assert.Nil(t, sub)
	})
}

func TestSample(t *testing.T) {
	rec := clusterRecord([][3]float32{
		{0, 0, 0}, {5, 0, 0}, {100, 0, 0}, {105, 0, 0},
	})

	t.Run("FixSeedDeterministic", func(t *testing.T) {
		s := New(Options{Cutoff: 10, FixSeed: true})

		sub1, err := s.Sample(rec, nil)
		require.NoError(t, err)
		require.NotNil(t, sub1)
		sub2, err := s.Sample(rec, nil)
		require.NoError(t, err)

		assert.Equal(t, sub1, sub2)
	})

	t.Run("SeededRNGDeterministic", func(t *testing.T) {
		s := New(DefaultOptions())

		sub1, err := s.Sample(rec, util.NewRNG(7))
		require.NoError(t, err)
		sub2, err := s.Sample(rec, util.NewRNG(7))
		require.NoError(t, err)

		assert.Equal(t, sub1, sub2)
	})

	t.Run("NilRNG", func(t *testing.T) {
		_, err := New(DefaultOptions()).Sample(rec, nil)
		require.ErrorIs(t, err, ErrNilRNG)
	})

	t.Run("NotProtein", func(t *testing.T) {
		plain := &model.GraphRecord{
			Name:     "mol",
			AtomType: []int64{6, 6},
			Pos:      []float32{0, 0, 0, 1, 0, 0},
		}

		_, err := New(DefaultOptions()).Sample(plain, util.NewRNG(1))
		var notProtein *NotProteinError
		require.ErrorAs(t, err, &notProtein)
	})

	t.Run("ResidueOverflow", func(t *testing.T) {
		_, err := New(Options{Cutoff: 10, MaxResidue: 2, FixSeed: true}).Sample(rec, nil)

		var overflow *ResidueOverflowError
		require.ErrorAs(t, err, &overflow)
		assert.Equal(t, 2, overflow.MaxResidue)
	})

	t.Run("SourceNotMutated", func(t *testing.T) {
		before := rec.Clone()
		sub, err := New(Options{Cutoff: 10, FixSeed: true}).Sample(rec, nil)
		require.NoError(t, err)

		sub.Pos[0] = 999
		sub.Residues.IsSidechain[0] = !sub.Residues.IsSidechain[0]
		assert.Equal(t, before, rec)
	})
}

func TestCover(t *testing.T) {
	rec := clusterRecord([][3]float32{
		{0, 0, 0}, {5, 0, 0}, {200, 0, 0}, {205, 0, 0},
	})
	s := New(Options{Cutoff: 10})

	covered, err := s.Cover(rec, util.NewRNG(3))
	require.NoError(t, err)
	require.Len(t, covered, 2)

	// Every atom of the source must appear in exactly one subgraph, and
	// source indices must line up with subgraph atoms.
	seen := make(map[int32]bool)
	for _, c := range covered {
		require.NoError(t, c.Subgraph.Validate())
		require.Len(t, c.SourceAtoms, c.Subgraph.NumAtoms())
		for i, src := range c.SourceAtoms {
			assert.False(t, seen[src])
			seen[src] = true
			assert.Equal(t, rec.AtomType[src], c.Subgraph.AtomType[i])
		}
	}
	assert.Len(t, seen, rec.NumAtoms())
}
