package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProtein() *GraphRecord {
	// Two residues, three atoms each: CA + sidechain + backbone N.
	return &GraphRecord{
		Name:     "prot",
		AtomType: []int64{6, 6, 7, 6, 6, 7},
		Pos: []float32{
			0, 0, 0, 1, 0, 0, 2, 0, 0,
			10, 0, 0, 11, 0, 0, 12, 0, 0,
		},
		EdgeIndex: []Edge{{0, 1}, {1, 0}, {1, 2}, {2, 1}},
		EdgeType:  []int64{1, 1, 1, 1},
		Residues: &ResidueInfo{
			AtomToResidue: []int32{0, 0, 0, 1, 1, 1},
			IsSidechain:   []bool{false, true, false, false, true, false},
			IsAlphaCarbon: []bool{true, false, false, true, false, false},
			AtomToAlpha:   []int32{0, 0, 0, 3, 3, 3},
		},
	}
}

func TestGraphRecordValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		require.NoError(t, validProtein().Validate())
	})

	t.Run("PositionLengthMismatch", func(t *testing.T) {
		rec := validProtein()
		rec.Pos = rec.Pos[:len(rec.Pos)-3]
		require.ErrorIs(t, rec.Validate(), ErrInvalidRecord)
	})

	t.Run("EdgeOutOfRange", func(t *testing.T) {
		rec := validProtein()
		rec.EdgeIndex[0] = Edge{Src: 0, Dst: 99}
		require.ErrorIs(t, rec.Validate(), ErrInvalidRecord)
	})

	t.Run("EdgeOrderViolation", func(t *testing.T) {
		rec := validProtein()
		rec.EdgeIndex = []Edge{{1, 0}, {0, 1}}
		rec.EdgeType = []int64{1, 1}
		require.ErrorIs(t, rec.Validate(), ErrInvalidRecord)
	})

	t.Run("SparseResidueIds", func(t *testing.T) {
		// Subgraphs keep their source residue ids, so gaps (and a
		// missing residue 0) are valid.
		rec := validProtein()
		for i := range rec.Residues.AtomToResidue {
			rec.Residues.AtomToResidue[i] += 3
		}
		require.NoError(t, rec.Validate())
	})

	t.Run("NegativeResidueID", func(t *testing.T) {
		rec := validProtein()
		rec.Residues.AtomToResidue[0] = -1
		require.ErrorIs(t, rec.Validate(), ErrInvalidRecord)
	})
}

func TestGraphRecordClone(t *testing.T) {
	rec := validProtein()
	w := float32(0.25)
	rec.BoltzmannWeight = &w

	clone := rec.Clone()
	require.NoError(t, clone.Validate())
	assert.Equal(t, rec, clone)

	clone.Pos[0] = 42
	clone.AtomType[0] = 42
	clone.Residues.IsSidechain[0] = true
	*clone.BoltzmannWeight = 1

	assert.Equal(t, float32(0), rec.Pos[0])
	assert.Equal(t, int64(6), rec.AtomType[0])
	assert.False(t, rec.Residues.IsSidechain[0])
	assert.Equal(t, float32(0.25), *rec.BoltzmannWeight)
}

func TestPackedGraphRecord(t *testing.T) {
	t.Run("ConformerPos", func(t *testing.T) {
		p := &PackedGraphRecord{
			AtomType:      []int64{1, 6},
			EdgeIndex:     []Edge{{0, 1}, {1, 0}},
			EdgeType:      []int64{1, 1},
			PosRef:        []float32{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3},
			NumConformers: 2,
		}
		require.NoError(t, p.Validate())
		assert.Equal(t, []float32{0, 0, 0, 1, 1, 1}, p.ConformerPos(0))
		assert.Equal(t, []float32{2, 2, 2, 3, 3, 3}, p.ConformerPos(1))
	})

	t.Run("PosRefLengthMismatch", func(t *testing.T) {
		p := &PackedGraphRecord{
			AtomType:      []int64{1, 6},
			PosRef:        []float32{0, 0, 0},
			NumConformers: 2,
		}
		require.ErrorIs(t, p.Validate(), ErrInvalidRecord)
	})
}

func TestResidueInfoNumResidues(t *testing.T) {
	ri := &ResidueInfo{AtomToResidue: []int32{0, 0, 1, 2, 2}}
	assert.Equal(t, 3, ri.NumResidues())
	assert.Equal(t, 0, (*ResidueInfo)(nil).NumResidues())
}
