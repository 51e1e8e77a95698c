package packer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confgraph/confgraph/model"
)

func conformer(id string, numAtoms int, offset float32) *model.GraphRecord {
	rec := &model.GraphRecord{
		Name:       id,
		MoleculeID: id,
		AtomType:   make([]int64, numAtoms),
		Pos:        make([]float32, 3*numAtoms),
		EdgeIndex:  []model.Edge{{Src: 0, Dst: 1}, {Src: 1, Dst: 0}},
		EdgeType:   []int64{1, 1},
	}
	for i := range rec.AtomType {
		rec.AtomType[i] = 6
	}
	for i := range rec.Pos {
		rec.Pos[i] = offset + float32(i)
	}
	return rec
}

func weighted(id string, w float32) *model.GraphRecord {
	rec := conformer(id, 2, w)
	rec.BoltzmannWeight = &w
	return rec
}

func TestPack(t *testing.T) {
	t.Run("GroupsByMolecule", func(t *testing.T) {
		records := []*model.GraphRecord{
			conformer("m1", 5, 0),
			conformer("m2", 3, 100),
			conformer("m1", 5, 1000),
			conformer("m1", 5, 2000),
		}

		packed, err := Pack(records)
		require.NoError(t, err)
		require.Len(t, packed, 2)

		// First-seen order: m1 then m2.
		m1 := packed[0]
		assert.Equal(t, "m1", m1.MoleculeID)
		assert.Equal(t, 3, m1.NumConformers)
		require.NoError(t, m1.Validate())
		require.Len(t, m1.PosRef, 45)

		// Conformer positions stack in input order.
		assert.Equal(t, records[0].Pos, m1.ConformerPos(0))
		assert.Equal(t, records[2].Pos, m1.ConformerPos(1))
		assert.Equal(t, records[3].Pos, m1.ConformerPos(2))

		assert.Equal(t, "m2", packed[1].MoleculeID)
		assert.Equal(t, 1, packed[1].NumConformers)
	})

	t.Run("SingletonKeepsPositions", func(t *testing.T) {
		rec := conformer("solo", 4, 7)

		packed, err := Pack([]*model.GraphRecord{rec})
		require.NoError(t, err)
		require.Len(t, packed, 1)
		assert.Equal(t, rec.Pos, packed[0].PosRef)
		assert.Equal(t, 1, packed[0].NumConformers)
	})

	t.Run("DropsEnergetics", func(t *testing.T) {
		rec := conformer("m", 2, 0)
		e, w := float32(-3.5), float32(0.8)
		rec.Energy, rec.BoltzmannWeight = &e, &w

		packed, err := Pack([]*model.GraphRecord{rec, conformer("m", 2, 6)})
		require.NoError(t, err)
		// PackedGraphRecord carries no per-conformer energetics at all;
		// the topology comes from the first record untouched.
		assert.Equal(t, rec.AtomType, packed[0].AtomType)
		assert.Equal(t, rec.EdgeIndex, packed[0].EdgeIndex)
	})

	t.Run("TopologyIsolatedFromSource", func(t *testing.T) {
		rec := conformer("m", 2, 0)
		packed, err := Pack([]*model.GraphRecord{rec})
		require.NoError(t, err)

		packed[0].AtomType[0] = 99
		packed[0].EdgeIndex[0] = model.Edge{Src: 1, Dst: 1}
		assert.Equal(t, int64(6), rec.AtomType[0])
		assert.Equal(t, model.Edge{Src: 0, Dst: 1}, rec.EdgeIndex[0])
	})

	t.Run("TopologyMismatch", func(t *testing.T) {
		_, err := Pack([]*model.GraphRecord{
			conformer("m", 5, 0),
			conformer("m", 4, 0),
		})

		var mismatch *TopologyMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 5, mismatch.Want)
		assert.Equal(t, 4, mismatch.Got)
	})

	t.Run("Empty", func(t *testing.T) {
		packed, err := Pack(nil)
		require.NoError(t, err)
		assert.Empty(t, packed)
	})
}

func TestSelectByWeight(t *testing.T) {
	t.Run("CapsPerMolecule", func(t *testing.T) {
		records := []*model.GraphRecord{
			weighted("m1", 0.1),
			weighted("m1", 0.7),
			weighted("m1", 0.3),
			weighted("m2", 0.5),
		}

		out := SelectByWeight(records, 2)
		require.Len(t, out, 3)
		assert.Equal(t, float32(0.7), *out[0].BoltzmannWeight)
		assert.Equal(t, float32(0.3), *out[1].BoltzmannWeight)
		assert.Equal(t, "m2", out[2].MoleculeID)
	})

	t.Run("UnderCapKeepsInputOrder", func(t *testing.T) {
		records := []*model.GraphRecord{
			weighted("m", 0.1),
			weighted("m", 0.9),
		}

		out := SelectByWeight(records, 5)
		require.Len(t, out, 2)
		assert.Equal(t, float32(0.1), *out[0].BoltzmannWeight)
	})

	t.Run("UnweightedRankLast", func(t *testing.T) {
		records := []*model.GraphRecord{
			conformer("m", 2, 0),
			weighted("m", 0.2),
			conformer("m", 2, 5),
		}

		out := SelectByWeight(records, 1)
		require.Len(t, out, 1)
		require.NotNil(t, out[0].BoltzmannWeight)
		assert.Equal(t, float32(0.2), *out[0].BoltzmannWeight)
	})

	t.Run("NoCap", func(t *testing.T) {
		records := []*model.GraphRecord{weighted("m", 0.1)}
		assert.Equal(t, records, SelectByWeight(records, 0))
	})
}
