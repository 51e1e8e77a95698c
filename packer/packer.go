// Package packer groups conformer records that share a molecular
// identity into packed records with one topology and stacked positions.
//
// Packing is a one-time batch transform performed at load time, not a
// per-access operation.
package packer

import (
	"fmt"
	"slices"
	"sort"

	"github.com/confgraph/confgraph/model"
)

// Pack groups records by MoleculeID, preserving first-seen group order
// and insertion order within each group.
//
// The first record of a group donates the shared topology; members are
// assumed, not re-verified, to share it. Per-conformer energetics are
// dropped since they are not well-defined for a packed record. A group
// of size 1 produces a valid packed record with NumConformers == 1.
func Pack(records []*model.GraphRecord) ([]*model.PackedGraphRecord, error) {
	groups := make(map[string][]*model.GraphRecord)
	var order []string
	for _, rec := range records {
		id := rec.MoleculeID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], rec)
	}

	packed := make([]*model.PackedGraphRecord, 0, len(order))
	for _, id := range order {
		members := groups[id]
		rep := members[0]
		n := rep.NumAtoms()

		p := &model.PackedGraphRecord{
			Name:          rep.Name,
			MoleculeID:    id,
			AtomType:      slices.Clone(rep.AtomType),
			EdgeIndex:     slices.Clone(rep.EdgeIndex),
			EdgeType:      slices.Clone(rep.EdgeType),
			Aromatic:      slices.Clone(rep.Aromatic),
			Hybridization: slices.Clone(rep.Hybridization),
			Residues:      rep.Residues.Clone(),
			PosRef:        make([]float32, 0, 3*n*len(members)),
			NumConformers: len(members),
		}
		for _, m := range members {
			if m.NumAtoms() != n {
				return nil, &TopologyMismatchError{
					MoleculeID: id,
					Want:       n,
					Got:        m.NumAtoms(),
				}
			}
			p.PosRef = append(p.PosRef, m.Pos...)
		}
		packed = append(packed, p)
	}

	return packed, nil
}

// SelectByWeight caps each molecule's conformer count at maxConf,
// keeping the highest-Boltzmann-weight conformers. Molecules with at
// most maxConf conformers keep all of them in input order. Records
// without a weight rank below any weighted record.
func SelectByWeight(records []*model.GraphRecord, maxConf int) []*model.GraphRecord {
	if maxConf <= 0 {
		return records
	}

	groups := make(map[string][]*model.GraphRecord)
	var order []string
	for _, rec := range records {
		id := rec.MoleculeID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], rec)
	}

	var out []*model.GraphRecord
	for _, id := range order {
		members := groups[id]
		if len(members) > maxConf {
			sort.SliceStable(members, func(i, j int) bool {
				return weightOf(members[i]) > weightOf(members[j])
			})
			members = members[:maxConf]
		}
		out = append(out, members...)
	}
	return out
}

func weightOf(rec *model.GraphRecord) float32 {
	if rec.BoltzmannWeight == nil {
		return -1
	}
	return *rec.BoltzmannWeight
}

// TopologyMismatchError indicates group members with differing atom
// counts, which cannot share one packed topology.
type TopologyMismatchError struct {
	MoleculeID string
	Want, Got  int
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("packer: molecule %q conformers disagree on atom count: %d vs %d",
		e.MoleculeID, e.Want, e.Got)
}
