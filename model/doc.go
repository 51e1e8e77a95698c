// Package model defines core types used throughout Confgraph.
//
// # Graph Types
//
//   - GraphRecord: One molecular or protein structure as a canonical graph
//     (atom types, positions, symmetric directed edge list, bond types)
//   - ResidueInfo: Protein-only residue annotation carried by a GraphRecord
//   - PackedGraphRecord: One 2D topology with stacked conformer positions
//
// # Input Types
//
//   - RawStructure: Parser output consumed by the builder. Atoms, a bond
//     table and optional per-atom residue annotations. Chemistry semantics
//     (valence, aromaticity) are treated as opaque input.
//
// Residue annotation is a capability, not a set of loose optional fields:
// a record either carries a complete *ResidueInfo or none at all. Callers
// switch on HasResidues instead of probing individual slices.
package model
