package confgraph_test

import (
	"context"
	"fmt"
	"log"

	"github.com/confgraph/confgraph"
	"github.com/confgraph/confgraph/blobstore"
	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/persistence"
	"github.com/confgraph/confgraph/sampler"
)

// twoClusterProtein builds two residues a hundred units apart, each with
// backbone N and CA plus one sidechain atom.
func twoClusterProtein() *model.GraphRecord {
	rec := &model.GraphRecord{
		Name:       "example",
		MoleculeID: "example",
		Residues:   &model.ResidueInfo{},
	}
	ri := rec.Residues
	for r, base := range []float32{0, 100} {
		alpha := int32(len(rec.AtomType) + 1)
		for k := 0; k < 3; k++ {
			rec.AtomType = append(rec.AtomType, 6)
			rec.Pos = append(rec.Pos, base+float32(k), 0, 0)
			ri.AtomToResidue = append(ri.AtomToResidue, int32(r))
			ri.IsSidechain = append(ri.IsSidechain, k == 2)
			ri.IsAlphaCarbon = append(ri.IsAlphaCarbon, k == 1)
			ri.AtomToAlpha = append(ri.AtomToAlpha, alpha)
		}
	}
	for i := 1; i < rec.NumAtoms(); i++ {
		rec.EdgeIndex = append(rec.EdgeIndex,
			model.Edge{Src: int32(i - 1), Dst: int32(i)},
			model.Edge{Src: int32(i), Dst: int32(i - 1)})
		rec.EdgeType = append(rec.EdgeType, 1, 1)
	}
	return rec
}

// Example_sidechainSampling demonstrates serving a large protein as
// residue-complete subgraphs.
func Example_sidechainSampling() {
	col, err := confgraph.NewSidechainCollection(
		[]*model.GraphRecord{twoClusterProtein()},
		confgraph.WithSamplerOptions(sampler.Options{Cutoff: 10, FixSeed: true}),
	)
	if err != nil {
		log.Fatal(err)
	}

	sub, err := col.Get(0)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("subgraph atoms: %d\n", sub.NumAtoms())
	// Output: subgraph atoms: 3
}

// Example_split demonstrates a deterministic train/valid/test split.
func Example_split() {
	sp, err := confgraph.SplitIndices(context.Background(), 10, 6, 2, 42,
		confgraph.WithLogger(confgraph.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("train=%d valid=%d test=%d\n", len(sp.Train), len(sp.Valid), len(sp.Test))
	// Output: train=6 valid=2 test=2
}

// Example_snapshot demonstrates persisting a record store and loading it
// back.
func Example_snapshot() {
	ctx := context.Background()
	bs := blobstore.NewMemoryStore()

	st := &persistence.Store{
		Records: []*model.GraphRecord{twoClusterProtein()},
	}
	if err := confgraph.SaveStore(ctx, bs, "snapshots/example.cgr", st,
		confgraph.WithLogger(confgraph.NoopLogger()),
	); err != nil {
		log.Fatal(err)
	}

	got, err := confgraph.LoadStore(ctx, bs, "snapshots/example.cgr",
		confgraph.WithLogger(confgraph.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("records: %d\n", len(got.Records))
	// Output: records: 1
}
