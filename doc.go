// Package confgraph prepares molecular and protein 3D structures as
// graph records for geometric machine-learning models.
//
// The pipeline: parsed structures become canonical graph records
// (builder), very large protein graphs are served as spatially-local,
// residue-complete subgraphs (sampler), multi-conformer small-molecule
// sets are packed into one record per molecule (packer), and a seeded
// splitter partitions the store into train/validation/test indices
// (split). This package ties those pieces together behind indexable
// collections and a persisted snapshot format.
//
//	records, stats, err := builder.New().BuildAll(ctx, parser, paths, nil, nil)
//	...
//	col, err := confgraph.NewSidechainCollection(records,
//	    confgraph.WithSeed(42),
//	    confgraph.WithSamplerOptions(sampler.Options{Cutoff: 10}),
//	)
//	rec, err := col.Get(0) // nil record means "skip this sample"
//
// Collections hand out private copies: a Get result can be mutated
// freely without affecting the store, and concurrent Gets need no
// locking by the caller.
package confgraph
