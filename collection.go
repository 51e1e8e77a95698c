package confgraph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/sampler"
	"github.com/confgraph/confgraph/util"
)

// Collection is an indexable view over a flat record store.
//
// The collection owns its records for its lifetime; Get hands out deep
// copies, so callers may mutate results freely and concurrent Gets are
// safe without locks.
type Collection struct {
	records   []*model.GraphRecord
	transform Transform
}

// NewCollection creates a Collection over records.
func NewCollection(records []*model.GraphRecord, optFns ...Option) *Collection {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	return &Collection{
		records:   records,
		transform: o.transform,
	}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.records)
}

// Get returns a private copy of record i, with the transform (if any)
// applied to the copy. A (nil, nil) return from the transform is passed
// through and means "no usable sample".
func (c *Collection) Get(i int) (*model.GraphRecord, error) {
	if i < 0 || i >= len(c.records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(c.records))
	}
	rec := c.records[i].Clone()
	if c.transform != nil {
		return c.transform(rec)
	}
	return rec, nil
}

// AtomTypes returns the sorted distinct atom-type codes of the store.
func (c *Collection) AtomTypes() []int64 {
	return distinct(c.records, func(r *model.GraphRecord) []int64 { return r.AtomType })
}

// EdgeTypes returns the sorted distinct bond-category codes of the store.
func (c *Collection) EdgeTypes() []int64 {
	return distinct(c.records, func(r *model.GraphRecord) []int64 { return r.EdgeType })
}

func distinct(records []*model.GraphRecord, field func(*model.GraphRecord) []int64) []int64 {
	seen := make(map[int64]struct{})
	for _, r := range records {
		for _, v := range field(r) {
			seen[v] = struct{}{}
		}
	}
	out := make([]int64, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Collate drops nil entries from a batch. Sampling misses and filtering
// transforms legitimately produce nil records; a batch that collates to
// zero records is a valid, if degenerate, outcome.
func Collate(batch []*model.GraphRecord) []*model.GraphRecord {
	out := make([]*model.GraphRecord, 0, len(batch))
	for _, rec := range batch {
		if rec != nil {
			out = append(out, rec)
		}
	}
	return out
}

// SidechainCollection serves bounded, residue-complete subgraphs of
// large protein records: every Get samples a fresh subgraph around a
// backbone seed atom instead of returning the full graph.
type SidechainCollection struct {
	records   []*model.GraphRecord
	sampler   *sampler.Sampler
	transform Transform
	logger    *Logger

	mu  sync.Mutex
	rng *util.RNG
}

// NewSidechainCollection creates a sampling collection over protein
// records. Every record must carry residue annotation.
func NewSidechainCollection(records []*model.GraphRecord, optFns ...Option) (*SidechainCollection, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	for _, rec := range records {
		if !rec.HasResidues() {
			return nil, fmt.Errorf("confgraph: record %q has no residue annotation", rec.Name)
		}
	}
	return &SidechainCollection{
		records:   records,
		sampler:   sampler.New(o.samplerOpts),
		transform: o.transform,
		logger:    o.logger,
		rng:       util.NewRNG(o.seed),
	}, nil
}

// Len returns the number of source records.
func (c *SidechainCollection) Len() int {
	return len(c.records)
}

// Seed returns the seed driving seed-atom selection.
func (c *SidechainCollection) Seed() int64 {
	return c.rng.Seed()
}

// Get samples one subgraph from record i. A (nil, nil) return means the
// sampled neighborhood had no sidechain atoms; callers skip it at
// collation. The source record is never mutated, so repeated Gets stay
// independent.
func (c *SidechainCollection) Get(i int) (*model.GraphRecord, error) {
	if i < 0 || i >= len(c.records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(c.records))
	}
	src := c.records[i]

	c.mu.Lock()
	sub, err := c.sampler.Sample(src, c.rng)
	c.mu.Unlock()
	if err != nil {
		return nil, translateError(err)
	}
	kept := 0
	if sub != nil {
		kept = sub.NumAtoms()
	}
	c.logger.LogSample(context.Background(), src.Name, c.rng.Seed(), kept, sub == nil)
	if sub == nil {
		return nil, nil
	}
	if c.transform != nil {
		return c.transform(sub)
	}
	return sub, nil
}

// PackedCollection is an indexable view over packed multi-conformer
// records.
type PackedCollection struct {
	records   []*model.PackedGraphRecord
	transform PackedTransform
}

// PackedTransform rewrites a packed record before it is handed out.
type PackedTransform func(*model.PackedGraphRecord) (*model.PackedGraphRecord, error)

// NewPackedCollection creates a PackedCollection over packed records.
func NewPackedCollection(records []*model.PackedGraphRecord, transform PackedTransform) *PackedCollection {
	return &PackedCollection{records: records, transform: transform}
}

// Len returns the number of packed records.
func (c *PackedCollection) Len() int {
	return len(c.records)
}

// Get returns a private copy of packed record i, transformed if a
// transform is set.
func (c *PackedCollection) Get(i int) (*model.PackedGraphRecord, error) {
	if i < 0 || i >= len(c.records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(c.records))
	}
	rec := c.records[i].Clone()
	if c.transform != nil {
		return c.transform(rec)
	}
	return rec, nil
}
