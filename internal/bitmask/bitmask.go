// Package bitmask provides dense index masks backed by Roaring Bitmaps.
//
// The sampler works with per-atom and per-residue boolean masks over
// graphs that can reach tens of thousands of atoms. Roaring keeps the
// masks compact and makes the keep/near set operations cheap.
package bitmask

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Mask is a set of non-negative indices.
type Mask struct {
	rb *roaring.Bitmap
}

// New creates an empty mask.
func New() *Mask {
	return &Mask{rb: roaring.New()}
}

// Add inserts index i.
func (m *Mask) Add(i int) {
	m.rb.Add(uint32(i))
}

// Contains reports whether i is in the mask.
func (m *Mask) Contains(i int) bool {
	return m.rb.Contains(uint32(i))
}

// Count returns the number of set indices.
func (m *Mask) Count() int {
	return int(m.rb.GetCardinality())
}

// IsEmpty reports whether no index is set.
func (m *Mask) IsEmpty() bool {
	return m.rb.IsEmpty()
}

// Or merges other into m.
func (m *Mask) Or(other *Mask) {
	m.rb.Or(other.rb)
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	return &Mask{rb: m.rb.Clone()}
}

// Indices returns the set indices in ascending order.
func (m *Mask) Indices() []int {
	out := make([]int, 0, m.Count())
	it := m.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// All iterates the set indices in ascending order.
func (m *Mask) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}
