// Package split produces deterministic, seeded partitions of a record
// collection into disjoint train/validation/test index sets.
package split

import (
	"fmt"

	"github.com/confgraph/confgraph/util"
)

// Split holds disjoint index sets covering [0, size) exactly once.
type Split struct {
	Train []int
	Valid []int
	Test  []int
}

// SizeError indicates split counts exceeding the collection size.
// This is a configuration error and fails fast, never truncated.
type SizeError struct {
	Size, TrainCount, ValidCount int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("split: train %d + valid %d exceeds size %d",
		e.TrainCount, e.ValidCount, e.Size)
}

// New partitions [0, size) into train/valid/test by a seeded
// pseudo-random permutation: the first trainCount permuted indices form
// the train set, the next validCount the validation set, and the
// remainder the test set.
//
// The same seed and size always yield the same three sets, which is the
// reproducibility contract benchmark comparisons rely on.
func New(size, trainCount, validCount int, seed int64) (Split, error) {
	if size < 0 || trainCount < 0 || validCount < 0 {
		return Split{}, fmt.Errorf("split: negative argument (size %d, train %d, valid %d)", size, trainCount, validCount)
	}
	if trainCount+validCount > size {
		return Split{}, &SizeError{Size: size, TrainCount: trainCount, ValidCount: validCount}
	}

	perm := util.NewRNG(seed).Perm(size)
	return Split{
		Train: perm[:trainCount],
		Valid: perm[trainCount : trainCount+validCount],
		Test:  perm[trainCount+validCount:],
	}, nil
}

// Halves returns the first and second half of a fixed seeded
// permutation of [0, size). Used to train on disjoint halves of one
// dataset.
func Halves(size int, seed int64) (first, second []int) {
	perm := util.NewRNG(seed).Perm(size)
	return perm[:size/2], perm[size/2:]
}
