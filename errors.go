package confgraph

import (
	"errors"
	"fmt"

	"github.com/confgraph/confgraph/builder"
	"github.com/confgraph/confgraph/sampler"
	"github.com/confgraph/confgraph/split"
)

var (
	// ErrOutOfRange is returned for an index outside [0, Len()).
	ErrOutOfRange = errors.New("index out of range")

	// ErrConfig marks configuration errors: preconditions the caller
	// violated (split counts exceeding the collection, residue ids above
	// the ceiling). These fail fast and are never silently clamped.
	ErrConfig = errors.New("configuration error")

	// ErrRejected marks structural rejections: single inputs that cannot
	// become records. Batch jobs count them and continue.
	ErrRejected = errors.New("structure rejected")
)

// translateError normalizes subpackage errors so callers can classify
// with errors.Is against the root sentinels. The original error remains
// reachable via errors.Unwrap/errors.As.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var rej *builder.RejectError
	if errors.As(err, &rej) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	var bo *builder.ResidueOverflowError
	if errors.As(err, &bo) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var so *sampler.ResidueOverflowError
	if errors.As(err, &so) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	var se *split.SizeError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return err
}
