package builder

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/confgraph/confgraph/model"
	"github.com/confgraph/confgraph/resource"
)

// Parser is the structure-parsing collaborator. Implementations read a
// structure file and compute coordinates; the builder treats the result
// as opaque.
//
// A failure to parse must be reported as a *ParseFailure so batch jobs
// can count it without aborting.
type Parser interface {
	Parse(path string) (*model.RawStructure, error)
}

// Stats aggregates the outcome of a batch build.
type Stats struct {
	Accepted      int
	Rejected      int
	ParseFailures int
	// RejectsByKind breaks Rejected down by rejection reason.
	RejectsByKind map[RejectKind]int
}

func (s *Stats) add(other Stats) {
	s.Accepted += other.Accepted
	s.Rejected += other.Rejected
	s.ParseFailures += other.ParseFailures
	for k, v := range other.RejectsByKind {
		if s.RejectsByKind == nil {
			s.RejectsByKind = make(map[RejectKind]int)
		}
		s.RejectsByKind[k] += v
	}
}

// BuildAll parses and builds every path, skipping and counting rejected
// structures and parse failures. The slice of accepted records preserves
// the order of paths.
//
// Configuration errors (*ResidueOverflowError) and context cancellation
// abort the whole batch. ctrl bounds the number of concurrent builds; a
// nil ctrl builds sequentially.
func (b *Builder) BuildAll(ctx context.Context, parser Parser, paths []string, ctrl *resource.Controller, logger *slog.Logger) ([]*model.GraphRecord, Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]*model.GraphRecord, len(paths))

	var mu sync.Mutex
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	// MaxWorkers is 1 for a nil controller, so an unconfigured batch
	// runs sequentially rather than spawning one goroutine per path.
	g.SetLimit(ctrl.MaxWorkers())
	for i, path := range paths {
		if err := ctrl.AcquireWorker(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer ctrl.ReleaseWorker()

			rec, err := b.buildOne(parser, path)

			var local Stats
			switch {
			case err == nil:
				results[i] = rec
				local.Accepted = 1
			default:
				var pf *ParseFailure
				var rej *RejectError
				switch {
				case errors.As(err, &pf):
					local.ParseFailures = 1
					logger.DebugContext(gctx, "parse failed", "path", path, "error", err)
				case errors.As(err, &rej):
					local.Rejected = 1
					local.RejectsByKind = map[RejectKind]int{rej.Kind: 1}
					logger.DebugContext(gctx, "structure rejected", "path", path, "kind", rej.Kind.String())
				default:
					// Configuration errors stop the batch.
					return err
				}
			}

			mu.Lock()
			stats.add(local)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	records := make([]*model.GraphRecord, 0, stats.Accepted)
	for _, rec := range results {
		if rec != nil {
			records = append(records, rec)
		}
	}

	logger.InfoContext(ctx, "batch build completed",
		"accepted", stats.Accepted,
		"rejected", stats.Rejected,
		"parse_failures", stats.ParseFailures,
	)

	return records, stats, nil
}

func (b *Builder) buildOne(parser Parser, path string) (*model.GraphRecord, error) {
	s, err := parser.Parse(path)
	if err != nil {
		var pf *ParseFailure
		if errors.As(err, &pf) {
			return nil, err
		}
		return nil, &ParseFailure{Path: path, Cause: err}
	}
	return b.Build(s, "")
}
