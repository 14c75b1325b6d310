package gap

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of taxa graded per worker task when
// the analysis runs in parallel.
const DefaultBatchSize = 1000

// span is a half-open range of taxa positions handled by one worker
// task.
type span struct {
	start, end int
}

// AnalyzeAll grades every taxon against idx and returns the results
// in the order of taxa. The work is split into spans of batchSize
// taxa processed by jobs concurrent workers. Inputs smaller than one
// batch, or jobs of one, are graded serially. Non-positive jobs or
// batchSize fall back to runtime.NumCPU and DefaultBatchSize. An
// error from any worker or a canceled context aborts the whole run.
func AnalyzeAll(
	ctx context.Context,
	taxa []Taxon,
	idx *RecordIndex,
	jobs, batchSize int,
) ([]Result, error) {
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	res := make([]Result, len(taxa))

	if jobs == 1 || len(taxa) < batchSize {
		for i, t := range taxa {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res[i] = Analyze(t, idx)
		}
		return res, nil
	}

	chIn := make(chan span)
	g, ctx := errgroup.WithContext(ctx)

	// Workers write to disjoint regions of res, so the input order is
	// preserved without a collector.
	for range jobs {
		g.Go(func() error {
			for sp := range chIn {
				select {
				case <-ctx.Done():
					// Drain the channel on cancellation.
					for range chIn {
					}
					return ctx.Err()
				default:
				}
				for i := sp.start; i < sp.end; i++ {
					res[i] = Analyze(taxa[i], idx)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for start := 0; start < len(taxa); start += batchSize {
			sp := span{start: start, end: min(start+batchSize, len(taxa))}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- sp:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
