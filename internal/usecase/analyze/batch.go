package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Document is a batch entry. ID is echoed back and may be empty.
type Document struct {
	ID string
	Input
}

// BatchItem is the outcome for the document at the same index. Exactly one
// of Result and Err is set.
type BatchItem struct {
	ID     string
	Result *Result
	Err    error
}

// AnalyzeBatch analyzes docs concurrently and returns one item per
// document, in input order. A failing document does not stop the others;
// only cancellation of ctx aborts the batch.
func (s *Service) AnalyzeBatch(ctx context.Context, docs []Document) ([]BatchItem, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(docs) > s.config.MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrBatchTooLarge, len(docs), s.config.MaxBatchSize)
	}

	start := time.Now()
	items := make([]BatchItem, len(docs))
	var failed int64

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.config.BatchParallelism)

	for i, doc := range docs {
		eg.Go(func() error {
			items[i].ID = doc.ID
			res, err := s.Analyze(egCtx, doc.Input)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				atomic.AddInt64(&failed, 1)
				items[i].Err = err
				return nil
			}
			items[i].Result = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}

	slog.InfoContext(ctx, "batch analyzed",
		slog.Int("documents", len(docs)),
		slog.Int64("failed", failed),
		slog.Duration("duration", time.Since(start)))

	return items, nil
}
