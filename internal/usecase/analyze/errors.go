// Package analyze measures the readability of plain text, pasted HTML and
// web pages, one document at a time or in batches.
package analyze

import (
	"errors"
	"fmt"

	"healthinfo-simplifier/internal/domain/entity"
)

var (
	// ErrAmbiguousInput is returned when more than one of text, html and
	// url is set.
	ErrAmbiguousInput = fmt.Errorf("%w: provide only one of text, html or url", entity.ErrInvalidInput)

	// ErrURLDisabled is returned for URL input when no page fetcher is configured.
	ErrURLDisabled = errors.New("url analysis is disabled")

	// ErrFetchFailed wraps failures to retrieve or extract a web page.
	ErrFetchFailed = errors.New("page could not be fetched")

	// ErrEmptyBatch is returned by AnalyzeBatch for an empty document list.
	ErrEmptyBatch = fmt.Errorf("%w: batch must contain at least one document", entity.ErrInvalidInput)

	// ErrBatchTooLarge is returned when a batch exceeds Config.MaxBatchSize.
	ErrBatchTooLarge = fmt.Errorf("%w: too many documents in batch", entity.ErrInvalidInput)
)
