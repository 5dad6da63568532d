// Package simplify rewrites health text with a configured LLM provider and
// reports how the rewrite changed its readability. Completed rewrites are
// kept in a bounded history.
package simplify

import (
	"errors"
	"fmt"

	"healthinfo-simplifier/internal/domain/entity"
)

var (
	// ErrEmptyText is returned when there is nothing to rewrite.
	ErrEmptyText = fmt.Errorf("%w: please enter some text first", entity.ErrInvalidInput)

	// ErrUnknownPreset is returned for a preset name that is not configured.
	ErrUnknownPreset = fmt.Errorf("%w: unknown preset", entity.ErrInvalidInput)

	// ErrLanguageRequired is returned when a translate preset has no
	// translation target.
	ErrLanguageRequired = fmt.Errorf("%w: a target language is required for translation", entity.ErrInvalidInput)

	// ErrRewriteFailed wraps provider failures.
	ErrRewriteFailed = errors.New("rewrite failed")

	// ErrHistoryNotFound is returned by Restore for unknown IDs.
	ErrHistoryNotFound = fmt.Errorf("history entry %w", entity.ErrNotFound)
)
