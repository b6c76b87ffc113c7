// Package aggregate enumerates open tabs and bookmarks from their sources and
// merges them into the candidate list searched by the ranking core.
package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/glimpse/internal/logging"
	"github.com/jonathan/glimpse/internal/types"
)

// Source enumerates candidates of one kind
type Source interface {
	// Name identifies the source in logs
	Name() string
	// Candidates returns the source's candidates in native enumeration order
	Candidates(ctx context.Context) ([]types.Candidate, error)
}

// Aggregator merges tab and bookmark sources. Sources are read concurrently;
// the merged list holds all tabs first, then all bookmarks, each in the order
// the sources were given.
type Aggregator struct {
	tabs      []Source
	bookmarks []Source
	logger    logging.Logger
}

// NewAggregator creates an aggregator. A nil logger discards output.
func NewAggregator(tabs, bookmarks []Source, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Aggregator{tabs: tabs, bookmarks: bookmarks, logger: logger}
}

// Collect reads every source and returns the merged candidate list.
// A failing source is logged and contributes no candidates.
func (a *Aggregator) Collect(ctx context.Context) []types.Candidate {
	sources := make([]Source, 0, len(a.tabs)+len(a.bookmarks))
	sources = append(sources, a.tabs...)
	sources = append(sources, a.bookmarks...)

	// One slot per source keeps the merge order independent of completion order
	slots := make([][]types.Candidate, len(sources))

	var g errgroup.Group
	for i, source := range sources {
		g.Go(func() error {
			candidates, err := source.Candidates(ctx)
			if err != nil {
				a.logger.WithFields(logging.Fields{
					"source": source.Name(),
					"error":  err.Error(),
				}).Warn("failed to read candidate source")
				return nil
			}
			slots[i] = candidates
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, slot := range slots {
		total += len(slot)
	}

	merged := make([]types.Candidate, 0, total)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}

	a.logger.WithFields(logging.Fields{
		"sources":    len(sources),
		"candidates": len(merged),
	}).Debug("collected candidates")

	return merged
}

// Static is a fixed candidate list, useful for hosts that receive snapshots
// from elsewhere.
type Static struct {
	Label string
	Items []types.Candidate
}

// Name implements Source
func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}

// Candidates implements Source
func (s Static) Candidates(_ context.Context) ([]types.Candidate, error) {
	return s.Items, nil
}
