// Package feed holds the swipe-feed state machine: an ordered list of
// opportunities, a cursor, and a registry of saved items. The list is
// replaced wholesale on every snapshot so readers always see a complete,
// internally consistent view.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"applixy/internal/domain"
	"applixy/internal/mapping"
)

// SnapshotStream delivers successive full snapshots of a watched
// collection. The channel closes when the stream ends; Err reports why.
type SnapshotStream interface {
	Snapshots() <-chan []domain.Document
	Err() error
}

type Controller struct {
	saved  *SavedRegistry
	logger *slog.Logger

	mu      sync.Mutex
	items   []domain.Opportunity
	cursor  int
	lastErr error
}

func NewController(saved *SavedRegistry, logger *slog.Logger) *Controller {
	return &Controller{
		saved:  saved,
		logger: logger,
	}
}

// Run consumes snapshots until the stream ends or ctx is cancelled. On
// a stream error the last-known items are kept so the caller still has
// a stale-but-present feed, and the error is returned.
func (c *Controller) Run(ctx context.Context, stream SnapshotStream) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case docs, ok := <-stream.Snapshots():
			if !ok {
				if err := stream.Err(); err != nil {
					c.mu.Lock()
					c.lastErr = err
					c.mu.Unlock()
					c.logger.Error("subscription failed, keeping last snapshot", "error", err)
					return fmt.Errorf("feed subscription: %w", err)
				}
				return nil
			}
			c.apply(docs)
		}
	}
}

// apply re-maps every document and swaps the list in atomically,
// resetting the cursor. A malformed document degrades to defaults; a
// duplicated id is dropped rather than shown twice.
func (c *Controller) apply(docs []domain.Document) {
	items := make([]domain.Opportunity, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		o, defaulted := mapping.MapOpportunity(doc)
		if len(defaulted) > 0 {
			c.logger.Debug("mapped with defaults", "id", doc.ID, "fields", defaulted)
		}
		if _, dup := seen[o.ID]; dup {
			c.logger.Warn("duplicate document id in snapshot", "id", o.ID)
			continue
		}
		seen[o.ID] = struct{}{}
		items = append(items, o)
	}

	c.mu.Lock()
	c.items = items
	c.cursor = 0
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("snapshot applied", "count", len(items))
}

// Current returns the opportunity under the cursor. The second return
// is false once the user has advanced past the end (or the feed is
// empty): the caught-up state.
func (c *Controller) Current() (domain.Opportunity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= len(c.items) {
		return domain.Opportunity{}, false
	}
	return c.items[c.cursor], true
}

// Advance moves the cursor forward. It never moves back; overflow is
// handled on the read side by Current.
func (c *Controller) Advance() {
	c.mu.Lock()
	c.cursor++
	c.mu.Unlock()
}

// Skip passes on the current opportunity. Skips are not remembered
// across sessions.
func (c *Controller) Skip() {
	c.Advance()
}

// Save keeps the opportunity in the saved registry and advances.
func (c *Controller) Save(o domain.Opportunity) {
	c.saved.Save(o)
	c.Advance()
}

func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Controller) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Err returns the last subscription error, cleared on the next good
// snapshot.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
