// Package options holds the client-side snapshot of reference-list data
// (authors, publishers, courses, genres, faculties) used to populate
// dependent dropdowns.
package options

import (
	"context"
	"sync"

	"github.com/bookstudio/webui/internal/api"
	"github.com/bookstudio/webui/internal/logging"
)

// Snapshot is an immutable view of the reference lists at one point in time.
// Dialog-population code receives a Snapshot rather than reaching for shared
// mutable lists.
type Snapshot map[string][]api.Option

// Options returns the list for a category; a missing category yields nil,
// which renders a dropdown with no options.
func (s Snapshot) Options(category string) []api.Option {
	return s[category]
}

// Cache fetches an entity's reference lists once per page lifetime and
// replaces them wholesale on success. A failed fetch leaves the previous
// lists in place (empty on first load), degrading silently to dropdowns
// without options. Lists never expire; only Refresh replaces them.
type Cache struct {
	entity string
	client *api.Client

	mu    sync.RWMutex
	lists Snapshot
}

// NewCache creates an empty cache for the entity's select-options endpoint
// ("books", "students").
func NewCache(client *api.Client, entity string) *Cache {
	return &Cache{
		entity: entity,
		client: client,
		lists:  Snapshot{},
	}
}

// Refresh issues the one read for all reference lists and replaces the
// in-memory snapshot wholesale. There are no partial updates and no retry:
// on error the caller gets the degraded (possibly empty) lists.
func (c *Cache) Refresh(ctx context.Context) error {
	opts, err := c.client.SelectOptions(ctx, c.entity)
	if err != nil {
		logging.FromContext(ctx).Warn("select options fetch failed; dropdowns will be empty",
			"entity", c.entity,
			"error", err,
		)
		return err
	}

	snapshot := make(Snapshot, len(opts))
	for category, list := range opts {
		snapshot[category] = list
	}

	c.mu.Lock()
	c.lists = snapshot
	c.mu.Unlock()
	return nil
}

// Snapshot returns a copy-on-read view of the current lists. The returned
// map must not be mutated; the per-category slices are shared.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(Snapshot, len(c.lists))
	for category, list := range c.lists {
		out[category] = list
	}
	return out
}
