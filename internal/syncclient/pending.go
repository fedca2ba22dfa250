package syncclient

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// pendingUpdate is a queued remote write. The queue holds at most one
// entry per resource+address, so replay only ever sends the latest value.
type pendingUpdate struct {
	resource Resource
	address  string
	path     string
	body     any
}

func pendingKey(res Resource, address string) string {
	return string(res) + "_" + address
}

func (c *Client) enqueue(res Resource, address, path string, body any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[pendingKey(res, address)] = pendingUpdate{resource: res, address: address, path: path, body: body}
}

// PendingCount reports how many updates await replay.
func (c *Client) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// replayPending drains the queue after connectivity returns. Each entry
// is retried independently; a failed entry goes back in the queue alone
// rather than aborting the batch.
func (c *Client) replayPending(ctx context.Context) {
	c.mu.Lock()
	updates := make([]pendingUpdate, 0, len(c.pending))
	for _, u := range c.pending {
		updates = append(updates, u)
	}
	c.pending = map[string]pendingUpdate{}
	c.mu.Unlock()

	if len(updates) == 0 {
		return
	}
	log.Info().Int("count", len(updates)).Msg("replaying pending updates")
	for _, u := range updates {
		if _, err := c.request(ctx, http.MethodPost, u.path, u.body); err != nil {
			log.Warn().Err(err).Str("resource", string(u.resource)).Msg("pending replay failed, re-queueing")
			c.mu.Lock()
			c.pending[pendingKey(u.resource, u.address)] = u
			c.mu.Unlock()
		}
	}
}
