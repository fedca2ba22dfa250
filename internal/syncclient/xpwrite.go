package syncclient

import (
	"context"
	"net/http"
	"time"

	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/monad-dog/dogpark/internal/wallet"
	"github.com/rs/zerolog/log"
)

// ScheduleXP records the latest XP value for a wallet and (re)arms the
// idle debounce. Rapid rewards keep replacing the pending value; only
// the final one goes out, after the configured quiet period.
func (c *Client) ScheduleXP(address string, xp int64) {
	_ = c.local.Set(localstore.KeyXP(address), xp)

	debounce := c.cfg.XPWriteDebounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return
	default:
	}
	key := pendingKey(ResourceXP, address)
	c.pending[key] = pendingUpdate{
		resource: ResourceXP,
		address:  address,
		path:     "/xp/" + wallet.Normalize(address),
		body:     map[string]any{"xp": xp},
	}
	if t, ok := c.debounce[address]; ok {
		t.Stop()
	}
	c.debounce[address] = time.AfterFunc(debounce, func() {
		c.flushScheduledXP(address)
	})
}

func (c *Client) flushScheduledXP(address string) {
	c.mu.Lock()
	key := pendingKey(ResourceXP, address)
	update, ok := c.pending[key]
	offline := c.offline
	if ok && !offline {
		delete(c.pending, key)
	}
	c.mu.Unlock()
	if !ok || offline {
		// Offline entries stay queued; the probe replays them.
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	c.writeXP(ctx, update)
}

// SetXP pushes an XP value immediately, subject to the per-wallet write
// interval: writes arriving faster are coalesced back into the debounce.
func (c *Client) SetXP(ctx context.Context, address string, xp int64) {
	interval := c.cfg.XPWriteInterval
	if interval <= 0 {
		interval = time.Second
	}
	c.mu.Lock()
	last := c.lastWrite[address]
	c.mu.Unlock()
	if time.Since(last) < interval {
		log.Debug().Str("address", address).Msg("xp write rate limited, coalescing")
		c.ScheduleXP(address, xp)
		return
	}
	_ = c.local.Set(localstore.KeyXP(address), xp)
	c.writeXP(ctx, pendingUpdate{
		resource: ResourceXP,
		address:  address,
		path:     "/xp/" + wallet.Normalize(address),
		body:     map[string]any{"xp": xp},
	})
}

func (c *Client) writeXP(ctx context.Context, update pendingUpdate) {
	if c.Offline() {
		c.mu.Lock()
		c.pending[pendingKey(update.resource, update.address)] = update
		c.mu.Unlock()
		return
	}
	if _, err := c.request(ctx, http.MethodPost, update.path, update.body); err != nil {
		log.Warn().Err(err).Msg("xp write failed, queueing for replay")
		c.enterOffline()
		c.mu.Lock()
		c.pending[pendingKey(update.resource, update.address)] = update
		c.mu.Unlock()
		return
	}
	c.mu.Lock()
	c.lastWrite[update.address] = time.Now()
	c.mu.Unlock()
	if body, ok := update.body.(map[string]any); ok {
		if xp, ok := body["xp"].(int64); ok {
			c.cacheSet(localstore.KeyXP(update.address), xp)
		}
	}
}

// FlushXP sends any scheduled XP write for the wallet right away. Used
// on disconnect so nothing is lost to a cancelled debounce timer.
func (c *Client) FlushXP(ctx context.Context, address string) {
	c.mu.Lock()
	if t, ok := c.debounce[address]; ok {
		t.Stop()
		delete(c.debounce, address)
	}
	key := pendingKey(ResourceXP, address)
	update, ok := c.pending[key]
	if ok && !c.offline {
		delete(c.pending, key)
	}
	offline := c.offline
	c.mu.Unlock()
	if ok && !offline {
		c.writeXP(ctx, update)
	}
}
