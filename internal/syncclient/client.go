package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/monad-dog/dogpark/internal/config"
	"github.com/monad-dog/dogpark/internal/localstore"
	"github.com/rs/zerolog/log"
)

// Client reads and writes player state fragments against the remote API.
// Every failure degrades to the local store: reads always return a value
// and writes are either confirmed remotely or queued for replay. Gameplay
// never waits on the network.
type Client struct {
	cfg   config.ClientConfig
	http  *http.Client
	local *localstore.Store

	mu          sync.Mutex
	cache       map[string]cacheEntry
	offline     bool
	pending     map[string]pendingUpdate
	lastWrite   map[string]time.Time
	debounce    map[string]*time.Timer
	probeCancel context.CancelFunc

	closed chan struct{}
}

type cacheEntry struct {
	data      json.RawMessage
	timestamp time.Time
}

func New(cfg config.ClientConfig, local *localstore.Store) *Client {
	return &Client{
		cfg:       cfg,
		http:      &http.Client{},
		local:     local,
		cache:     map[string]cacheEntry{},
		pending:   map[string]pendingUpdate{},
		lastWrite: map[string]time.Time{},
		debounce:  map[string]*time.Timer{},
		closed:    make(chan struct{}),
	}
}

// Close stops the offline probe and any scheduled debounced writes.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
		return
	default:
	}
	close(c.closed)
	if c.probeCancel != nil {
		c.probeCancel()
	}
	for _, t := range c.debounce {
		t.Stop()
	}
}

func (c *Client) Offline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offline
}

// Health probes the lightweight health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/health", nil)
	return err
}

// request tries each configured base URL in order, with exponential
// backoff across a small number of attempts per URL, before giving up.
// GETs carry a cache-busting query parameter and no-cache header hints
// to stay clear of overeager proxies and ad blockers.
func (c *Client) request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = raw
	}

	attempts := c.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for _, base := range c.cfg.BaseURLs() {
		url := strings.TrimRight(base, "/") + path
		if method == http.MethodGet {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += fmt.Sprintf("%s_cb=%d_%06d", sep, time.Now().UnixMilli(), rand.Intn(1000000))
		}
		for attempt := 1; attempt <= attempts; attempt++ {
			raw, err := c.attempt(ctx, method, url, payload)
			if err == nil {
				return raw, nil
			}
			lastErr = err
			log.Debug().Err(err).Str("url", url).Int("attempt", attempt).Msg("api request failed")
			if attempt < attempts {
				backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(backoff):
				}
			}
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, url string, payload []byte) (json.RawMessage, error) {
	timeout := c.cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("User-Agent", "dogpark-client/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	return raw, nil
}

// enterOffline flips into offline mode and starts the periodic health
// probe that will flip back and replay the pending queue.
func (c *Client) enterOffline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.offline {
		return
	}
	select {
	case <-c.closed:
		return
	default:
	}
	c.offline = true
	log.Warn().Msg("sync client entering offline mode")

	ctx, cancel := context.WithCancel(context.Background())
	c.probeCancel = cancel
	go c.probeLoop(ctx)
}

func (c *Client) probeLoop(ctx context.Context) {
	interval := c.cfg.ProbeInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case <-ticker.C:
			if err := c.Health(ctx); err != nil {
				continue
			}
			// exitOffline cancels the probe context, so the replay runs
			// on its own deadline. Anything still queued afterwards
			// means connectivity is not really back; re-enter offline
			// and let the next probe retry.
			c.exitOffline()
			replayCtx, cancel := context.WithTimeout(context.Background(), replayTimeout)
			c.replayPending(replayCtx)
			cancel()
			if c.PendingCount() > 0 {
				c.enterOffline()
			}
			return
		}
	}
}

const replayTimeout = time.Minute

func (c *Client) exitOffline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.offline {
		return
	}
	c.offline = false
	if c.probeCancel != nil {
		c.probeCancel()
		c.probeCancel = nil
	}
	log.Info().Msg("sync client back online")
}

func (c *Client) cacheGet(key string) (json.RawMessage, bool) {
	ttl := c.cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Since(entry.timestamp) >= ttl {
		return nil, false
	}
	return entry.data, true
}

func (c *Client) cacheSet(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.cache[key] = cacheEntry{data: raw, timestamp: time.Now()}
	c.mu.Unlock()
}
