// Package mirror downloads beatmap-set archives from the osu! website.
// Requests are rate limited and bounded in concurrency; the site bans
// aggressive downloaders, so the limits are deliberately conservative.
package mirror

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/levigross/grequests"
)

const (
	defaultBaseURL = "https://osu.ppy.sh"

	rateLimit             = 30
	rateWindow            = time.Minute
	maxConcurrentRequests = 2
	requestTimeout        = 10 * time.Minute
	maxAttempts           = 5
)

// slowDownMarker is the body the site serves instead of an archive when
// the session has been downloading too fast.
const slowDownMarker = "Slow down, play more."

// Client downloads .osz archives using a logged-in osu_session cookie.
type Client struct {
	// BaseURL can be pointed at a mirror; defaults to the official site.
	BaseURL string

	session string
	logger  *log.Logger
	th      *throttle
	tokens  chan struct{}

	limitedFrom atomic.Pointer[time.Time]
}

// New returns a Client authenticated by the given osu_session cookie
// value. The logger receives download progress and cooldown notices.
func New(session string, logger *log.Logger) *Client {
	c := &Client{
		BaseURL: defaultBaseURL,
		session: session,
		logger:  logger,
		th:      newThrottle(rateLimit, rateWindow),
		tokens:  make(chan struct{}, maxConcurrentRequests),
	}
	for i := 0; i < maxConcurrentRequests; i++ {
		c.tokens <- struct{}{}
	}
	return c
}

// Close releases the client's rate-limit ticker. The client must not
// be used after Close.
func (c *Client) Close() {
	c.th.stop()
}

// cooldown reports how long to back off after a rate-limit response,
// doubling up from a minute while limits keep arriving.
func (c *Client) cooldown() time.Duration {
	last := c.limitedFrom.Load()
	now := time.Now()
	c.limitedFrom.CompareAndSwap(nil, &now)
	if last != nil {
		return max(time.Minute, time.Since(*last))
	}
	return time.Minute
}

// DownloadSet fetches the .osz archive for one beatmap set and returns
// its raw bytes. Rate-limit responses are retried after a cooldown.
func (c *Client) DownloadSet(ctx context.Context, setID int) ([]byte, error) {
	select {
	case <-c.tokens:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { c.tokens <- struct{}{} }()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.th.wait()
		data, err := c.downloadOnce(ctx, setID)
		if err != nil {
			return nil, err
		}
		if !bytes.Contains(data, []byte(slowDownMarker)) {
			c.limitedFrom.Store(nil)
			return data, nil
		}
		wait := c.cooldown()
		c.logger.Printf("set %d: rate limited, cooling down %s (attempt %d/%d)", setID, wait, attempt, maxAttempts)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("set %d: still rate limited after %d attempts", setID, maxAttempts)
}

func (c *Client) downloadOnce(ctx context.Context, setID int) ([]byte, error) {
	url := fmt.Sprintf("%s/beatmapsets/%d/download", c.BaseURL, setID)
	c.logger.Printf("downloading set %d", setID)

	resp, err := grequests.Get(url, grequests.FromRequestOptions(&grequests.RequestOptions{
		Context:        ctx,
		RequestTimeout: requestTimeout,
		Headers: map[string]string{
			"Accept":     "application/octet-stream",
			"Referer":    fmt.Sprintf("%s/beatmapsets/%d", c.BaseURL, setID),
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36",
		},
		Cookies: []*http.Cookie{{Name: "osu_session", Value: c.session}},
	}))
	if err != nil {
		return nil, fmt.Errorf("download set %d: %w", setID, err)
	}
	defer resp.Close()

	if !resp.Ok {
		return nil, fmt.Errorf("download set %d: status %d", setID, resp.StatusCode)
	}
	return resp.Bytes(), nil
}
