// Package remote downloads source workbooks over HTTP(S). When a token is
// given every request carries it as an OAuth2 bearer token.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultTimeout = 30 * time.Second
	maxAttempts    = 3
	maxRetryWait   = 30 * time.Second
)

// Client is a thin wrapper over http.Client. Use New to construct it.
type Client struct {
	c     *http.Client
	sleep func(time.Duration)
}

// New returns a client. c may be nil; a non-empty token wraps c in an oauth2
// transport with a static bearer token.
func New(ctx context.Context, c *http.Client, token string) *Client {
	if c == nil {
		c = &http.Client{Timeout: defaultTimeout}
	}
	if token != "" {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c)
		c = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
		c.Timeout = defaultTimeout
	}
	return &Client{c: c, sleep: time.Sleep}
}

// IsURL reports whether path should be fetched rather than opened.
func IsURL(path string) bool {
	p := strings.ToLower(strings.TrimSpace(path))
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Open returns the content at path: downloaded when it is a URL, opened from
// disk otherwise.
func (rc *Client) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if !IsURL(path) {
		return os.Open(path)
	}
	b, err := rc.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

// Fetch downloads rawURL. 429 and 503 answers are retried, honoring
// Retry-After up to maxRetryWait.
func (rc *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		resp, err := rc.c.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			defer resp.Body.Close()
			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", rawURL, err)
			}
			slog.Info("remote.fetch.done", "url", rawURL, "bytes", len(b))
			return b, nil
		}
		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable) && attempt < maxAttempts {
			wait := retryAfter(resp.Header.Get("Retry-After"), attempt)
			_ = drainAndClose(resp.Body)
			slog.Warn("remote.fetch.retry", "url", rawURL, "status", resp.StatusCode, "wait", wait, "attempt", attempt)
			rc.sleep(wait)
			continue
		}
		// read body for diagnostics and return error
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

func retryAfter(header string, attempt int) time.Duration {
	wait := time.Duration(attempt) * time.Second
	if sec, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && sec >= 0 {
		wait = time.Duration(sec) * time.Second
	}
	if wait > maxRetryWait {
		wait = maxRetryWait
	}
	return wait
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, rc)
	return rc.Close()
}
