package history

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	historyPath = "/api/v1/history"
	indexPath   = "/api/v1/history/index"

	// DefaultTimeout bounds a single request to the history service.
	DefaultTimeout = 30 * time.Second
)

// IndexEntry is one element of the timestamp-only history index.
type IndexEntry struct {
	Time string `json:"time"`
}

// Client fetches the logo timeline from the remote history service.
type Client struct {
	baseURL string
	limit   int
	client  *http.Client
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Tests use this to
// point at httptest servers with short timeouts.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithLimit caps the number of snapshots requested per fetch. Zero or
// negative means no cap.
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// NewClient creates a client for the history service rooted at baseURL.
// Any query string or trailing slash on baseURL is dropped.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: trimBaseURL(baseURL),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Fetch retrieves the full timeline. All failure causes (transport error,
// non-2xx status, malformed body) fold into FetchResult.Err; callers only
// ever see the coarse outcome.
func (c *Client) Fetch(ctx context.Context) FetchResult {
	endpoint := c.baseURL + historyPath
	if c.limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(c.limit)
	}
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return FetchResult{Err: err}
	}
	var hist History
	if err := json.Unmarshal(body, &hist); err != nil {
		return FetchResult{Err: fmt.Errorf("history: decode %s: %w", historyPath, err)}
	}
	return FetchResult{History: hist}
}

// FetchIndex retrieves the timestamp-only index of the timeline.
func (c *Client) FetchIndex(ctx context.Context) ([]IndexEntry, error) {
	body, err := c.get(ctx, c.baseURL+indexPath)
	if err != nil {
		return nil, err
	}
	var entries []IndexEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", indexPath, err)
	}
	return entries, nil
}

// FetchSnapshotPNG retrieves the raw PNG for a single snapshot by its
// timestamp label.
func (c *Client) FetchSnapshotPNG(ctx context.Context, timeLabel string) ([]byte, error) {
	return c.get(ctx, c.baseURL+historyPath+"/"+url.PathEscape(timeLabel))
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("history: build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history: get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("history: get %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("history: read body: %w", err)
	}
	return body, nil
}

func trimBaseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil {
		parsed.RawQuery = ""
		parsed.Fragment = ""
		trimmed = parsed.String()
	}
	return strings.TrimRight(trimmed, "/")
}
