package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// fallbackTopic is a documented retry target for failed lookups. The retry
// is deliberately disabled: activating it would add a second outbound call
// per miss, and callers already receive a well-formed failure Result.
const fallbackTopic = "Artificial_intelligence"

// Client fetches page summaries from a Wikipedia-compatible REST endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient builds a summary client. baseURL should point at the REST root,
// e.g. "https://en.wikipedia.org/api/rest_v1".
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// summaryBody is the subset of the REST summary payload we use.
type summaryBody struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	PageID    int64  `json:"pageid"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Fetch looks up the summary for key. All failures are folded into the
// Result; the returned error is always nil and exists only to satisfy the
// Fetcher contract used by the pipeline.
func (c *Client) Fetch(ctx context.Context, key string) (Result, error) {
	return c.lookup(ctx, key), nil
}

func (c *Client) lookup(ctx context.Context, key string) Result {
	endpoint := c.baseURL + "/page/summary/" + url.PathEscape(key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return failure(key, "unexpected error contacting summary service")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return failure(key, "no response from service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return failure(key, "not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return failure(key, fmt.Sprintf("service returned error status %d", resp.StatusCode))
	}

	var body summaryBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return failure(key, "unexpected error contacting summary service")
	}

	topic := body.Title
	if topic == "" {
		topic = strings.ReplaceAll(key, "_", " ")
	}
	return Result{
		Topic:     topic,
		OK:        true,
		Summary:   body.Extract,
		URL:       body.ContentURLs.Desktop.Page,
		Title:     body.Title,
		PageID:    body.PageID,
		Thumbnail: body.Thumbnail.Source,
	}
}

func failure(key, reason string) Result {
	return Result{
		Topic: strings.ReplaceAll(key, "_", " "),
		OK:    false,
		Error: reason,
	}
}
