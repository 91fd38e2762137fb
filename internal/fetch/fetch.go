// Package fetch retrieves the full corpus snapshot from the paginated
// messages API. Transient page failures are retried with a linear backoff;
// exhausting the retries fails the whole invocation, the engine has no
// partial-corpus semantics.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"corpus-audit/internal/message"
)

const (
	DefaultPageLimit = 200
	DefaultMaxPages  = 100
	DefaultRetries   = 3

	requestTimeout = 30 * time.Second
	retryBackoff   = 200 * time.Millisecond
	userAgent      = "corpus-audit/1.0"
)

type Client struct {
	BaseURL   string
	PageLimit int
	MaxPages  int
	Retries   int

	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		PageLimit:  DefaultPageLimit,
		MaxPages:   DefaultMaxPages,
		Retries:    DefaultRetries,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchAll pages through /messages/ until the last page, the page cap or the
// advertised total is reached. A short page ends the walk early.
func (c *Client) FetchAll(ctx context.Context) ([]message.Record, error) {
	total, err := c.fetchTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("probe message total: %w", err)
	}
	if total <= 0 {
		total = c.PageLimit * c.MaxPages
	}

	pages := (total + c.PageLimit - 1) / c.PageLimit
	if pages > c.MaxPages {
		pages = c.MaxPages
	}

	var items []message.Record
	for i := 0; i < pages; i++ {
		skip := i * c.PageLimit
		page, err := c.fetchPageWithRetry(ctx, skip, c.PageLimit)
		if err != nil {
			return nil, fmt.Errorf("fetch page at skip=%d: %w", skip, err)
		}
		items = append(items, page.Items...)
		if len(page.Items) < c.PageLimit {
			break
		}
	}

	return items, nil
}

func (c *Client) fetchTotal(ctx context.Context) (int, error) {
	page, err := c.fetchPage(ctx, 0, 1)
	if err != nil {
		return 0, err
	}
	return page.Total, nil
}

func (c *Client) fetchPageWithRetry(ctx context.Context, skip, limit int) (message.Page, error) {
	var lastErr error
	for attempt := 1; attempt <= c.Retries; attempt++ {
		page, err := c.fetchPage(ctx, skip, limit)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if attempt < c.Retries {
			select {
			case <-ctx.Done():
				return message.Page{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
	}
	return message.Page{}, lastErr
}

func (c *Client) fetchPage(ctx context.Context, skip, limit int) (message.Page, error) {
	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return message.Page{}, fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	endpoint = endpoint.JoinPath("messages", "/")

	query := endpoint.Query()
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	query.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return message.Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return message.Page{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return message.Page{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var page message.Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return message.Page{}, fmt.Errorf("decode page: %w", err)
	}

	return page, nil
}
