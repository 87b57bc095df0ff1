// Package websearch bridges to the Google Custom Search API for queries the
// local index answers poorly. The bridge is best-effort: missing credentials
// or any transport failure collapse to zero results.
package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"uploadai/internal/domain"
)

const (
	defaultEndpoint = "https://www.googleapis.com/customsearch/v1"
	defaultTimeout  = 20 * time.Second
)

// Config configures the Google CSE client.
type Config struct {
	APIKey   string
	CX       string
	Site     string // queries are scoped with site:<Site> when set
	Endpoint string // overridable for tests
	Timeout  time.Duration
}

// Client is a site-scoped Google Custom Search client implementing
// domain.WebSearcher.
type Client struct {
	cfg    Config
	client *http.Client
	log    *zap.SugaredLogger
}

// NewClient creates the client. A client without credentials is valid; it
// just always returns zero results.
func NewClient(cfg Config, log *zap.SugaredLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}, log: log}
}

// Configured reports whether search credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.CX != ""
}

// Search runs a site-scoped query and returns up to num results. num is
// clamped to the API's 1..10 range.
func (c *Client) Search(ctx context.Context, query string, num int) []domain.WebResult {
	if !c.Configured() {
		return nil
	}
	if num < 1 {
		num = 1
	}
	if num > 10 {
		num = 10
	}
	q := query
	if c.cfg.Site != "" {
		q = "site:" + c.cfg.Site + " " + query
	}
	params := url.Values{
		"key":  {c.cfg.APIKey},
		"cx":   {c.cfg.CX},
		"q":    {q},
		"num":  {strconv.Itoa(num)},
		"safe": {"off"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debugw("web search failed", "error", err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		c.log.Debugw("web search failed", "status", resp.Status)
		return nil
	}
	var payload struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.log.Debugw("web search decode failed", "error", err)
		return nil
	}
	out := make([]domain.WebResult, 0, len(payload.Items))
	for _, it := range payload.Items {
		out = append(out, domain.WebResult{Title: it.Title, URL: it.Link, Snippet: it.Snippet})
	}
	return out
}
