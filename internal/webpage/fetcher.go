// Package webpage fetches pages surfaced by the web-search fallback and
// reduces them to plain text for the context assembler.
package webpage

import (
	"context"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "UploadDigitalBot/1.0 (+contact@uploaddigital.co)"

	// maxBody bounds how much of a page is read before cleaning.
	maxBody = 1 << 20
)

var (
	droppedBlockRe = regexp.MustCompile(`(?is)<(script|style|noscript)\b.*?</(script|style|noscript)>`)
	tagRe          = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe        = regexp.MustCompile(`\s+`)
)

// Fetcher downloads pages and strips them to text, implementing
// domain.PageFetcher.
type Fetcher struct {
	client *http.Client
	log    *zap.SugaredLogger
}

// NewFetcher creates a fetcher with a bounded per-request timeout.
func NewFetcher(timeout time.Duration, log *zap.SugaredLogger) *Fetcher {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, log: log}
}

// FetchText returns the cleaned text of the page at url, capped at maxChars.
// Any failure degrades to an empty string; a bad page never fails a request.
func (f *Fetcher) FetchText(ctx context.Context, url string, maxChars int) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debugw("page fetch failed", "url", url, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		f.log.Debugw("page fetch failed", "url", url, "status", resp.Status)
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return ""
	}
	text := StripHTML(string(body))
	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	return text
}

// StripHTML reduces an HTML document to whitespace-normalized plain text.
// Script, style and noscript blocks are dropped entirely.
func StripHTML(s string) string {
	s = droppedBlockRe.ReplaceAllString(s, " ")
	s = tagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
