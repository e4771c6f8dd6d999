// Package sheets fetches a published spreadsheet tab as CSV text
package sheets

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/logger"
)

const (
	baseURLDefault  = "https://docs.google.com/spreadsheets/d/"
	defaultTimeout  = 15 * time.Second
	defaultUA       = "batchtrace-catalog"
	defaultMaxBytes = 8 << 20
)

// Fetcher returns the raw feed body
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Options configures the HTTP fetcher. FeedURL wins over SheetID/SheetName
type Options struct {
	FeedURL   string
	BaseURL   string
	SheetID   string
	SheetName string

	UserAgent string
	Timeout   time.Duration
	MaxBytes  int64
}

// FeedURL is the gviz CSV export of one tab
func FeedURL(o Options) string {
	if o.FeedURL != "" {
		return o.FeedURL
	}
	base := o.BaseURL
	if base == "" {
		base = baseURLDefault
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", o.SheetName)
	return base + url.PathEscape(o.SheetID) + "/gviz/tq?" + q.Encode()
}

// HTTPFetcher issues one GET per Fetch with no retries
type HTTPFetcher struct {
	http *http.Client
	url  string
	opts Options
	log  logger.Logger
}

// NewHTTPFetcher applies defaults. client may be nil
func NewHTTPFetcher(o Options, client *http.Client) *HTTPFetcher {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = defaultMaxBytes
	}
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	}
	return &HTTPFetcher{http: client, url: FeedURL(o), opts: o, log: *logger.Named("sheets")}
}

// URL is the fetch target
func (f *HTTPFetcher) URL() string { return f.url }

// Fetch GETs the feed. Non-2xx statuses and transport failures are unavailable errors
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "sheets: bad feed url")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	start := time.Now()
	resp, err := f.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets: fetch failed")
	}
	defer resp.Body.Close()

	f.log.Debug().
		Str("url", f.url).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("sheets http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", perr.Newf(perr.ErrorCodeUnavailable, "sheets: fetch status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets: read body")
	}
	if int64(len(body)) > f.opts.MaxBytes {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "sheets: feed exceeds %d bytes", f.opts.MaxBytes)
	}
	return string(body), nil
}

// Static serves a fixed body, for tests and offline runs
type Static string

// Fetch returns the body
func (s Static) Fetch(context.Context) (string, error) { return string(s), nil }

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context) (string, error)

// Fetch calls fn
func (fn FetcherFunc) Fetch(ctx context.Context) (string, error) { return fn(ctx) }

// String names the fetch target for logs
func (f *HTTPFetcher) String() string { return f.url }
