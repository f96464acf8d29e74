package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"cafe-scraper/config"
)

// ErrRecordUnavailable marks a cafe page that cannot produce a record. The
// pipeline skips it and moves on to the next link.
var ErrRecordUnavailable = errors.New("record unavailable")

// PageSource returns the raw HTML of a cafe page.
type PageSource interface {
	Fetch(ctx context.Context, link string) (string, error)
}

// PageFetcher downloads cafe pages with a plain HTTP GET. There is no request
// timeout beyond the client's defaults.
type PageFetcher struct {
	client *resty.Client
}

// NewPageFetcher creates a PageFetcher that identifies as a desktop browser.
func NewPageFetcher() *PageFetcher {
	client := resty.New()
	client.SetHeader("User-Agent", config.BrowserUserAgent)
	return &PageFetcher{client: client}
}

// Fetch returns the page body. Pages that are gone (404, 410) wrap
// ErrRecordUnavailable; other failures are returned as-is.
func (f *PageFetcher) Fetch(ctx context.Context, link string) (string, error) {
	res, err := f.client.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", link, err)
	}

	switch status := res.StatusCode(); {
	case status == http.StatusNotFound || status == http.StatusGone:
		return "", fmt.Errorf("fetch %s: status %d: %w", link, status, ErrRecordUnavailable)
	case !res.IsSuccess():
		return "", fmt.Errorf("fetch %s: unexpected status %d", link, status)
	}

	return res.String(), nil
}
