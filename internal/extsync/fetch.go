// Package extsync mirrors connected third-party calendars into read-only
// busy intervals. It fetches each registered ICS feed, expands recurring
// events inside a bounded window and replaces the stored rows wholesale, so
// the schedule view only ever sees plain instant intervals.
package extsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxFeedBytes = 10 << 20

// Fetcher downloads ICS feed payloads.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves one feed body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("feed URL is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, err
	}

	return body, nil
}
