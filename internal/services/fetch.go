package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultFetchTimeout bounds one document download end to end.
const defaultFetchTimeout = 30 * time.Second

// DocumentFetcher downloads schedule PDFs from federation sites. One
// attempt per document; a failed fetch fails the meet and the scheduler
// decides when to try again.
type DocumentFetcher struct {
	httpClient *http.Client
}

// NewDocumentFetcher creates a new document fetcher
func NewDocumentFetcher() *DocumentFetcher {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		IdleConnTimeout: 90 * time.Second,
	}

	return &DocumentFetcher{
		httpClient: &http.Client{
			Timeout:   defaultFetchTimeout,
			Transport: transport,
		},
	}
}

// NewDocumentFetcherWithTimeout creates a document fetcher with a custom timeout
func NewDocumentFetcherWithTimeout(timeout time.Duration) *DocumentFetcher {
	fetcher := NewDocumentFetcher()
	fetcher.httpClient.Timeout = timeout
	return fetcher
}

// Fetch downloads the document at url and returns its raw bytes.
func (f *DocumentFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "weightlifting-schedule-scraper/1.0")
	req.Header.Set("Accept", "application/pdf,*/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed for %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch returned status %d for %s: %s", resp.StatusCode, url, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty response body from %s", url)
	}

	return data, nil
}
