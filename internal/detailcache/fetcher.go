package detailcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPageBytes caps how much of a detail page is read. Incident pages are a
// few hundred KB; anything larger is not worth extracting from.
const maxPageBytes = 4 << 20

// HTTPFetcher fetches detail pages over plain HTTP GET.
type HTTPFetcher struct {
	httpClient *http.Client
}

// NewHTTPFetcher creates a page fetcher with its own request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{httpClient: &http.Client{Timeout: timeout}}
}

// FetchPage GETs a detail page and returns its raw markup.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail page: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read detail page: %w", err)
	}
	return body, nil
}
