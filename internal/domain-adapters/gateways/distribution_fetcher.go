package gateways

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ochairo/distpatch/internal/domain/entities"
)

// DistributionFetcher downloads distribution archives for verification
type DistributionFetcher struct {
	httpClient *http.Client
}

// NewDistributionFetcher creates a fetcher. A timeout of zero leaves the
// client without a deadline so the caller's context governs cancellation.
func NewDistributionFetcher(timeout time.Duration) *DistributionFetcher {
	return &DistributionFetcher{
		httpClient: &http.Client{
			Timeout: timeout, // Long timeout for large downloads
		},
	}
}

// FetchDistribution downloads the archive at url into a temporary file.
// The caller removes the file when done with it.
func (f *DistributionFetcher) FetchDistribution(ctx context.Context, url string) (*entities.Distribution, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "distpatch/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	out, err := os.CreateTemp("", "distpatch-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		//nolint:errcheck // Best-effort cleanup of the partial download
		out.Close()
		//nolint:errcheck // Best-effort cleanup of the partial download
		os.Remove(out.Name())
		return nil, fmt.Errorf("failed to write download: %w", err)
	}
	if err := out.Close(); err != nil {
		//nolint:errcheck // Best-effort cleanup of the partial download
		os.Remove(out.Name())
		return nil, fmt.Errorf("failed to close download: %w", err)
	}

	return &entities.Distribution{
		URL:  url,
		Path: out.Name(),
		Size: written,
	}, nil
}
