package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetmirror/internal/config"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/services"
)

const defaultTimeout = 2 * time.Minute

// Downloader stores the resource at url in dst.
type Downloader interface {
	Download(ctx context.Context, url, dst string) (int64, error)
}

// HTTPDownloader fetches images over HTTP and writes them atomically.
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
}

// NewHTTPDownloader builds a downloader from the fetch settings.
func NewHTTPDownloader(cfg *config.Config) *HTTPDownloader {
	timeout := cfg.FetchTimeout()
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPDownloader{
		client:    &http.Client{Timeout: timeout},
		userAgent: cfg.Fetch.UserAgent,
	}
}

// Download issues a GET for url and streams a successful body into dst.
func (d *HTTPDownloader) Download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "fetch", "build request", url, err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, services.Wrap(services.ErrTimeout, "fetch", "download", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		marker := services.ErrTransient
		if resp.StatusCode == http.StatusNotFound {
			marker = services.ErrNotFound
		}
		return 0, services.Wrap(marker, "fetch", "download",
			fmt.Sprintf("%s returned %d: %s", url, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	written, err := fileutil.WriteAtomic(dst, resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, services.Wrap(services.ErrFilesystem, "fetch", "write image", dst, err)
	}
	return written, nil
}
