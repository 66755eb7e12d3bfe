package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

// Fetcher returns the raw bytes stored at location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// HTTPFetcher fetches sources over HTTP. Relative locations are resolved
// against baseURL. Failures are returned as is; there is no retry.
type HTTPFetcher struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewHTTPFetcher creates an HTTPFetcher. A zero timeout means 10s.
func NewHTTPFetcher(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &HTTPFetcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "http_fetcher"),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	reqURL := location
	if !isURL(location) {
		reqURL = f.baseURL + "/" + strings.TrimLeft(location, "/")
	}

	f.log.DebugContext(ctx, "fetch source", slog.String("url", reqURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.log.ErrorContext(ctx, "fetch source failed", slog.String("url", reqURL), slog.String("error", err.Error()))
		return nil, fmt.Errorf("http fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http fetch %s: unexpected status %d", reqURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http fetch %s: read body: %w", reqURL, err)
	}

	f.log.DebugContext(ctx, "fetched source", slog.String("url", reqURL), slog.Int("bytes", len(body)))
	return body, nil
}

// FileFetcher reads sources from the local filesystem, relative to baseDir.
type FileFetcher struct {
	baseDir string
}

func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{baseDir: baseDir}
}

func (f *FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := location
	if !filepath.IsAbs(path) && f.baseDir != "" {
		path = filepath.Join(f.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file fetch: %w", err)
	}
	return data, nil
}

// Router sends http(s) locations to HTTP and everything else to File.
type Router struct {
	HTTP Fetcher
	File Fetcher
}

func (r Router) Fetch(ctx context.Context, location string) ([]byte, error) {
	if isURL(location) {
		if r.HTTP == nil {
			return nil, fmt.Errorf("no http fetcher for %s", location)
		}
		return r.HTTP.Fetch(ctx, location)
	}
	if r.File == nil {
		return nil, fmt.Errorf("no file fetcher for %s", location)
	}
	return r.File.Fetch(ctx, location)
}

// NewFetcher picks a fetcher for base: an HTTP fetcher when base is a URL,
// a file fetcher otherwise. Absolute URLs are always fetched over HTTP.
func NewFetcher(base string, timeout time.Duration, logger *slog.Logger) Fetcher {
	httpFetcher := NewHTTPFetcher(base, timeout, logger)
	if isURL(base) {
		return Router{HTTP: httpFetcher, File: httpFetcher}
	}
	return Router{HTTP: httpFetcher, File: NewFileFetcher(base)}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
