// Package csvsource loads the ranking CSV from a directory or an HTTP origin
// and parses it into a ranking dataset.
package csvsource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

// Fetcher retrieves the raw bytes of a resource.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileFetcher reads resources from a filesystem, usually os.DirFS(dataDir).
type FileFetcher struct {
	fsys fs.FS
}

// NewFileFetcher creates a fetcher rooted at fsys.
func NewFileFetcher(fsys fs.FS) *FileFetcher {
	return &FileFetcher{fsys: fsys}
}

// Fetch reads name from the filesystem.
func (f *FileFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	b, err := fs.ReadFile(f.fsys, path.Clean(strings.TrimPrefix(name, "/")))
	if err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	return b, nil
}

// HTTPFetcher wraps http.Client with timeout and resolves names against a base URL.
type HTTPFetcher struct {
	client  *http.Client
	baseURL *url.URL
}

// NewHTTPFetcher creates a fetcher for resources under baseURL.
func NewHTTPFetcher(baseURL string, timeout time.Duration) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: u,
	}, nil
}

// Fetch performs a GET request and returns the body of a 2xx response.
func (f *HTTPFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	target := f.baseURL.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Path: name, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Path: name, Err: err}
	}
	return b, nil
}

// NewFetcher picks the HTTP fetcher when baseURL is set and falls back to
// reading from dataDir.
func NewFetcher(baseURL, dataDir string, timeout time.Duration) (Fetcher, error) {
	if strings.TrimSpace(baseURL) != "" {
		return NewHTTPFetcher(baseURL, timeout)
	}
	if dataDir == "" {
		dataDir = "."
	}
	return NewFileFetcher(os.DirFS(dataDir)), nil
}
