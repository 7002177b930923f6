package content

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const maxPGNBytes = 1 << 20

// FetchError means the PGN text could not be retrieved. It is never a parse
// failure.
type FetchError struct {
	Ref string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch game %q: %v", e.Ref, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher resolves an article's chessGame value to PGN text.
type Fetcher struct {
	fs   afero.Fs
	root string
	http *http.Client
}

func NewFetcher(fsys afero.Fs, root string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		fs:   fsys,
		root: root,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch accepts an http(s) URL, a .pgn path relative to the content root,
// or inline PGN.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return f.fetchURL(ctx, ref)
	case strings.HasSuffix(strings.ToLower(ref), ".pgn") && !strings.ContainsAny(ref, "\n "):
		return f.fetchFile(ref)
	default:
		return ref, nil
	}
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Ref: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return "", &FetchError{Ref: url, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Ref: url, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPGNBytes))
	if err != nil {
		return "", &FetchError{Ref: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return string(body), nil
}

func (f *Fetcher) fetchFile(ref string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(ref))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &FetchError{Ref: ref, Err: fmt.Errorf("path escapes content root")}
	}
	data, err := afero.ReadFile(f.fs, filepath.Join(f.root, rel))
	if err != nil {
		return "", &FetchError{Ref: ref, Err: err}
	}
	return string(data), nil
}
