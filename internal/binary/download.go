package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/undetected/internal/types"
)

const (
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "undetected/1.0"
	// maxRedirects bounds redirect chains followed by the default client
	maxRedirects = 10
)

// NewHTTPClient returns the client used when none is configured. It sets no
// overall timeout; callers bound requests through the context.
func NewHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Downloader fetches driver archives into a cache directory.
type Downloader struct {
	client    *http.Client
	userAgent string
	logger    Logger
}

// NewDownloader creates a new downloader. A nil client selects NewHTTPClient.
func NewDownloader(client *http.Client, logger Logger) *Downloader {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Downloader{
		client:    client,
		userAgent: DefaultUserAgent,
		logger:    orNoop(logger),
	}
}

// Download stores url as <destDir>/<name>.zip and returns that path.
// destDir is created if needed. If the target file already exists the
// download is skipped; its content is not verified.
func (d *Downloader) Download(ctx context.Context, destDir, url, name string) (string, error) {
	if err := ensureDir(destDir); err != nil {
		return "", types.Download("prepare cache directory", err)
	}

	target := filepath.Join(destDir, name+ArchiveExt)
	if fileExists(target) {
		d.logger.Debug("archive already downloaded", "path", target)
		return target, nil
	}

	d.logger.Info("downloading driver archive", "url", url, "path", target)
	if err := d.DownloadToFile(ctx, url, target); err != nil {
		return "", types.Download("download archive", err)
	}

	return target, nil
}

// DownloadToFile downloads a URL to a specific file path.
// The body is streamed to a temporary sibling file which is renamed into
// place once complete, so a failed transfer never leaves a partial target.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// ensureDir creates dir recursively and fails if it exists as a non-directory.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	case err == nil:
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// fileExists checks if a non-directory entry exists at path
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
