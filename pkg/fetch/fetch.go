// Package fetch downloads background images for dataset generation.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/menta2k/synthgen/internal/utils"
)

// Downloader fetches background images over HTTP
type Downloader struct {
	client    *http.Client
	userAgent string
	logger    *log.Logger
}

// New creates a Downloader with a 30 second timeout
func New() *Downloader {
	return NewWithClient(&http.Client{Timeout: 30 * time.Second})
}

// NewWithClient creates a Downloader using a custom HTTP client
func NewWithClient(client *http.Client) *Downloader {
	return &Downloader{
		client:    client,
		userAgent: "synthgen/1.0 (+https://github.com/menta2k/synthgen)",
		logger:    log.Default(),
	}
}

// SetLogger replaces the progress logger
func (d *Downloader) SetLogger(logger *log.Logger) {
	d.logger = logger
}

// Download fetches one image URL and writes it to destPath. The
// response must be an HTTP 200 with an image/* Content-Type.
func (d *Downloader) Download(ctx context.Context, imageURL, destPath string) error {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write image data: %w", err)
	}

	d.logger.Printf("fetched %s (%s)", filepath.Base(destPath), utils.FormatFileSize(written))
	return nil
}

// DownloadAll fetches every URL into dir as bg_N.<ext>, continuing
// past individual failures. It returns the number of images saved; an
// error is returned only when the destination directory cannot be
// created.
func (d *Downloader) DownloadAll(ctx context.Context, urls []string, dir string) (int, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return 0, fmt.Errorf("failed to create backgrounds dir: %w", err)
	}

	saved := 0
	for i, imageURL := range urls {
		if err := ctx.Err(); err != nil {
			return saved, err
		}

		destPath := filepath.Join(dir, fmt.Sprintf("bg_%d%s", i, extFromURL(imageURL)))
		if err := d.Download(ctx, imageURL, destPath); err != nil {
			d.logger.Printf("skipping %s: %v", imageURL, err)
			continue
		}
		saved++
	}

	return saved, nil
}

// extFromURL keeps the source extension when it is a recognized image
// type, defaulting to .jpg
func extFromURL(imageURL string) string {
	if parsed, err := url.Parse(imageURL); err == nil {
		if ext := strings.ToLower(filepath.Ext(parsed.Path)); ext != "" {
			if utils.IsImageFile(parsed.Path) {
				return ext
			}
		}
	}
	return ".jpg"
}
