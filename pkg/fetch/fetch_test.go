package fetch

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("not-a-real-png-but-bytes"))
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func silentDownloader() *Downloader {
	d := New()
	d.SetLogger(log.New(io.Discard, "", 0))
	return d
}

func TestDownloadWritesFile(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bg_0.png")
	if err := silentDownloader().Download(context.Background(), server.URL+"/ok.png", dest); err != nil {
		t.Fatalf("Download() failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read downloaded file: %v", err)
	}
	if len(data) == 0 {
		t.Error("downloaded file is empty")
	}
}

func TestDownloadRejectsNonImage(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bg_0.jpg")
	err := silentDownloader().Download(context.Background(), server.URL+"/page", dest)
	if err == nil || !strings.Contains(err.Error(), "does not point to an image") {
		t.Fatalf("expected a content-type error, got %v", err)
	}
}

func TestDownloadRejectsBadStatus(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "bg_0.jpg")
	err := silentDownloader().Download(context.Background(), server.URL+"/missing", dest)
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("expected an HTTP status error, got %v", err)
	}
}

func TestDownloadRejectsBadScheme(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "bg_0.jpg")
	err := silentDownloader().Download(context.Background(), "ftp://example.com/a.jpg", dest)
	if err == nil || !strings.Contains(err.Error(), "unsupported URL scheme") {
		t.Fatalf("expected a scheme error, got %v", err)
	}
}

func TestDownloadAllContinuesOnFailure(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	dir := t.TempDir()
	urls := []string{
		server.URL + "/ok.png",
		server.URL + "/missing",
		server.URL + "/ok.png",
	}

	saved, err := silentDownloader().DownloadAll(context.Background(), urls, dir)
	if err != nil {
		t.Fatalf("DownloadAll() failed: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}

	// Indexed names follow the URL list, so failures leave gaps
	for _, name := range []string{"bg_0.png", "bg_2.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "bg_1.jpg")); !os.IsNotExist(err) {
		t.Error("failed URL produced a file")
	}
}

func TestExtFromURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a.png":        ".png",
		"https://example.com/a.jpeg":       ".jpeg",
		"https://example.com/a.webp":       ".webp",
		"https://example.com/photo":        ".jpg",
		"https://example.com/archive.tar":  ".jpg",
		"https://example.com/a.PNG?w=1024": ".png",
	}

	for url, want := range cases {
		if got := extFromURL(url); got != want {
			t.Errorf("extFromURL(%q) = %q, want %q", url, got, want)
		}
	}
}
