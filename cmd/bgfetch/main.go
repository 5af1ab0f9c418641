package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/menta2k/synthgen/pkg/fetch"
)

func main() {
	var out, listPath string

	flag.StringVar(&out, "out", "backgrounds", "destination directory")
	flag.StringVar(&listPath, "list", "", "file with one image URL per line")
	flag.Parse()

	urls := flag.Args()
	if listPath != "" {
		fromFile, err := readURLList(listPath)
		if err != nil {
			log.Fatal(err)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		log.Fatalf("usage: %s [-out dir] [-list urls.txt] url [url...]", filepath.Base(os.Args[0]))
	}

	saved, err := fetch.New().DownloadAll(context.Background(), urls, out)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("saved %d/%d background images to %s", saved, len(urls), out)
	if saved == 0 {
		log.Fatal("no images downloaded")
	}
}

// readURLList reads one URL per line, skipping blanks and # comments
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
