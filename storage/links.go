package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoLinks is returned when a link file holds no links.
var ErrNoLinks = errors.New("link file is empty")

// ReadLinks loads the link file at path, one URL per line, in file order.
// Blank lines are ignored.
func ReadLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("links: open %s: %w", path, err)
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			links = append(links, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("links: read %s: %w", path, err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("links: %s: %w", path, ErrNoLinks)
	}
	return links, nil
}

// WriteLinks replaces the link file at path with links, one per line. The
// file is written under a temporary name and renamed into place so an
// interrupted write never leaves a truncated list behind.
func WriteLinks(path string, links []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("links: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".links-*.tmp")
	if err != nil {
		return fmt.Errorf("links: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, link := range links {
		if _, err := w.WriteString(link + "\n"); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("links: write: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("links: flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("links: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("links: rename into place: %w", err)
	}
	return nil
}
