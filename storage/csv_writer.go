package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"cafe-scraper/models"
)

// Header is the fixed column layout of the output table.
var Header = []string{
	"ID", "Name", "Link", "City", "Street", "Opening", "Postcode", "Url Location",
	"Wifi", "Laptop Friendly", "Pet Friendly", "Latitude", "Longitude",
}

// CSVWriter appends cafe records to the output table. The header is written
// only when the file is created (or found empty); every Append is flushed and
// synced to disk before it returns.
type CSVWriter struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// OpenCSVWriter opens path for appending, creating it and any intermediate
// directories if needed.
func OpenCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("csv: open file %q: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: stat file %q: %w", path, err)
	}

	c := &CSVWriter{path: path, file: f, writer: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := c.writeRow(Header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("csv: write header: %w", err)
		}
	}
	return c, nil
}

// Append writes one record and makes it durable.
func (c *CSVWriter) Append(record *models.CafeRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writeRow(recordRow(record)); err != nil {
		return fmt.Errorf("csv: write record %d: %w", record.ID, err)
	}
	return nil
}

func (c *CSVWriter) writeRow(row []string) error {
	if err := c.writer.Write(row); err != nil {
		return err
	}
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return err
	}
	return c.file.Sync()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	return c.file.Close()
}

func recordRow(r *models.CafeRecord) []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Name,
		r.Link,
		r.City,
		r.Street,
		r.Opening,
		r.Postcode,
		r.URLLocation,
		r.Wifi,
		r.LaptopFriendly,
		r.PetFriendly,
		formatCoordinate(r.Latitude),
		formatCoordinate(r.Longitude),
	}
}

func formatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
