package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"cafe-scraper/models"
)

// ResumeIndex returns the number of links already handled according to the
// output table at path: the ID of its last row. A missing, empty or
// header-only file gives 0.
func ResumeIndex(path string) (int, error) {
	rows, err := readRows(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, nil
	}

	idCol, err := columnIndex(rows[0], "ID")
	if err != nil {
		return 0, fmt.Errorf("csv: %s: %w", path, err)
	}
	last := rows[len(rows)-1]
	if idCol >= len(last) {
		return 0, fmt.Errorf("csv: %s: last row has no ID column", path)
	}
	id, err := strconv.Atoi(last[idCol])
	if err != nil {
		return 0, fmt.Errorf("csv: %s: last row ID %q: %w", path, last[idCol], err)
	}
	return id, nil
}

// ReadRecords loads every record of the output table at path.
func ReadRecords(path string) ([]*models.CafeRecord, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv: %s: missing column %q", path, name)
		}
	}

	records := make([]*models.CafeRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		get := func(name string) string {
			if i := cols[name]; i < len(row) {
				return row[i]
			}
			return ""
		}

		id, err := strconv.Atoi(get("ID"))
		if err != nil {
			return nil, fmt.Errorf("csv: %s: row %d: bad ID: %w", path, n+2, err)
		}
		records = append(records, &models.CafeRecord{
			ID:             id,
			Name:           get("Name"),
			Link:           get("Link"),
			City:           get("City"),
			Street:         get("Street"),
			Opening:        get("Opening"),
			Postcode:       get("Postcode"),
			URLLocation:    get("Url Location"),
			Wifi:           get("Wifi"),
			LaptopFriendly: get("Laptop Friendly"),
			PetFriendly:    get("Pet Friendly"),
			Latitude:       parseCoordinate(get("Latitude")),
			Longitude:      parseCoordinate(get("Longitude")),
		})
	}
	return records, nil
}

// Remove deletes the file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("missing column %q", name)
}

func parseCoordinate(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
