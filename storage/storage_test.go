package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cafe-scraper/models"
)

func record(id int) *models.CafeRecord {
	return &models.CafeRecord{
		ID:       id,
		Name:     "Cafe, With Comma",
		Link:     "https://europeancoffeetrip.com/cafe/x",
		City:     "London",
		Postcode: "E1 6SB",
		Opening:  "Monday - Friday: 9-5|Saturday - Sunday: 10-4",
		Wifi:     models.WifiMarker,
	}
}

func TestResumeIndexMissingFile(t *testing.T) {
	idx, err := ResumeIndex(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestCSVWriterHeaderOnceAndResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cafes.csv")

	w, err := OpenCSVWriter(path)
	require.NoError(t, err)

	idx, err := ResumeIndex(path)
	require.NoError(t, err)
	require.Equal(t, 0, idx, "header-only file resumes at 0")

	require.NoError(t, w.Append(record(1)))
	require.NoError(t, w.Append(record(2)))
	require.NoError(t, w.Close())

	// Reopening must not write a second header.
	w, err = OpenCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(record(4)))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "ID,Name,Link"))

	idx, err = ResumeIndex(path)
	require.NoError(t, err)
	require.Equal(t, 4, idx)
}

func TestAppendIsDurableBeforeClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.csv")
	w, err := OpenCSVWriter(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Append(record(7)))

	idx, err := ResumeIndex(path)
	require.NoError(t, err)
	require.Equal(t, 7, idx)
}

func TestReadRecordsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.csv")
	w, err := OpenCSVWriter(path)
	require.NoError(t, err)

	lat, lon := 51.5246, -0.0754
	geocoded := record(1)
	geocoded.Latitude, geocoded.Longitude = &lat, &lon
	require.NoError(t, w.Append(geocoded))
	require.NoError(t, w.Append(record(2)))
	require.NoError(t, w.Close())

	records, err := ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, geocoded, records[0])
	require.Equal(t, "Cafe, With Comma", records[1].Name)
	require.Nil(t, records[1].Latitude)
}

func TestResumeIndexRejectsCorruptID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(Header, ",")+"\nabc,x\n"), 0644))

	_, err := ResumeIndex(path)
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.True(t, Exists(path))

	require.NoError(t, Remove(path))
	require.False(t, Exists(path))
	require.NoError(t, Remove(path), "removing a missing file is fine")
}

func TestLinksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes_links.txt")
	links := []string{
		"https://europeancoffeetrip.com/cafe/a",
		"https://europeancoffeetrip.com/cafe/b",
		"https://europeancoffeetrip.com/cafe/a",
	}

	require.NoError(t, WriteLinks(path, links))
	got, err := ReadLinks(path)
	require.NoError(t, err)
	require.Equal(t, links, got)

	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))
	_, err = ReadLinks(path)
	require.ErrorIs(t, err, ErrNoLinks)
}
