package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"cafe-scraper/models"
	"cafe-scraper/utils"
)

func sampleRecords() []*models.CafeRecord {
	lat, lon := 51.5, -0.1
	return []*models.CafeRecord{
		{ID: 1, Name: "A", City: "London", Wifi: models.WifiMarker, Latitude: &lat, Longitude: &lon},
		{ID: 2, Name: "B", City: "London", Opening: "Monday - Friday: 9-5|Saturday - Sunday: 10-4"},
		{ID: 3, City: "Bristol", PetFriendly: models.PetFriendlyMarker, LaptopFriendly: models.LaptopFriendlyMarker},
		{ID: 5, Name: "E"},
	}
}

func TestReportCounts(t *testing.T) {
	svc := NewReportService(utils.NewLoggerTo(&bytes.Buffer{}, false))
	r := svc.Generate(sampleRecords())

	require.Equal(t, 4, r.TotalCafes)
	require.Equal(t, 3, r.WithName)
	require.Equal(t, 1, r.WithOpening)
	require.Equal(t, 1, r.Wifi)
	require.Equal(t, 1, r.LaptopFriendly)
	require.Equal(t, 1, r.PetFriendly)
	require.Equal(t, 1, r.Geocoded)
	require.Equal(t, map[string]int{"London": 2, "Bristol": 1}, r.CafesByCity)
}

func TestTopCitiesOrdering(t *testing.T) {
	r := &models.Report{CafesByCity: map[string]int{"York": 1, "Bath": 1, "London": 5}}

	require.Equal(t, []CityCount{{"London", 5}, {"Bath", 1}, {"York", 1}}, TopCities(r, 10))
	require.Equal(t, []CityCount{{"London", 5}}, TopCities(r, 1))
}

func TestReportPrint(t *testing.T) {
	svc := NewReportService(utils.NewLoggerTo(&bytes.Buffer{}, false))
	var out bytes.Buffer
	svc.Print(&out, svc.Generate(sampleRecords()))
	svc.PrintSummary(&out, models.RunSummary{TotalLinks: 5, EndIndex: 5, Written: 4, Skipped: 1})

	require.Contains(t, out.String(), "London")
	require.Contains(t, out.String(), "Geocoded")
	require.Contains(t, out.String(), "Skipped")
}
