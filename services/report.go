package services

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"cafe-scraper/models"
	"cafe-scraper/utils"
)

const topCities = 10

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

func (s *ReportService) Generate(records []*models.CafeRecord) *models.Report {
	report := &models.Report{
		CafesByCity: make(map[string]int),
	}

	for _, r := range records {
		report.TotalCafes++
		if r.Name != "" {
			report.WithName++
		}
		if r.Opening != "" {
			report.WithOpening++
		}
		if r.Wifi != "" {
			report.Wifi++
		}
		if r.LaptopFriendly != "" {
			report.LaptopFriendly++
		}
		if r.PetFriendly != "" {
			report.PetFriendly++
		}
		if r.HasCoordinates() {
			report.Geocoded++
		}
		if r.City != "" {
			report.CafesByCity[r.City]++
		}
	}

	s.logger.Debug("[report] %d cafes across %d cities", report.TotalCafes, len(report.CafesByCity))
	return report
}

// Print renders the report as two tables: field coverage and the busiest cities.
func (s *ReportService) Print(w io.Writer, r *models.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Cafe Extraction Report")
	t.AppendHeader(table.Row{"Field", "Cafes", "Share"})
	t.AppendRows([]table.Row{
		{"Total", r.TotalCafes, percent(r.TotalCafes, r.TotalCafes)},
		{"Name", r.WithName, percent(r.WithName, r.TotalCafes)},
		{"Opening times", r.WithOpening, percent(r.WithOpening, r.TotalCafes)},
		{"Free Wi-Fi", r.Wifi, percent(r.Wifi, r.TotalCafes)},
		{"Laptop friendly", r.LaptopFriendly, percent(r.LaptopFriendly, r.TotalCafes)},
		{"Pet friendly", r.PetFriendly, percent(r.PetFriendly, r.TotalCafes)},
		{"Geocoded", r.Geocoded, percent(r.Geocoded, r.TotalCafes)},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	cities := table.NewWriter()
	cities.SetOutputMirror(w)
	cities.SetTitle("Cafes by City")
	cities.AppendHeader(table.Row{"City", "Cafes"})
	for _, cc := range TopCities(r, topCities) {
		cities.AppendRow(table.Row{cc.City, cc.Count})
	}
	cities.SetStyle(table.StyleRounded)
	cities.Render()
}

// PrintSummary renders the outcome of one extraction run.
func (s *ReportService) PrintSummary(w io.Writer, sum models.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Run Summary")
	t.AppendRows([]table.Row{
		{"Links", sum.TotalLinks},
		{"Resumed at", sum.StartIndex},
		{"Stopped at", sum.EndIndex},
		{"Written", sum.Written},
		{"Skipped", sum.Skipped},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

type CityCount struct {
	City  string
	Count int
}

// TopCities returns at most n cities ordered by cafe count, ties by name.
func TopCities(r *models.Report, n int) []CityCount {
	counts := make([]CityCount, 0, len(r.CafesByCity))
	for city, count := range r.CafesByCity {
		counts = append(counts, CityCount{City: city, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].City < counts[j].City
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

func percent(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
