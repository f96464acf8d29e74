package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cafe-scraper/config"
	"cafe-scraper/models"
	"cafe-scraper/utils"
)

// Extractor turns the HTML of one cafe page into a CafeRecord. Apart from the
// geocoding lookups it has no side effects.
type Extractor struct {
	cfg      *config.Config
	logger   *utils.Logger
	geocoder GeocodeService
	title    cases.Caser
}

// NewExtractor creates an Extractor that resolves coordinates through geocoder.
func NewExtractor(cfg *config.Config, logger *utils.Logger, geocoder GeocodeService) *Extractor {
	return &Extractor{
		cfg:      cfg,
		logger:   logger,
		geocoder: geocoder,
		title:    cases.Title(language.English),
	}
}

// Extract builds the record with the given 1-based ordinal. Missing fields are
// left empty; only a page without an address block fails, with an error
// wrapping ErrRecordUnavailable.
func (e *Extractor) Extract(ctx context.Context, page string, ordinal int, link string) (*models.CafeRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	record := &models.CafeRecord{ID: ordinal, Link: link}

	e.extractName(doc, record)
	e.extractOpening(doc, record)
	e.extractServices(doc, record)
	if err := e.extractLocation(doc, record); err != nil {
		return nil, err
	}
	e.geocode(ctx, record)

	return record, nil
}

func (e *Extractor) extractName(doc *goquery.Document, record *models.CafeRecord) {
	sel := doc.Find("h1." + e.cfg.NameClass).First()
	if sel.Length() == 0 {
		e.logger.Debug("[extract] #%d no name found", record.ID)
		return
	}
	record.Name = e.title.String(normaliseText(sel.Text()))
	e.logger.Debug("[extract] #%d name: %s", record.ID, record.Name)
}

func (e *Extractor) extractOpening(doc *goquery.Document, record *models.CafeRecord) {
	container := doc.Find("div." + e.cfg.OpeningClass).First()
	if container.Length() == 0 {
		e.logger.Warn("[extract] #%d could not get opening times: no opening table", record.ID)
		return
	}

	var rows []string
	container.Find("tr").Each(func(_ int, row *goquery.Selection) {
		rows = append(rows, joinedText(row, " "))
	})

	opening, err := CompressOpening(rows)
	if err != nil {
		e.logger.Warn("[extract] #%d could not get opening times: %v", record.ID, err)
		return
	}
	record.Opening = opening
	e.logger.Debug("[extract] #%d opening: %s", record.ID, record.Opening)
}

func (e *Extractor) extractServices(doc *goquery.Document, record *models.CafeRecord) {
	container := doc.Find("div." + e.cfg.ServicesClass).First()
	if container.Length() == 0 {
		e.logger.Debug("[extract] #%d no service data available", record.ID)
		return
	}

	container.Find("tr").Each(func(_ int, row *goquery.Selection) {
		applyServiceFlags(joinedText(row, ": "), record)
	})
	e.logger.Debug("[extract] #%d wifi: %q laptop: %q pets: %q",
		record.ID, record.Wifi, record.LaptopFriendly, record.PetFriendly)
}

// applyServiceFlags sets the flags whose marker appears in text. Flags are
// only ever set, never cleared.
func applyServiceFlags(text string, record *models.CafeRecord) {
	if strings.Contains(text, "Free Wi-Fi") {
		record.Wifi = models.WifiMarker
	}
	if strings.Contains(text, "Dog") {
		record.PetFriendly = models.PetFriendlyMarker
	}
	if strings.Contains(text, "Laptop") {
		record.LaptopFriendly = models.LaptopFriendlyMarker
	}
}

func (e *Extractor) extractLocation(doc *goquery.Document, record *models.CafeRecord) error {
	container := doc.Find("div." + e.cfg.AddressClass).First()
	if container.Length() == 0 {
		return fmt.Errorf("extract: #%d has no address block: %w", record.ID, ErrRecordUnavailable)
	}

	addr, ok := ParseAddress(container.Text(), e.cfg.GeocoderCountry)
	if !ok {
		e.logger.Warn("[extract] #%d address %q has no country suffix, leaving it empty",
			record.ID, normaliseText(container.Text()))
		return nil
	}
	record.Street = addr.Street
	record.City = addr.City
	record.Postcode = addr.Postcode

	e.logger.Debug("[extract] #%d postcode: %s city: %s street: %s",
		record.ID, record.Postcode, record.City, record.Street)
	return nil
}

func (e *Extractor) geocode(ctx context.Context, record *models.CafeRecord) {
	var q GeocodeQuery
	switch {
	case record.Street != "" && record.Postcode != "" && record.City != "":
		q = GeocodeQuery{Postcode: record.Postcode, Street: record.Street, City: record.City}
	case record.Postcode != "":
		q = GeocodeQuery{Postcode: record.Postcode}
	default:
		e.logger.Warn("[extract] #%d no address to determine latitude and longitude", record.ID)
		return
	}

	coords, err := e.geocoder.Geocode(ctx, q)
	if err != nil {
		e.logger.Warn("[extract] #%d geocoding failed: %v", record.ID, err)
		return
	}
	if coords == nil {
		e.logger.Debug("[extract] #%d no coordinates found", record.ID)
		return
	}

	lat, lon := coords.Lat, coords.Lon
	record.Latitude = &lat
	record.Longitude = &lon
	e.logger.Debug("[extract] #%d latitude and longitude: %v, %v", record.ID, lat, lon)
}
