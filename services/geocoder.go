package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"cafe-scraper/config"
	"cafe-scraper/utils"
)

// Coordinates is a geocoded position.
type Coordinates struct {
	Lat float64
	Lon float64
}

// GeocodeQuery is the address to look up. Street and City are optional; when
// either is missing only the postcode is sent.
type GeocodeQuery struct {
	Postcode string
	Street   string
	City     string
	Country  string
}

// GeocodeService resolves an address to coordinates. A nil result with a nil
// error means the address could not be located.
type GeocodeService interface {
	Geocode(ctx context.Context, q GeocodeQuery) (*Coordinates, error)
}

type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupEmpty
	lookupMalformed
)

// Geocoder queries a Nominatim compatible search endpoint.
type Geocoder struct {
	client     *resty.Client
	baseURL    string
	country    string
	retryDelay time.Duration
	logger     *utils.Logger
	pacer      *utils.Pacer
}

// NewGeocoder creates a Geocoder from cfg. The User-Agent header comes from
// OSM_USER_AGENT; Nominatim rejects anonymous clients.
func NewGeocoder(cfg *config.Config, logger *utils.Logger, pacer *utils.Pacer) *Geocoder {
	client := resty.New()
	if cfg.GeocoderUserAgent != "" {
		client.SetHeader("User-Agent", cfg.GeocoderUserAgent)
	} else {
		logger.Warn("[geocode] OSM_USER_AGENT is not set, lookups may be refused")
	}
	client.SetHeader("Accept-Language", "en")

	return &Geocoder{
		client:     client,
		baseURL:    cfg.GeocoderURL,
		country:    cfg.GeocoderCountry,
		retryDelay: cfg.GeocodeRetryDelay,
		logger:     logger,
		pacer:      pacer,
	}
}

// Geocode looks up q. With street and city present the full address is tried
// first; if that comes back empty the lookup is repeated once with the
// postcode alone after a short pause. Malformed responses are logged and give
// no coordinates without a retry. Only transport failures return an error.
func (g *Geocoder) Geocode(ctx context.Context, q GeocodeQuery) (*Coordinates, error) {
	country := q.Country
	if country == "" {
		country = g.country
	}

	attempts := make([]map[string]string, 0, 2)
	if q.Street != "" && q.City != "" {
		attempts = append(attempts, map[string]string{
			"street":         q.Street,
			"city":           q.City,
			"country":        country,
			"postalcode":     q.Postcode,
			"format":         "json",
			"addressdetails": "1",
		})
	}
	attempts = append(attempts, map[string]string{
		"postalcode":     q.Postcode,
		"format":         "json",
		"addressdetails": "1",
	})

	for i, params := range attempts {
		if i > 0 {
			g.logger.Debug("[geocode] no match for full address, retrying with postcode %q", q.Postcode)
			g.pacer.Wait("geocode fallback", g.retryDelay)
		}

		coords, outcome, err := g.lookup(ctx, params)
		if err != nil {
			return nil, err
		}
		switch outcome {
		case lookupFound:
			return coords, nil
		case lookupMalformed:
			return nil, nil
		}
	}

	return nil, nil
}

func (g *Geocoder) lookup(ctx context.Context, params map[string]string) (*Coordinates, lookupOutcome, error) {
	res, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(g.baseURL)
	if err != nil {
		return nil, lookupMalformed, fmt.Errorf("geocode: request: %w", err)
	}

	body := res.Body()
	if !res.IsSuccess() {
		g.logger.Warn("[geocode] unexpected status %d, raw response:\n%s", res.StatusCode(), string(body))
		return nil, lookupMalformed, nil
	}

	var results []struct {
		Lat *string `json:"lat"`
		Lon *string `json:"lon"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		g.logger.Warn("[geocode] failed to parse JSON: %v, raw response:\n%s", err, string(body))
		return nil, lookupMalformed, nil
	}
	if len(results) == 0 {
		return nil, lookupEmpty, nil
	}

	first := results[0]
	if first.Lat == nil || first.Lon == nil {
		g.logger.Warn("[geocode] response has no lat/lon fields, please review:\n%s", indentJSON(body))
		return nil, lookupMalformed, nil
	}
	lat, latErr := strconv.ParseFloat(*first.Lat, 64)
	lon, lonErr := strconv.ParseFloat(*first.Lon, 64)
	if latErr != nil || lonErr != nil {
		g.logger.Warn("[geocode] lat/lon are not numbers, please review:\n%s", indentJSON(body))
		return nil, lookupMalformed, nil
	}

	return &Coordinates{Lat: lat, Lon: lon}, lookupFound, nil
}

func indentJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "    "); err != nil {
		return string(body)
	}
	return buf.String()
}
