package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cafe-scraper/config"
	"cafe-scraper/utils"
)

type geocodeServer struct {
	mu      sync.Mutex
	queries []url.Values
	agents  []string
	respond func(q url.Values) (int, string)
	server  *httptest.Server
}

func newGeocodeServer(t *testing.T, respond func(q url.Values) (int, string)) *geocodeServer {
	gs := &geocodeServer{respond: respond}
	gs.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs.mu.Lock()
		gs.queries = append(gs.queries, r.URL.Query())
		gs.agents = append(gs.agents, r.Header.Get("User-Agent"))
		gs.mu.Unlock()

		status, body := gs.respond(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(gs.server.Close)
	return gs
}

func newTestGeocoder(t *testing.T, baseURL string, logs *bytes.Buffer) (*Geocoder, *[]time.Duration) {
	t.Helper()
	var slept []time.Duration
	logger := utils.NewLoggerTo(logs, true)
	cfg := &config.Config{
		GeocoderURL:       baseURL,
		GeocoderUserAgent: "cafe-scraper-test/1.0",
		GeocoderCountry:   "UK",
		GeocodeRetryDelay: time.Second,
	}
	pacer := utils.NewPacer(logger, func(d time.Duration) { slept = append(slept, d) })
	return NewGeocoder(cfg, logger, pacer), &slept
}

func fullQuery() GeocodeQuery {
	return GeocodeQuery{Postcode: "E1 6SB", Street: "12 Redchurch Street", City: "Shoreditch"}
}

func TestGeocodeFullAddress(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) {
		return http.StatusOK, `[{"lat":"51.5246","lon":"-0.0754","display_name":"x"}]`
	})
	g, slept := newTestGeocoder(t, gs.server.URL, &bytes.Buffer{})

	coords, err := g.Geocode(context.Background(), fullQuery())
	require.NoError(t, err)
	require.Equal(t, &Coordinates{Lat: 51.5246, Lon: -0.0754}, coords)
	require.Empty(t, *slept)

	require.Len(t, gs.queries, 1)
	q := gs.queries[0]
	require.Equal(t, "12 Redchurch Street", q.Get("street"))
	require.Equal(t, "Shoreditch", q.Get("city"))
	require.Equal(t, "UK", q.Get("country"))
	require.Equal(t, "E1 6SB", q.Get("postalcode"))
	require.Equal(t, "json", q.Get("format"))
	require.Equal(t, "1", q.Get("addressdetails"))
	require.Equal(t, "cafe-scraper-test/1.0", gs.agents[0])
}

func TestGeocodeFallsBackToPostcodeOnce(t *testing.T) {
	gs := newGeocodeServer(t, func(q url.Values) (int, string) {
		if q.Get("street") != "" {
			return http.StatusOK, `[]`
		}
		return http.StatusOK, `[{"lat":"51.52","lon":"-0.07"}]`
	})
	g, slept := newTestGeocoder(t, gs.server.URL, &bytes.Buffer{})

	coords, err := g.Geocode(context.Background(), fullQuery())
	require.NoError(t, err)
	require.Equal(t, &Coordinates{Lat: 51.52, Lon: -0.07}, coords)
	require.Equal(t, []time.Duration{time.Second}, *slept)

	require.Len(t, gs.queries, 2)
	fallback := gs.queries[1]
	require.Equal(t, "E1 6SB", fallback.Get("postalcode"))
	require.False(t, fallback.Has("street"))
	require.False(t, fallback.Has("city"))
	require.False(t, fallback.Has("country"))
}

func TestGeocodeFallbackNeverRecurses(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) {
		return http.StatusOK, `[]`
	})
	g, _ := newTestGeocoder(t, gs.server.URL, &bytes.Buffer{})

	coords, err := g.Geocode(context.Background(), fullQuery())
	require.NoError(t, err)
	require.Nil(t, coords)
	require.Len(t, gs.queries, 2)
}

func TestGeocodePostcodeOnlyEmptyDoesNotRetry(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) {
		return http.StatusOK, `[]`
	})
	g, slept := newTestGeocoder(t, gs.server.URL, &bytes.Buffer{})

	coords, err := g.Geocode(context.Background(), GeocodeQuery{Postcode: "E1 6SB"})
	require.NoError(t, err)
	require.Nil(t, coords)
	require.Len(t, gs.queries, 1)
	require.Empty(t, *slept)
}

func TestGeocodeMalformedResponse(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) {
		return http.StatusOK, `<html>rate limited</html>`
	})
	var logs bytes.Buffer
	g, _ := newTestGeocoder(t, gs.server.URL, &logs)

	coords, err := g.Geocode(context.Background(), fullQuery())
	require.NoError(t, err)
	require.Nil(t, coords)
	require.Len(t, gs.queries, 1, "malformed responses must not be retried")
	require.Contains(t, logs.String(), "<html>rate limited</html>")
}

func TestGeocodeMissingCoordinateFields(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) {
		return http.StatusOK, `[{"latitude":"51.5","longitude":"-0.1"}]`
	})
	var logs bytes.Buffer
	g, _ := newTestGeocoder(t, gs.server.URL, &logs)

	coords, err := g.Geocode(context.Background(), fullQuery())
	require.NoError(t, err)
	require.Nil(t, coords)
	require.Len(t, gs.queries, 1)
	require.Contains(t, logs.String(), "latitude")
}

func TestGeocodeTransportError(t *testing.T) {
	gs := newGeocodeServer(t, func(url.Values) (int, string) { return http.StatusOK, `[]` })
	g, _ := newTestGeocoder(t, gs.server.URL, &bytes.Buffer{})
	gs.server.Close()

	_, err := g.Geocode(context.Background(), fullQuery())
	require.Error(t, err)
}
