package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BrowserUserAgent is sent by the headless browser and by plain page fetches so
// both look like the same desktop client.
const BrowserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds all pipeline configuration loaded from environment variables.
// It is passed explicitly into every component; nothing reads the environment
// after Load returns.
type Config struct {
	SiteURL             string
	LoadMoreID          string
	InitialContainerID  string
	ExpandedContainerID string
	ListingPrefix       string

	NameClass     string
	AddressClass  string
	OpeningClass  string
	ServicesClass string

	LinksFile  string
	OutputFile string

	ElementTimeout    time.Duration
	UIDelay           time.Duration
	RecordDelay       time.Duration
	GeocodeRetryDelay time.Duration
	GeocoderURL       string
	GeocoderUserAgent string
	GeocoderCountry   string
	MaxRetries        int
	ChromeBin         string
	Headless          bool
	Verbose           bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SiteURL:             getEnv("SITE_URL", "https://europeancoffeetrip.com/uk/"),
		LoadMoreID:          getEnv("LOAD_MORE_ID", "cg-more"),
		InitialContainerID:  getEnv("INITIAL_CONTAINER_ID", "first-cafes"),
		ExpandedContainerID: getEnv("EXPANDED_CONTAINER_ID", "rest-cafes"),
		ListingPrefix:       getEnv("LISTING_PREFIX", "https://europeancoffeetrip.com/cafe/"),

		NameClass:     getEnv("NAME_CLASS", "cafe-name"),
		AddressClass:  getEnv("ADDRESS_CLASS", "cafe-address"),
		OpeningClass:  getEnv("OPENING_CLASS", "cafe-open"),
		ServicesClass: getEnv("SERVICES_CLASS", "cafe-services"),

		LinksFile:  getEnv("LINKS_FILE", "cafes_links.txt"),
		OutputFile: getEnv("OUTPUT_FILE", "all_cafes_csv.csv"),

		ElementTimeout:    getEnvDuration("ELEMENT_TIMEOUT_MS", 10000),
		UIDelay:           getEnvDuration("UI_DELAY_MS", 3000),
		RecordDelay:       getEnvDuration("RECORD_DELAY_MS", 2000),
		GeocodeRetryDelay: getEnvDuration("GEOCODE_RETRY_DELAY_MS", 1000),
		GeocoderURL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderUserAgent: getEnv("OSM_USER_AGENT", ""),
		GeocoderCountry:   getEnv("GEOCODER_COUNTRY", "UK"),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		ChromeBin:         getEnv("CHROME_BIN", ""),
		Headless:          getEnvBool("HEADLESS", true),
		Verbose:           getEnvBool("VERBOSE", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("[config] Invalid int for %s=%q, using default %d", key, val, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "":
		return fallback
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		log.Printf("[config] Invalid bool for %s, using default %t", key, fallback)
		return fallback
	}
}

// getEnvDuration reads a millisecond count.
func getEnvDuration(key string, fallbackMs int) time.Duration {
	ms := getEnvInt(key, fallbackMs)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}
