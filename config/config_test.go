package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("RECORD_DELAY_MS", "")
	t.Setenv("HEADLESS", "")

	cfg := Load()
	require.Equal(t, "https://europeancoffeetrip.com/uk/", cfg.SiteURL)
	require.Equal(t, "cg-more", cfg.LoadMoreID)
	require.Equal(t, 2*time.Second, cfg.RecordDelay)
	require.Equal(t, 10*time.Second, cfg.ElementTimeout)
	require.True(t, cfg.Headless)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OUTPUT_FILE", "out.csv")
	t.Setenv("RECORD_DELAY_MS", "250")
	t.Setenv("VERBOSE", "yes")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load()
	require.Equal(t, "out.csv", cfg.OutputFile)
	require.Equal(t, 250*time.Millisecond, cfg.RecordDelay)
	require.True(t, cfg.Verbose)
	require.Equal(t, 3, cfg.MaxRetries)
}
