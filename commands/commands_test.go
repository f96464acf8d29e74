package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cafe-scraper/models"
	"cafe-scraper/storage"
)

func TestReportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cafes.csv")
	w, err := storage.OpenCSVWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(&models.CafeRecord{ID: 1, Name: "A", City: "Brighton", Wifi: models.WifiMarker}))
	require.NoError(t, w.Append(&models.CafeRecord{ID: 2, Name: "B", City: "Brighton"}))
	require.NoError(t, w.Close())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"report", "--output", path, "--no"})
	require.NoError(t, ExecuteContext(context.Background()))

	require.Contains(t, out.String(), "Brighton")
	require.Contains(t, out.String(), "Free Wi-Fi")
}
