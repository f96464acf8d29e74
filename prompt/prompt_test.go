package prompt

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"cafes", "cafes.txt", nil},
		{"cafes.txt", "cafes.txt", nil},
		{"cafes.csv", "cafes.txt", nil},
		{"  links ", "links.txt", nil},
		{"my.cafes.txt", "", ErrUnknownExtension},
		{"bad|name", "", ErrInvalidCharacter},
		{"what?", "", ErrInvalidCharacter},
		{"a/b", "", ErrInvalidCharacter},
		{"", "", ErrEmptyFilename},
		{".txt", ".txt", nil},
		{".csv", "", ErrEmptyFilename},
	}

	for _, tt := range tests {
		got, err := ValidateFilename(tt.in, ".txt")
		if tt.err != nil {
			require.ErrorIs(t, err, tt.err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		require.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestConsoleAnswers(t *testing.T) {
	in := strings.NewReader("y\nN\nY\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	require.True(t, c.RedoLinks("cafes_links.txt"))
	require.False(t, c.ConfirmRestart(12))
	require.True(t, c.ConfirmRedoAll(40))
	require.False(t, c.AskVerbose(), "exhausted input means no")
	require.Contains(t, out.String(), "continue from link number: 12")
}

func TestConsoleChooseFilenameRetriesUntilValid(t *testing.T) {
	in := strings.NewReader("y\nbad:name\nmy.links.txt\nmylinks\n")
	var out bytes.Buffer
	c := NewConsole(in, &out)

	got := c.ChooseFilename(filepath.Join("data", "cafes_links.txt"))
	require.Equal(t, filepath.Join("data", "mylinks.txt"), got)
	require.Contains(t, out.String(), "invalid character")
	require.Contains(t, out.String(), "unknown extension")
}

func TestConsoleKeepsFilename(t *testing.T) {
	c := NewConsole(strings.NewReader("n\n"), &bytes.Buffer{})
	require.Equal(t, "cafes_links.txt", c.ChooseFilename("cafes_links.txt"))
}

func TestFixed(t *testing.T) {
	require.True(t, Fixed{Answer: true}.ConfirmRestart(3))
	require.False(t, Fixed{}.RedoLinks("x"))
	require.Equal(t, "x.txt", Fixed{Answer: true}.ChooseFilename("x.txt"))
}
