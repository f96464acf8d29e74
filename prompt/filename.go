package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCharacter = errors.New("invalid character in filename")
	ErrUnknownExtension = errors.New("filename invalid - unknown extension")
	ErrEmptyFilename    = errors.New("filename is empty")
)

const reservedCharacters = "<>:\"/\\|?*\x00"

// ValidateFilename checks a user supplied filename and forces ext (".txt",
// ".csv") onto it. Names with reserved characters or more than one dot are
// rejected; a different extension is replaced and a missing one appended.
func ValidateFilename(name, ext string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyFilename
	}
	if i := strings.IndexAny(name, reservedCharacters); i >= 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCharacter, name[i])
	}

	switch strings.Count(name, ".") {
	case 0:
		return name + ext, nil
	case 1:
		if strings.HasSuffix(name, ext) {
			return name, nil
		}
		base := name[:strings.Index(name, ".")]
		if base == "" {
			return "", ErrEmptyFilename
		}
		return base + ext, nil
	default:
		return "", ErrUnknownExtension
	}
}
