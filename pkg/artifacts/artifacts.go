// Package artifacts stores diagnostic files, mostly page screenshots, in the
// log directory so a failed run can be inspected afterwards.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store writes artifacts into a single directory. File names are sanitized
// and an existing file with the same name is overwritten.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a Store writing into it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create artifacts directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory artifacts are written to.
func (s *Store) Dir() string { return s.dir }

// Save writes data under the sanitized name and returns the full path.
func (s *Store) Save(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, SanitizeName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint: gosec
		return "", fmt.Errorf("could not write artifact: %w", err)
	}

	return path, nil
}

// SanitizeName maps a free-form name (an e-mail address, a step name) to a
// safe file name: "@" becomes "_", path separators and other unsafe runes
// become "-".
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "artifact"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r == '@':
			return '_'
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}
