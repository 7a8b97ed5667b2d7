package save

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendGdata = "gdata"
)

// Open builds the backend selected by name. path is used by the file backend.
func Open(name, path string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", BackendFile:
		return NewFileBackend(path), nil
	case BackendGdata:
		return OpenGdata("")
	default:
		return nil, fmt.Errorf("save: unknown backend %q (want %s or %s)", name, BackendFile, BackendGdata)
	}
}

// UserPath returns the record file of a named player inside dir. Anything
// that is not a letter, digit, dash or underscore is replaced.
func UserPath(dir, user string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, user)
	if clean == "" {
		clean = "anonymous"
	}
	return filepath.Join(dir, clean+".json")
}
