// Package jobfile serves job lists stored as local JSON files.
package jobfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/logging"
)

// DefaultDirs are tried in order, relative to the working directory.
var DefaultDirs = []string{"app", "public", filepath.Join("app", "static")}

// ErrInvalidContent: the first readable candidate is not valid JSON.
var ErrInvalidContent = errors.New("job file is not valid json")

type Lookup struct {
	dirs []string
	log  *logging.Logger
}

func NewLookup(dirs []string, log *logging.Logger) *Lookup {
	if len(dirs) == 0 {
		dirs = DefaultDirs
	}
	return &Lookup{dirs: dirs, log: log}
}

// Find returns the parsed content of <dir>/<name>.json from the first
// candidate directory that has a readable file. Later directories are not
// consulted once a file is found.
func (l *Lookup) Find(name string) (json.RawMessage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("filename is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, apperr.Validation("invalid filename")
	}

	for _, dir := range l.dirs {
		path := filepath.Join(dir, name+".json")
		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Debug("job file candidate missed", "path", path, "err", err)
			continue
		}
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidContent, path)
		}
		return json.RawMessage(data), nil
	}
	return nil, apperr.NotFound(name + ".json")
}
