package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// levelFile mirrors the YAML level format: an explicit ID and title
// wrapping the same textual grid a .txt file holds bare.
type levelFile struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Grid  string `yaml:"grid"`
}

// LoadFile reads one level from disk. A .txt file is a bare grid whose ID
// and title derive from the file name; .yaml/.yml files carry them
// explicitly, with the same file-name fallbacks.
func LoadFile(path string) (Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("read level: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return Source{ID: stem, Title: titleFromID(stem), Text: string(raw)}, nil

	case ".yaml", ".yml":
		var lf levelFile
		if err := yaml.Unmarshal(raw, &lf); err != nil {
			return Source{}, fmt.Errorf("parse level %s: %w", path, err)
		}
		if lf.Grid == "" {
			return Source{}, fmt.Errorf("level %s: missing grid", path)
		}
		if lf.ID == "" {
			lf.ID = stem
		}
		if lf.Title == "" {
			lf.Title = titleFromID(lf.ID)
		}
		return Source{ID: lf.ID, Title: lf.Title, Text: lf.Grid}, nil

	default:
		return Source{}, fmt.Errorf("level %s: unsupported extension", path)
	}
}

// LoadDir loads every level file under the directory, recursively, sorted
// by path so pack ordering follows file naming.
func LoadDir(dir string) ([]Source, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsLevelFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan level directory: %w", err)
	}
	sort.Strings(paths)

	out := make([]Source, 0, len(paths))
	for _, p := range paths {
		src, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// IsLevelFile reports whether the path has a loadable level extension.
func IsLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".yaml", ".yml":
		return true
	}
	return false
}

// titleFromID turns "corner_push" or "corner-push" into "Corner Push".
func titleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
