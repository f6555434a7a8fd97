package layouts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned when no layout has the requested ID.
var ErrNotFound = errors.New("layouts: layout not found")

// Loader handles loading user layouts from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// DefaultUserDir returns ~/.arcade/layouts, or empty if home is unavailable.
func DefaultUserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "layouts")
}

// LoadAll recursively scans and loads all layout files.
// Invalid files are skipped. A missing root yields no layouts.
// Returns layouts sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Layout, error) {
	if l.Root == "" {
		return nil, nil
	}
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var out []Layout
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		layout, err := l.LoadFile(path)
		if err != nil {
			log.Warn("skipping layout", "path", path, "err", err)
			return nil
		}
		out = append(out, layout)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("layouts: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadFile loads a single layout file.
func (l *Loader) LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("layouts: reading file %s: %w", path, err)
	}
	layout, err := Parse(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layouts: parsing file %s: %w", path, err)
	}
	layout.FilePath = path
	return layout, nil
}

// LoadByID loads a specific layout by ID.
func (l *Loader) LoadByID(id string) (Layout, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Layout{}, err
	}
	for _, layout := range all {
		if layout.ID == id {
			return layout, nil
		}
	}
	return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all layout IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(all))
	for i, layout := range all {
		ids[i] = layout.ID
	}
	return ids, nil
}

// Catalog returns the built-in layouts followed by the user layouts found
// under userDir. User layouts cannot shadow a built-in ID.
func Catalog(userDir string) ([]Layout, error) {
	out := Builtin()
	user, err := NewLoader(userDir).LoadAll()
	if err != nil {
		return out, err
	}
	for _, layout := range user {
		if _, ok := Get(layout.ID); ok {
			log.Warn("user layout shadows a builtin, skipping", "id", layout.ID, "path", layout.FilePath)
			continue
		}
		out = append(out, layout)
	}
	return out, nil
}

// Resolve finds a layout by ID among the built-ins and the user layouts
// under userDir. An empty ID selects the default layout.
func Resolve(id, userDir string) (Layout, error) {
	if id == "" {
		return Default(), nil
	}
	if layout, ok := Get(id); ok {
		return layout, nil
	}
	if userDir == "" {
		return Layout{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return NewLoader(userDir).LoadByID(id)
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
