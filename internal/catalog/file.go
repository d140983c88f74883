package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"fqc-report-go/internal/classify"
)

var ErrUnknownFormat = errors.New("unknown catalog file format")

// File is the on-disk shape of a catalog:
//
//	categories:
//	  - name: casting
//	    title: CASTING
//	    keywords: [DUST INSIDE RESIN, MICRO BUBBLES]
//	display_order: [shell, casting]
//
// DisplayOrder is optional and only changes the report layout.
type File struct {
	Categories   []classify.Category `yaml:"categories" toml:"categories"`
	DisplayOrder []string            `yaml:"display_order,omitempty" toml:"display_order,omitempty"`
}

// LoadFile reads a catalog from a .yaml/.yml or .toml file.
func LoadFile(path string) (*classify.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes catalog bytes; ext selects the decoder (".yaml", ".yml", ".toml").
func Parse(data []byte, ext string) (*classify.Catalog, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml catalog: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse toml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	cat, err := classify.NewCatalog(f.Categories...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if len(f.DisplayOrder) > 0 {
		if cat, err = cat.WithDisplayOrder(f.DisplayOrder...); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
	}
	return cat, nil
}

// Resolve returns a built-in variant by name, otherwise loads the file at
// nameOrPath. Empty means Standard.
func Resolve(nameOrPath string) (*classify.Catalog, error) {
	key := strings.TrimSpace(nameOrPath)
	if key == "" {
		key = Standard
	}
	if c, ok := Builtin(strings.ToLower(key)); ok {
		return c, nil
	}
	return LoadFile(key)
}

// Marshal renders a catalog as YAML, the format `fqc catalog` prints.
func Marshal(c *classify.Catalog) ([]byte, error) {
	f := File{Categories: c.Categories()}
	if display := c.DisplayNames(); !slices.Equal(display, c.Names()) {
		f.DisplayOrder = display
	}
	return yaml.Marshal(f)
}
