package classify

import (
	"fmt"
	"strings"
)

// Other is the catch-all category for reasons no catalog entry claims.
const Other = "other"

// Category is one named keyword set. Title is used for report headings and
// defaults to the upper-cased name.
type Category struct {
	Name     string   `yaml:"name" toml:"name" json:"name"`
	Title    string   `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Keywords []string `yaml:"keywords" toml:"keywords" json:"keywords"`
}

// Catalog is an ordered, immutable list of categories with normalized
// keywords. Order is the tie-break priority during classification; reports
// may list the categories in a separate display order.
type Catalog struct {
	categories []Category
	display    []string
}

// NewCatalog validates and normalizes the given categories. Blank and
// duplicate keywords are dropped; duplicate names and the reserved name
// "other" are rejected.
func NewCatalog(categories ...Category) (*Catalog, error) {
	seen := make(map[string]bool, len(categories))
	out := make([]Category, 0, len(categories))
	for i, c := range categories {
		name := Normalize(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d: empty name", i)
		}
		if name == Other {
			return nil, fmt.Errorf("category %q: name is reserved", c.Name)
		}
		if seen[name] {
			return nil, fmt.Errorf("category %q: duplicate name", c.Name)
		}
		seen[name] = true

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = strings.ToUpper(name)
		}

		kwSeen := map[string]bool{}
		keywords := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			n := Normalize(kw)
			if n == "" || kwSeen[n] {
				continue
			}
			kwSeen[n] = true
			keywords = append(keywords, n)
		}
		out = append(out, Category{Name: name, Title: title, Keywords: keywords})
	}
	return &Catalog{categories: out}, nil
}

// MustCatalog is NewCatalog for static tables known to be valid.
func MustCatalog(categories ...Category) *Catalog {
	c, err := NewCatalog(categories...)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns a copy of the categories in priority order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		cat.Keywords = append([]string(nil), cat.Keywords...)
		out[i] = cat
	}
	return out
}

// Names returns category names in priority order, without "other".
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Title returns the heading for a category name; "other" maps to OTHER.
func (c *Catalog) Title(name string) string {
	if c != nil {
		for _, cat := range c.categories {
			if cat.Name == name {
				return cat.Title
			}
		}
	}
	return strings.ToUpper(name)
}

// WithDisplayOrder returns a copy of c whose reports list categories in the
// given order. Unlisted categories follow in priority order. Classification
// is unaffected.
func (c *Catalog) WithDisplayOrder(names ...string) (*Catalog, error) {
	known := map[string]bool{}
	for _, n := range c.Names() {
		known[n] = true
	}
	seen := map[string]bool{}
	display := make([]string, 0, c.Len())
	for _, raw := range names {
		n := Normalize(raw)
		switch {
		case n == Other:
			return nil, fmt.Errorf("display order: %q is always last", raw)
		case !known[n]:
			return nil, fmt.Errorf("display order: unknown category %q", raw)
		case seen[n]:
			return nil, fmt.Errorf("display order: duplicate category %q", raw)
		}
		seen[n] = true
		display = append(display, n)
	}
	for _, n := range c.Names() {
		if !seen[n] {
			display = append(display, n)
		}
	}
	return &Catalog{categories: c.Categories(), display: display}, nil
}

// DisplayNames returns category names in report order, without "other".
func (c *Catalog) DisplayNames() []string {
	if c == nil || c.display == nil {
		return c.Names()
	}
	return append([]string(nil), c.display...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.categories)
}
