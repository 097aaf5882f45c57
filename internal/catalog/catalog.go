// Package catalog holds the list of available converters and calculators,
// grouped by category and searchable by keyword.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"convertkit.dev/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Category groups related entries.
type Category struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Entry is one converter or calculator. Domain is empty for calculators.
type Entry struct {
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Path        string        `yaml:"path" json:"path"`
	Category    string        `yaml:"category" json:"category"`
	Domain      domain.Domain `yaml:"domain" json:"domain,omitempty"`
	Keywords    []string      `yaml:"keywords" json:"keywords"`
}

// Matches reports whether the lowercased query is a substring of the title,
// the description or any keyword.
func (e Entry) Matches(query string) bool {
	if strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.Contains(strings.ToLower(k), query) {
			return true
		}
	}
	return false
}

type Catalog struct {
	categories []Category
	entries    []Entry
}

func LoadDefault() (*Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// Load parses a catalog document. Every entry must reference a declared
// category and titles must be unique.
func Load(r io.Reader) (*Catalog, error) {
	const op = "load catalog"

	var doc struct {
		Categories []Category `yaml:"categories"`
		Entries    []Entry    `yaml:"entries"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &domain.Error{Op: op, Kind: domain.KindInvalidTable, Err: err}
	}

	slugs := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.Slug == "" || slugs[c.Slug] {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("bad or duplicate category slug %q", c.Slug))
		}
		slugs[c.Slug] = true
	}

	titles := make(map[string]bool, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.Title == "" || titles[e.Title] {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("bad or duplicate entry title %q", e.Title))
		}
		titles[e.Title] = true
		if !slugs[e.Category] {
			return nil, domain.NewError(op, domain.KindInvalidTable, "", fmt.Sprintf("entry %q has unknown category %q", e.Title, e.Category))
		}
		if e.Domain != "" {
			if _, err := domain.ParseDomain(string(e.Domain)); err != nil {
				return nil, &domain.Error{Op: op, Kind: domain.KindInvalidTable, Err: err}
			}
		}
	}

	return &Catalog{categories: doc.Categories, entries: doc.Entries}, nil
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Category returns the category with the given slug.
func (c *Catalog) Category(slug string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return Category{}, false
}

// ByCategory lists the entries of one category in catalog order. An unknown
// slug is an unknown_domain error.
func (c *Catalog) ByCategory(slug string) ([]Entry, error) {
	if _, ok := c.Category(slug); !ok {
		return nil, domain.NewError("list category", domain.KindUnknownDomain, "category", slug)
	}
	var out []Entry
	for _, e := range c.entries {
		if e.Category == slug {
			out = append(out, e)
		}
	}
	return out, nil
}

// Search returns the entries matching query, case-insensitively, in catalog
// order. A blank query returns the full catalog.
func (c *Catalog) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Entries()
	}
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Matches(q) {
			out = append(out, e)
		}
	}
	return out
}
