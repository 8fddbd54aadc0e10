// Package taxonomy provides the advisory category list shown by the shell.
// Categories stay free-form; the taxonomy only suggests, never restricts.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy is an ordered, deduplicated category list.
type Taxonomy struct {
	categories []string
}

type fileSchema struct {
	Categories []string `yaml:"categories"`
}

// Default returns the built-in category seed.
func Default() *Taxonomy {
	return New([]string{"Food", "Transport", "Housing", "Utilities", "Entertainment", "Other"})
}

func New(categories []string) *Taxonomy {
	return &Taxonomy{categories: dedupe(categories)}
}

// LoadFile reads a YAML taxonomy file of the form:
//
//	categories:
//	  - Food
//	  - Transport
func LoadFile(path string) (*Taxonomy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	var schema fileSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse taxonomy file: %w", err)
	}
	if len(schema.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy file %s lists no categories", path)
	}
	return New(schema.Categories), nil
}

// Categories returns a copy of the category list in file order.
func (t *Taxonomy) Categories() []string {
	return append([]string(nil), t.categories...)
}

// Contains reports whether category matches a known category,
// case-insensitively.
func (t *Taxonomy) Contains(category string) bool {
	for _, c := range t.categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
