package cv

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Template is one CV layout offered by the generator.
type Template struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Free bool   `json:"free" yaml:"free"`
}

// Catalog is the ordered, read-only set of templates.
type Catalog struct {
	templates []Template
	byID      map[string]Template
}

func DefaultCatalog() *Catalog {
	c, _ := NewCatalog([]Template{
		{ID: "template1", Name: "Klassisk", Free: true},
		{ID: "template2", Name: "Modern"},
		{ID: "template3", Name: "Kreativ"},
		{ID: "template4", Name: "Professionell"},
	})
	return c
}

func NewCatalog(templates []Template) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, errors.New("template catalog is empty")
	}
	c := &Catalog{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		t.ID = strings.TrimSpace(t.ID)
		if t.ID == "" {
			return nil, errors.New("template without id")
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template %q", t.ID)
		}
		c.byID[t.ID] = t
		c.templates = append(c.templates, t)
	}
	return c, nil
}

type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// LoadCatalog reads a YAML override; an empty path yields the default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template catalog: %w", err)
	}
	return NewCatalog(f.Templates)
}

func (c *Catalog) List() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Check rejects unknown and non-free templates.
func (c *Catalog) Check(id string) (Template, error) {
	t, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	if !t.Free {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFree, id)
	}
	return t, nil
}
