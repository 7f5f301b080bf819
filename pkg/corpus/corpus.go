/*
Package corpus builds the immutable set of searchable symbols.

A corpus is built once from a Data value (usually produced by the
dictionary package loaders) and is read-only afterwards, so any number of
sessions may share it without locking.

In the global scope every package contributes its entities qualified by the
package name, and every builtin entity is indexed a second time under the
empty qualifier so "len" finds the builtin without typing its package. In a
package scope only that package's entities are present; the "builtin"
package additionally pulls the builtin entities of "runtime".
*/
package corpus

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
)

var (
	ErrMissingName      = errors.New("entity has no name")
	ErrMissingQualifier = errors.New("package has no name")
	ErrUnknownKind      = errors.New("unknown entity kind")
	ErrUnknownPackage   = errors.New("unknown package")
)

// RawEntity is an entity as found in a corpus file.
type RawEntity struct {
	Name    string `json:"name" yaml:"name" toml:"name" msgpack:"name"`
	Kind    string `json:"kind" yaml:"kind" toml:"kind" msgpack:"kind"`
	Builtin bool   `json:"builtin,omitempty" yaml:"builtin,omitempty" toml:"builtin,omitempty" msgpack:"builtin,omitempty"`
}

// Package groups the entities of one qualifier.
// Path is the base of every link into the package documentation.
type Package struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" msgpack:"name,omitempty"`
	Path     string      `json:"path" yaml:"path" toml:"path" msgpack:"path"`
	Entities []RawEntity `json:"entities" yaml:"entities" toml:"entities" msgpack:"entities"`
}

// Data is the ingestion format, keyed by package name.
type Data struct {
	Packages map[string]Package `json:"packages" yaml:"packages" toml:"packages" msgpack:"packages"`
}

// Options selects the scope a corpus is built for.
type Options struct {
	// Package restricts the corpus to one package. Empty means global.
	Package string
}

// Corpus is an ordered, immutable entity set with a name index.
type Corpus struct {
	entities []Entity
	paths    map[string]string
	scope    string
	index    *Index
}

// Build validates data and assembles the corpus for opts.
func Build(data *Data, opts Options) (*Corpus, error) {
	if data == nil {
		return nil, fmt.Errorf("build corpus: %w", ErrUnknownPackage)
	}

	paths := make(map[string]string, len(data.Packages))
	for name, pkg := range data.Packages {
		if name == "" {
			return nil, fmt.Errorf("build corpus: %w", ErrMissingQualifier)
		}
		paths[name] = pkg.Path
	}

	if opts.Package != "" {
		if _, ok := data.Packages[opts.Package]; !ok {
			return nil, fmt.Errorf("build corpus: %w: %q", ErrUnknownPackage, opts.Package)
		}
	}

	// the global catalog is always built; a package scope is cut from its index
	catalog := &Corpus{paths: paths}
	names := make([]string, 0, len(data.Packages))
	for name := range data.Packages {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := catalog.addGlobal(name, data.Packages[name]); err != nil {
			return nil, err
		}
	}
	catalog.index = newIndex(catalog.entities)
	if opts.Package == "" {
		log.Debugf("Corpus built: scope=global entities=%d packages=%d", len(catalog.entities), len(paths))
		return catalog, nil
	}

	c := &Corpus{paths: paths, scope: opts.Package}
	c.entities = catalog.Qualified(opts.Package)
	if opts.Package == "builtin" {
		for _, e := range catalog.Qualified("runtime") {
			if e.Builtin {
				c.entities = append(c.entities, e)
			}
		}
	}
	c.index = newIndex(c.entities)
	log.Debugf("Corpus built: scope=%q entities=%d packages=%d", opts.Package, len(c.entities), len(paths))
	return c, nil
}

func (c *Corpus) addGlobal(name string, pkg Package) error {
	for _, raw := range pkg.Entities {
		if raw.Builtin {
			owner := name
			if _, ok := c.paths["builtin"]; ok {
				owner = "builtin"
			}
			be, err := c.entity("", owner, raw)
			if err != nil {
				return err
			}
			c.entities = append(c.entities, be)
		}
		e, err := c.entity(name, name, raw)
		if err != nil {
			return err
		}
		c.entities = append(c.entities, e)
	}
	return nil
}

func (c *Corpus) entity(qualifier, owner string, raw RawEntity) (Entity, error) {
	if raw.Name == "" {
		return Entity{}, fmt.Errorf("build corpus: package %q: %w", owner, ErrMissingName)
	}
	kind, err := ParseKind(raw.Kind)
	if err != nil {
		return Entity{}, fmt.Errorf("build corpus: %s: %w", FullName(owner, raw.Name), err)
	}
	return Entity{
		Name:      raw.Name,
		Qualifier: qualifier,
		Full:      FullName(qualifier, raw.Name),
		Kind:      kind,
		Package:   owner,
		Link:      c.paths[owner] + "/#" + raw.Name,
		Builtin:   raw.Builtin,
	}, nil
}

// Entities returns the corpus in build order. The slice must not be modified.
func (c *Corpus) Entities() []Entity {
	return c.entities
}

// Len returns the number of entities.
func (c *Corpus) Len() int {
	return len(c.entities)
}

// Scope returns the package the corpus was built for, empty for global.
func (c *Corpus) Scope() string {
	return c.scope
}

// PackagePath returns the documentation path of a package.
func (c *Corpus) PackagePath(pkg string) (string, bool) {
	p, ok := c.paths[pkg]
	return p, ok
}

// Packages returns the known package names in sorted order.
func (c *Corpus) Packages() []string {
	names := make([]string, 0, len(c.paths))
	for name := range c.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Qualified returns the entities whose qualifier is q, in build order.
func (c *Corpus) Qualified(q string) []Entity {
	idx := c.index.Qualified(q)
	out := make([]Entity, len(idx))
	for i, n := range idx {
		out[i] = c.entities[n]
	}
	return out
}

// Lookup returns every entity whose full name is full.
func (c *Corpus) Lookup(full string) []Entity {
	idx := c.index.Lookup(full)
	out := make([]Entity, len(idx))
	for i, n := range idx {
		out[i] = c.entities[n]
	}
	return out
}
