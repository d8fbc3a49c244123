// Package catalog accumulates class records across inspection passes,
// keeping namespaces and classes in order of first appearance.
package catalog

import (
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/cmmoran/doctracer/internal/model"
)

type classMap = orderedmap.OrderedMap[string, *model.ClassRecord]

// Catalog maps namespace → class short name → record.
//
// A Catalog is not safe for concurrent use. Callers ingesting from several
// goroutines must serialize their calls to Ingest.
type Catalog struct {
	namespaces *orderedmap.OrderedMap[string, *classMap]
	log        *slog.Logger
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		namespaces: orderedmap.New[string, *classMap](),
		log:        slog.Default(),
	}
}

// WithLogger sets the logger used for ingestion events.
func (c *Catalog) WithLogger(l *slog.Logger) *Catalog {
	if l != nil {
		c.log = l
	}
	return c
}

// Ingest adds records to the catalog. A record whose namespace and short
// name are already present replaces the stored record without moving it.
//
// If any record would bind a namespace and short name to a second
// fully-qualified name, Ingest returns a *DuplicateSymbolError and the
// catalog is left unchanged.
func (c *Catalog) Ingest(records ...*model.ClassRecord) error {
	type key struct{ ns, name string }
	batch := make(map[key]string, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		k := key{r.Namespace, r.Name}
		if prev, ok := batch[k]; ok && prev != r.FullName {
			return &DuplicateSymbolError{Namespace: r.Namespace, Name: r.Name, Existing: prev, Incoming: r.FullName}
		}
		if existing, ok := c.Lookup(r.Namespace, r.Name); ok && existing.FullName != r.FullName {
			return &DuplicateSymbolError{Namespace: r.Namespace, Name: r.Name, Existing: existing.FullName, Incoming: r.FullName}
		}
		batch[k] = r.FullName
	}

	for _, r := range records {
		if r == nil {
			continue
		}
		classes, ok := c.namespaces.Get(r.Namespace)
		if !ok {
			classes = orderedmap.New[string, *model.ClassRecord]()
			c.namespaces.Set(r.Namespace, classes)
		}
		if _, replaced := classes.Set(r.Name, r.Clone()); replaced {
			c.log.With("namespace", r.Namespace, "class", r.Name).Debug("replaced class record")
		} else {
			c.log.With("namespace", r.Namespace, "class", r.Name).Debug("added class record")
		}
	}
	return nil
}

// Lookup returns the stored record for namespace and short name.
func (c *Catalog) Lookup(namespace, name string) (*model.ClassRecord, bool) {
	classes, ok := c.namespaces.Get(namespace)
	if !ok {
		return nil, false
	}
	return classes.Get(name)
}

// Len is the number of classes across all namespaces.
func (c *Catalog) Len() int {
	n := 0
	for pair := c.namespaces.Oldest(); pair != nil; pair = pair.Next() {
		n += pair.Value.Len()
	}
	return n
}

// Namespace is one namespace of a Snapshot and its classes in order.
type Namespace struct {
	Name    string
	Classes []*model.ClassRecord
}

// Snapshot is a detached, ordered copy of a catalog.
type Snapshot []Namespace

// Snapshot copies the catalog contents. Modifying the result does not affect
// the catalog.
func (c *Catalog) Snapshot() Snapshot {
	out := make(Snapshot, 0, c.namespaces.Len())
	for ns := c.namespaces.Oldest(); ns != nil; ns = ns.Next() {
		entry := Namespace{Name: ns.Key, Classes: make([]*model.ClassRecord, 0, ns.Value.Len())}
		for cls := ns.Value.Oldest(); cls != nil; cls = cls.Next() {
			entry.Classes = append(entry.Classes, cls.Value.Clone())
		}
		out = append(out, entry)
	}
	return out
}

// Names returns the namespace names in order.
func (s Snapshot) Names() []string {
	out := make([]string, len(s))
	for i, ns := range s {
		out[i] = ns.Name
	}
	return out
}

// ClassNames returns the class short names of namespace in order.
func (s Snapshot) ClassNames(namespace string) []string {
	for _, ns := range s {
		if ns.Name != namespace {
			continue
		}
		out := make([]string, len(ns.Classes))
		for i, c := range ns.Classes {
			out[i] = c.Name
		}
		return out
	}
	return nil
}

// Classes returns every class in namespace-then-class order.
func (s Snapshot) Classes() []*model.ClassRecord {
	var out []*model.ClassRecord
	for _, ns := range s {
		out = append(out, ns.Classes...)
	}
	return out
}
