// Package tracer is the public entry point: it inspects sources and
// manifests into one catalog and renders the report.
package tracer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmmoran/doctracer/internal/catalog"
	"github.com/cmmoran/doctracer/internal/introspect"
	"github.com/cmmoran/doctracer/internal/render"
	"github.com/cmmoran/doctracer/internal/render/html"
	"github.com/cmmoran/doctracer/internal/render/text"
	"github.com/cmmoran/doctracer/pkg/manifest"
)

// Version is stamped into rendered reports.
var Version = "dev"

var (
	ErrNoTargets       = errors.New("no targets or manifests to inspect")
	ErrPathNotFound    = introspect.ErrPathNotFound
	ErrDuplicateSymbol = catalog.ErrDuplicateSymbol
)

// Tracer accumulates inspected records in one catalog. Passes run in the
// order they are called; a later record replaces an earlier one with the same
// namespace and name. A Tracer is not safe for concurrent use.
type Tracer struct {
	Opts Options

	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a tracer from NewOptions with opts applied.
func New(opts ...Option) (*Tracer, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Tracer, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	logger := slog.Default()
	return &Tracer{
		Opts:    *opts,
		catalog: catalog.New().WithLogger(logger),
		logger:  logger,
	}, nil
}

// Catalog is the accumulated catalog.
func (t *Tracer) Catalog() *catalog.Catalog { return t.catalog }

// Run inspects every target, then loads every manifest.
func (t *Tracer) Run(ctx context.Context) error {
	if len(t.Opts.Targets) == 0 && len(t.Opts.Manifests) == 0 {
		return ErrNoTargets
	}
	for _, dir := range t.Opts.Targets {
		if err := t.Inspect(ctx, dir); err != nil {
			return err
		}
	}
	for _, path := range t.Opts.Manifests {
		if err := t.LoadManifest(path); err != nil {
			return err
		}
	}
	return nil
}

// Inspect reads the Go sources below dir into the catalog.
func (t *Tracer) Inspect(ctx context.Context, dir string) error {
	in := introspect.New(introspect.Options{
		Exclude:           t.Opts.Exclude,
		ExcludeTypes:      t.Opts.ExcludeTypes,
		ExcludeDeprecated: t.Opts.ExcludeDeprecated,
		ExcludeByTags:     t.Opts.ExcludeByTags,
		IncludeUnexported: t.Opts.IncludeUnexported,
	}).WithLogger(t.logger)

	records, err := in.Inspect(ctx, t.Opts.Path(dir))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", dir, err)
	}
	if err := t.catalog.Ingest(records...); err != nil {
		return fmt.Errorf("inspect %s: %w", dir, err)
	}
	return nil
}

// LoadManifest reads a symbol manifest into the catalog.
func (t *Tracer) LoadManifest(path string) error {
	full := t.Opts.Path(path)
	if _, err := os.Stat(full); err != nil {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	m, err := manifest.Load(full)
	if err != nil {
		return err
	}
	records, err := m.Records()
	if err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}
	if err := t.catalog.Ingest(records...); err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}
	t.logger.Info("loaded manifest", "path", full, "classes", len(records))
	return nil
}

// Manifest serializes the catalog.
func (t *Tracer) Manifest() *manifest.Manifest {
	return manifest.FromRecords(t.catalog.Snapshot().Classes())
}

// Settings are the page texts derived from the options.
func (t *Tracer) Settings() render.Settings {
	return render.Settings{
		Title:   t.Opts.Title,
		Tagline: t.Opts.Tagline,
		Footer:  t.Opts.Footer,
		Version: Version,
	}
}

// Render writes the report in the configured format.
func (t *Tracer) Render(w io.Writer) error {
	snap := t.catalog.Snapshot()
	switch t.Opts.Format {
	case FormatText:
		r, err := text.NewRenderer(t.Settings(), t.Opts.Width)
		if err != nil {
			return err
		}
		return r.Render(w, snap)
	default:
		return html.NewRenderer(t.Settings(), html.WithLogger(t.logger)).Render(w, snap)
	}
}
