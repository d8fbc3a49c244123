// Package snapshot writes catalogs as manifests and compares them.
package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/doctracer/internal/model"
	"github.com/cmmoran/doctracer/pkg/manifest"
	"github.com/cmmoran/doctracer/pkg/tracer"
)

// Generate inspects the configured targets and manifests and writes the
// resulting catalog as a manifest to manifestPath, or to stdout when
// manifestPath is "-".
func Generate(ctx context.Context, opts *tracer.Options, manifestPath string, stdout io.Writer) (*manifest.Manifest, error) {
	tr, err := tracer.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	if err = tr.Run(ctx); err != nil {
		return nil, err
	}
	m := tr.Manifest()
	if manifestPath == "-" {
		return m, m.Write(stdout)
	}
	if err = m.Save(tr.Opts.Path(manifestPath)); err != nil {
		return nil, err
	}
	return m, nil
}

// List loads the classes recorded in a manifest. Unlike manifest.Load, a
// missing file is an error.
func List(manifestPath string) ([]*model.ClassRecord, error) {
	if _, err := os.Stat(manifestPath); err != nil {
		return nil, fmt.Errorf("%w: %s", tracer.ErrPathNotFound, manifestPath)
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	records, err := m.Records()
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", manifestPath, err)
	}
	return records, nil
}

// Diff loads two manifests and returns a textual diff of their classes.
// An empty result means both describe the same API.
func Diff(previousPath, currentPath string) (string, error) {
	previous, err := manifest.Load(previousPath)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", previousPath, err)
	}
	current, err := manifest.Load(currentPath)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", currentPath, err)
	}
	return cmp.Diff(previous.Classes, current.Classes, defaults), nil
}

// defaults compares raw default nodes by value, ignoring their position and
// style in the source document.
var defaults = cmp.Transformer("default", func(n yaml.Node) string {
	if n.Kind == 0 {
		return ""
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return fmt.Sprintf("%#v", v)
})
