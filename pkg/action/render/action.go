// Package render runs a tracer and writes its report.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cmmoran/doctracer/pkg/tracer"
)

// Generate inspects the configured targets and manifests and writes the
// report to opts.OutFile, or to stdout when OutFile is "-". It returns the
// path written.
func Generate(ctx context.Context, opts *tracer.Options, stdout io.Writer) (string, error) {
	tr, err := tracer.NewWithOpts(opts)
	if err != nil {
		return "", err
	}
	if err = tr.Run(ctx); err != nil {
		return "", err
	}
	if tr.Opts.OutFile == "-" {
		return "-", tr.Render(stdout)
	}

	outFile := filepath.Clean(tr.Opts.Path(tr.Opts.OutFile))
	if err = os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	ff, err := os.OpenFile(outFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	if err = tr.Render(ff); err != nil {
		_ = ff.Close()
		return "", err
	}
	return outFile, ff.Close()
}
