// Package introspect reads Go source trees into class records: every named
// type becomes a class or interface whose members are its constants, fields
// and methods.
package introspect

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/doctracer/internal/model"
)

var (
	ErrPathNotFound = errors.New("path not found")
	ErrNoModule     = errors.New("no go.mod found")
)

// DefaultExclude are directory names never descended into.
var DefaultExclude = []string{"vendor", "testdata", "node_modules"}

// TagFilter excludes a struct field when its tag Key contains Value.
type TagFilter struct {
	Key   string `json:"key" yaml:"key" toml:"key" mapstructure:"key"`
	Value string `json:"value" yaml:"value" toml:"value" mapstructure:"value"`
}

// Options control what Inspect reports.
//
// Exclude           – directory names to skip, matched against the base name.
// ExcludeTypes      – type names to skip (case-insensitive).
// ExcludeDeprecated – skip types and members whose doc has a "Deprecated:" paragraph.
// ExcludeByTags     – skip struct fields whose tag matches.
// IncludeUnexported – report unexported types and members too.
type Options struct {
	Exclude           []string
	ExcludeTypes      []string
	ExcludeDeprecated bool
	ExcludeByTags     []TagFilter
	IncludeUnexported bool
}

type Introspector struct {
	opts   Options
	logger *slog.Logger
}

func New(opts Options) *Introspector {
	if opts.Exclude == nil {
		opts.Exclude = DefaultExclude
	}
	return &Introspector{opts: opts, logger: slog.Default()}
}

func (in *Introspector) WithLogger(l *slog.Logger) *Introspector {
	in.logger = l
	return in
}

// Inspect loads every package below dir and returns one record per named
// type, in package then declaration order. dir must lie inside a module.
func (in *Introspector) Inspect(ctx context.Context, dir string) ([]*model.ClassRecord, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, dir)
	}
	modDir, modPath, err := findModule(abs)
	if err != nil {
		return nil, err
	}
	patterns, err := in.packageDirs(ctx, abs)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		in.logger.Info("no go packages found", "dir", abs)
		return nil, nil
	}

	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Context: ctx,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax |
			packages.NeedTypes | packages.NeedTypesInfo,
		Dir:  abs,
		Fset: fset,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	m := newMapper(&in.opts, fset, modDir)
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, e := range pkg.Errors {
			in.logger.Warn("package error", "package", pkg.PkgPath, "error", e.Error())
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}
		if err := m.addPackage(pkg); err != nil {
			return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, err)
		}
	}
	records := m.records()
	in.logger.Info("inspected go sources", "dir", abs, "module", modPath, "packages", len(pkgs), "classes", len(records))
	return records, nil
}

// packageDirs walks root and returns a "./rel" load pattern for every
// directory holding non-test Go files.
func (in *Introspector) packageDirs(ctx context.Context, root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root {
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || slices.Contains(in.opts.Exclude, name) {
				in.logger.Debug("skipping directory", "dir", path)
				return filepath.SkipDir
			}
			// Nested modules are inspected separately.
			if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
				return filepath.SkipDir
			}
		}
		if hasGoFiles(path) {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if rel == "." {
				out = append(out, ".")
			} else {
				out = append(out, "./"+filepath.ToSlash(rel))
			}
		}
		return nil
	})
	return out, err
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		n := e.Name()
		if !e.IsDir() && strings.HasSuffix(n, ".go") && !strings.HasSuffix(n, "_test.go") {
			return true
		}
	}
	return false
}

// findModule walks up from dir until it finds go.mod and returns its
// directory and module path.
func findModule(dir string) (string, string, error) {
	from := dir
	for {
		data, err := os.ReadFile(filepath.Join(from, "go.mod"))
		if err == nil {
			path := modfile.ModulePath(data)
			if path == "" {
				return "", "", fmt.Errorf("%s: no module directive", filepath.Join(from, "go.mod"))
			}
			return from, path, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", "", fmt.Errorf("%w above %s", ErrNoModule, dir)
		}
		from = parent
	}
}
