package tracer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cmmoran/doctracer/internal/introspect"
	"github.com/cmmoran/doctracer/internal/render/text"
)

const (
	FormatHTML = "html"
	FormatText = "text"
)

// TagFilter excludes a struct field when the struct tag Key contains Value.
type TagFilter = introspect.TagFilter

// Options control inspection and rendering.
//
// BaseDir           – directory Targets, Manifests and OutFile are relative to.
// Targets           – Go source directories to inspect, in order.
// Manifests         – symbol manifests to load after the targets.
// Exclude           – directory names skipped while walking targets.
// ExcludeTypes      – type names to skip (case‑insensitive).
// ExcludeDeprecated – skip types and members documented as deprecated.
// ExcludeByTags     – filters to skip struct fields.
// IncludeUnexported – report unexported types and members.
// Title, Tagline    – page heading.
// Footer            – page footer, defaults to "Title - Tagline".
// Format            – "html" or "text".
// OutFile           – report file; "-" writes to stdout.
// Width             – wrap width of the text format.
type Options struct {
	BaseDir           string      `json:"base_dir,omitempty" yaml:"base_dir,omitempty" toml:"base_dir,omitempty" mapstructure:"base_dir,omitempty"`
	Targets           []string    `json:"targets,omitempty" yaml:"targets,omitempty" toml:"targets,omitempty" mapstructure:"targets,omitempty"`
	Manifests         []string    `json:"manifests,omitempty" yaml:"manifests,omitempty" toml:"manifests,omitempty" mapstructure:"manifests,omitempty"`
	Exclude           []string    `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" mapstructure:"exclude,omitempty"`
	ExcludeTypes      []string    `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ExcludeDeprecated bool        `json:"exclude_deprecated,omitempty" yaml:"exclude_deprecated,omitempty" toml:"exclude_deprecated,omitempty" mapstructure:"exclude_deprecated,omitempty"`
	ExcludeByTags     []TagFilter `json:"exclude_by_tags,omitempty" yaml:"exclude_by_tags,omitempty" toml:"exclude_by_tags,omitempty" mapstructure:"exclude_by_tags,omitempty"`
	IncludeUnexported bool        `json:"include_unexported,omitempty" yaml:"include_unexported,omitempty" toml:"include_unexported,omitempty" mapstructure:"include_unexported,omitempty"`
	Title             string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" mapstructure:"title,omitempty"`
	Tagline           string      `json:"tagline,omitempty" yaml:"tagline,omitempty" toml:"tagline,omitempty" mapstructure:"tagline,omitempty"`
	Footer            string      `json:"footer,omitempty" yaml:"footer,omitempty" toml:"footer,omitempty" mapstructure:"footer,omitempty"`
	Format            string      `json:"format,omitempty" yaml:"format,omitempty" toml:"format,omitempty" mapstructure:"format,omitempty"`
	OutFile           string      `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Width             int         `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty" mapstructure:"width,omitempty"`
}

func NewOptions() *Options {
	return &Options{
		BaseDir: ".",
		Exclude: append([]string(nil), introspect.DefaultExclude...),
		Title:   "DocTracer",
		Tagline: "API documentation",
		Format:  FormatHTML,
		Width:   text.DefaultWidth,
	}
}

// Normalize fills defaults and resolves BaseDir. excludeByTagsStrings are
// "key:value" field filters.
func (o *Options) Normalize(excludeByTagsStrings ...string) error {
	o.ExcludeByTags = append(o.ExcludeByTags, introspect.ParseTagFilters(excludeByTagsStrings...)...)
	if o.BaseDir == "" {
		o.BaseDir = "."
	}
	abs, err := filepath.Abs(o.BaseDir)
	if err != nil {
		return fmt.Errorf("resolve base dir: %w", err)
	}
	o.BaseDir = abs

	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	switch o.Format {
	case "":
		o.Format = FormatHTML
	case FormatHTML, FormatText:
	default:
		return fmt.Errorf("unknown format %q", o.Format)
	}
	if o.OutFile == "" {
		o.OutFile = "doctracer." + map[string]string{FormatHTML: "html", FormatText: "txt"}[o.Format]
	}
	if o.Width <= 0 {
		o.Width = text.DefaultWidth
	}
	return nil
}

// Path resolves p against BaseDir.
func (o *Options) Path(p string) string {
	if p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(o.BaseDir, p)
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithBaseDir(d string) Option          { return func(o *Options) { o.BaseDir = d } }
func WithTargets(dirs ...string) Option    { return func(o *Options) { o.Targets = append(o.Targets, dirs...) } }
func WithManifests(paths ...string) Option { return func(o *Options) { o.Manifests = append(o.Manifests, paths...) } }
func WithExclude(names ...string) Option   { return func(o *Options) { o.Exclude = append(o.Exclude, names...) } }
func WithTitle(s string) Option            { return func(o *Options) { o.Title = s } }
func WithTagline(s string) Option          { return func(o *Options) { o.Tagline = s } }
func WithFooter(s string) Option           { return func(o *Options) { o.Footer = s } }
func WithFormat(f string) Option           { return func(o *Options) { o.Format = f } }
func WithOutFile(f string) Option          { return func(o *Options) { o.OutFile = f } }
func WithWidth(w int) Option               { return func(o *Options) { o.Width = w } }
func WithIncludeUnexported() Option        { return func(o *Options) { o.IncludeUnexported = true } }
func WithExcludeDeprecated() Option        { return func(o *Options) { o.ExcludeDeprecated = true } }
func WithExcludeByTag(key, val string) Option {
	return func(o *Options) { o.ExcludeByTags = append(o.ExcludeByTags, TagFilter{Key: key, Value: val}) }
}
func WithExcludeTypes(names ...string) Option {
	return func(o *Options) {
		for _, n := range names {
			o.ExcludeTypes = append(o.ExcludeTypes, strings.TrimSpace(n))
		}
	}
}
