package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/doctracer/pkg/tracer"
)

// optionKeys maps Options keys to the flags that set them.
var optionKeys = map[string]string{
	"base_dir":           "base-dir",
	"targets":            "target",
	"manifests":          "manifest",
	"exclude":            "exclude",
	"exclude_types":      "exclude-types",
	"exclude_deprecated": "exclude-deprecated",
	"include_unexported": "include-unexported",
	"title":              "title",
	"tagline":            "tagline",
	"footer":             "footer",
	"width":              "width",
}

// optionFlags holds the tracer flags of one command. The flags are bound to
// the viper keys of their Options fields when the command runs, so config
// files and DOCTRACER_* variables supply values the command line leaves
// unset.
type optionFlags struct {
	v            *viper.Viper
	flags        *pflag.FlagSet
	excludeByTag []string
}

func addOptionFlags(cmd *cobra.Command) *optionFlags {
	defaults := tracer.NewOptions()
	f := cmd.Flags()
	f.StringP("base-dir", "b", defaults.BaseDir, "directory targets, manifests and output are relative to")
	f.StringSliceP("target", "i", nil, "Go source directory to inspect (repeatable)")
	f.StringSliceP("manifest", "m", nil, "symbol manifest to load after the targets (repeatable)")
	f.StringSlice("exclude", defaults.Exclude, "directory names to skip")
	f.StringSliceP("exclude-types", "t", nil, "type names to skip")
	f.BoolP("exclude-deprecated", "d", false, "skip deprecated types and members")
	f.BoolP("include-unexported", "u", false, "report unexported types and members")
	f.String("title", defaults.Title, "report title")
	f.String("tagline", defaults.Tagline, "report tagline")
	f.String("footer", "", "report footer")
	f.Int("width", defaults.Width, "wrap width of the text format")

	o := &optionFlags{v: viper.GetViper(), flags: f}
	f.StringSliceVarP(&o.excludeByTag, "exclude-tags", "T", nil, "skip fields with matching tags, ex: json:-")
	return o
}

// options binds the flags and decodes the merged values into normalized
// Options.
func (o *optionFlags) options() (*tracer.Options, error) {
	for key, name := range optionKeys {
		if fl := o.flags.Lookup(name); fl != nil {
			if err := o.v.BindPFlag(key, fl); err != nil {
				return nil, fmt.Errorf("bind %s: %w", name, err)
			}
		}
	}
	opts := tracer.NewOptions()
	if err := o.v.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Normalize(o.excludeByTag...); err != nil {
		return nil, err
	}
	return opts, nil
}
