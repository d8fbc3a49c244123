package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/doctracer/pkg/action/render"
)

func init() {
	rootCmd.AddCommand(NewRenderCommand())
}

func NewRenderCommand() *cobra.Command {
	var flags *optionFlags

	// renderCmd represents the doctracer render command
	var renderCmd = &cobra.Command{
		Use:   "render",
		Short: "render the documentation report",
		Long:  "Inspect Go sources and symbol manifests and render their documentation as an HTML or text report",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if err := flags.v.BindPFlag("format", c.Flags().Lookup("format")); err != nil {
				return err
			}
			if err := flags.v.BindPFlag("out_file", c.Flags().Lookup("output")); err != nil {
				return err
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			out, err := render.Generate(c.Context(), opts, c.OutOrStdout())
			if err != nil {
				return err
			}
			slog.Info("report written", "file", out, "format", opts.Format)
			return nil
		},
	}
	flags = addOptionFlags(renderCmd)
	renderCmd.Flags().StringP("format", "F", "html", "report format (html, text)")
	renderCmd.Flags().StringP("output", "o", "", "report file, - for stdout (default doctracer.html or doctracer.txt)")

	return renderCmd
}
