package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/doctracer/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewDumpCommand())
}

func NewDumpCommand() *cobra.Command {
	var (
		flags  *optionFlags
		output string
	)

	// dumpCmd represents the doctracer dump command
	var dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "write the catalog as a manifest",
		Long:  "Inspect Go sources and symbol manifests and write the merged catalog as a symbol manifest",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			m, err := snapshot.Generate(c.Context(), opts, output, c.OutOrStdout())
			if err != nil {
				return err
			}
			slog.Info("manifest written", "file", output, "classes", len(m.Classes))
			return nil
		},
	}
	flags = addOptionFlags(dumpCmd)
	dumpCmd.Flags().StringVarP(&output, "output", "o", "-", "manifest file, - for stdout")

	return dumpCmd
}
