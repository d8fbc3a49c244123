package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/doctracer/pkg/action/snapshot"
)

// ErrManifestsDiffer is returned by diff --exit-code when the manifests differ.
var ErrManifestsDiffer = errors.New("manifests differ")

func init() {
	rootCmd.AddCommand(NewDiffCommand())
}

func NewDiffCommand() *cobra.Command {
	var exitCode bool

	// diffCmd represents the doctracer diff command
	var diffCmd = &cobra.Command{
		Use:   "diff <previous> <current>",
		Short: "compare two manifests",
		Long:  "Print the differences between two symbol manifests",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.Diff(args[0], args[1])
			if err != nil {
				return err
			}
			if diff == "" {
				return nil
			}
			fmt.Fprint(c.OutOrStdout(), diff)
			if exitCode {
				return ErrManifestsDiffer
			}
			return nil
		},
	}
	diffCmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the manifests differ")

	return diffCmd
}
