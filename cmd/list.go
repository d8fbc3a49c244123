package cmd

import (
	"fmt"

	"github.com/jinzhu/inflection"
	"github.com/spf13/cobra"

	"github.com/cmmoran/doctracer/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewListCommand())
}

func NewListCommand() *cobra.Command {
	// listCmd represents the doctracer list command
	var listCmd = &cobra.Command{
		Use:   "list <manifest>",
		Short: "list the classes of a manifest",
		Long:  "Print one line per class recorded in a symbol manifest: kind, full name and member count",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			records, err := snapshot.List(args[0])
			if err != nil {
				return err
			}
			for _, r := range records {
				n := r.MemberCount()
				noun := "member"
				if n != 1 {
					noun = inflection.Plural(noun)
				}
				fmt.Fprintf(c.OutOrStdout(), "%s %s (%d %s)\n", r.Kind, r.FullName, n, noun)
			}
			return nil
		},
	}

	return listCmd
}
