package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/internal/apps"
)

func appsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List the demo apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range apps.List() {
				app, err := apps.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", app.Name, app.Description)
			}
			return tw.Flush()
		},
	}
}
