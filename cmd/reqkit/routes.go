package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/reqkit/cmd/reqkit/internal/handlers"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATTERN\tHANDLER")
			for _, r := range handlers.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Method, r.Pattern, r.Handler)
			}
			return w.Flush()
		},
	}
}
