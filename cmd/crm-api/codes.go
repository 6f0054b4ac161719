package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/blackwell-systems/outcome"
	"github.com/blackwell-systems/outcome/crmerr"
	"github.com/spf13/cobra"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the error catalog with the HTTP status of each code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tCODE\tDESCRIPTION")
			for _, e := range crmerr.All() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", outcome.StatusFor(e.Code), e.Code, e.Description)
			}
			return w.Flush()
		},
	}
}
