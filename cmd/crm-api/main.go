// Command crm-api serves the deal API and inspects the error catalog.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crm-api",
		Short: "CRM API server",
		Long: `crm-api serves the CRM deal API.

Business failures are answered with RFC 7807 problem details whose status
follows the error code; unexpected failures are logged and answered with a
generic problem carrying the request's trace ID.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newCodesCmd())
	return root
}
