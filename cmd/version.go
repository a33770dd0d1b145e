package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridable at link time via -ldflags "-X ...cmd.version=...";
// it defaults to "dev" for a plain `go build`.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gooze-repair version",
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), version)
			return err
		},
	}
}
