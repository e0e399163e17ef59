package app

import (
	"fmt"

	"github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

// Version is the tool's semantic version, set at build time via
// -ldflags "-X .../app.Version=...".
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the aigforge version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.Parse(Version)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "aigforge %s\n", v.String())
			return nil
		},
	}
}
