package app

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aigforge/aigforge/pkg/config"
)

var (
	log        = logrus.StandardLogger()
	cfg        config.Config
	configPath string
)

// NewRootCmd builds the aigforge command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aigforge",
		Short: "aigforge",
		Long:  "A combinational logic-synthesis engine over And-Inverter Graphs.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(logrus.DebugLevel)
			}
			if configPath == "" {
				cfg = config.Defaults()
				return nil
			}
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to an aigforge.yaml pass-pipeline config")

	root.AddCommand(
		newReadCmd(),
		newWriteCmd(),
		newBalanceCmd(),
		newRewriteCmd(),
		newRefactorCmd(),
		newResubCmd(),
		newDrwCmd(),
		newDrfCmd(),
		newZeroCmd(),
		newShellCmd(),
		newVersionCmd(),
		newServeCmd(),
	)
	return root
}
