package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X .../pkg/cli.version=..."
var version = "dev"

var receiversCmd = &cobra.Command{
	Use:   "receivers [action]",
	Short: "List receivers for an action",
	Long:  "Shows the available receivers that would be tried, in order, for the given action (default: the configured action).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReceivers,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "springboard %s\n", version)
	},
}

func init() {
	// Add subcommands to root
	rootCmd.AddCommand(receiversCmd)
	rootCmd.AddCommand(versionCmd)
}

func runReceivers(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	defer logger.Sync()

	application, err := bootstrapApp(cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	var action string
	if len(args) > 0 {
		action = args[0]
	}
	application.PrintReceivers(cmd.OutOrStdout(), action)
	return nil
}
