package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/config"
	"github.com/computerscienceiscool/springboard/pkg/link"
	"github.com/computerscienceiscool/springboard/pkg/logging"
	"github.com/computerscienceiscool/springboard/pkg/redirector"
)

// exitFunc terminates the process once an invocation has been handled
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "springboard [address]",
	Short: "Forward rou.video deep links to the host application",
	Long: `springboard is registered as the handler for https://rou.video/t/<tag> and
https://rou.video/v/<id> links. It turns the link into a "<category>:<identifier>"
search, hands it to whichever installed receiver handles the search action, and exits.
The exit code is always 0; failures are only logged.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "Config file (default: springboard.yaml in ., the user config dir, or $HOME)")

	// Forwarding flags
	rootCmd.PersistentFlags().String("package-id", config.DefaultPackageID, "Identifier sent as the filter of every forward request")
	rootCmd.PersistentFlags().String("action", link.SearchAction, "Action the forward request is dispatched to")
	rootCmd.PersistentFlags().String("receivers-dir", config.DefaultReceiversDir(), "Directory of receiver manifests")
	rootCmd.PersistentFlags().String("dispatch-timeout", config.DefaultDispatchTimeout.String(), "Timeout for a single delivery attempt")

	// Logging flags
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (console, json)")

	bindFlags()
}

// bindFlags binds the persistent flags to viper keys of the same name
func bindFlags() {
	viper.BindPFlags(rootCmd.PersistentFlags())
}

func runRoot(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	}

	logger := newLogger(cmd.ErrOrStderr())
	defer logger.Sync()

	cfg, err := buildConfig()
	if err != nil {
		logger.Error("cannot load configuration", zap.Error(err), zap.String(logging.FieldInvocation, raw))
		exitFunc(0)
		return nil
	}

	application, err := bootstrapApp(cfg, logger, redirector.WithExit(exitFunc))
	if err != nil {
		logger.Error("bootstrap failed", zap.Error(err), zap.String(logging.FieldInvocation, raw))
		exitFunc(0)
		return nil
	}

	application.Handle(cmd.Context(), raw)
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Set all default values in Viper
	config.SetViperDefaults()

	// Config file lookup and SPRINGBOARD_* environment variables
	config.SetViperConfigPaths()
}
