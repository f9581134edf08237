package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/app"
	"github.com/computerscienceiscool/springboard/pkg/config"
	"github.com/computerscienceiscool/springboard/pkg/logging"
	"github.com/computerscienceiscool/springboard/pkg/redirector"
)

// configErr holds a config file read failure until a logger exists to report it
var configErr error

// initConfig reads in config file and ENV variables if set
func initConfig() {
	configErr = nil

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			configErr = fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using defaults and flags
	}
}

// buildConfig constructs a config.Config from Viper values
func buildConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}

	cfg := &config.Config{
		PackageID:    viper.GetString("package-id"),
		Action:       viper.GetString("action"),
		ReceiversDir: os.ExpandEnv(viper.GetString("receivers-dir")),
		LogLevel:     viper.GetString("log-level"),
		LogFormat:    viper.GetString("log-format"),
	}

	// Parse timeout duration
	timeoutStr := viper.GetString("dispatch-timeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid dispatch-timeout: %w", err)
	}
	cfg.DispatchTimeout = timeout

	receivers, err := config.LoadReceivers()
	if err != nil {
		return nil, err
	}
	cfg.Receivers = receivers

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger from the log-level and log-format settings,
// falling back to defaults when they are invalid.
func newLogger(w io.Writer) *zap.Logger {
	logger, err := logging.New(logging.Options{
		Level:  viper.GetString("log-level"),
		Format: viper.GetString("log-format"),
		Output: w,
	})
	if err != nil {
		logger, _ = logging.New(logging.Options{Output: w})
		logger.Warn("invalid logging configuration, using defaults", zap.Error(err))
	}
	return logger
}

// bootstrapApp wraps the app.Bootstrap function
func bootstrapApp(cfg *config.Config, logger *zap.Logger, opts ...redirector.Option) (*app.App, error) {
	return app.Bootstrap(cfg, logger, opts...)
}
