package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/computerscienceiscool/springboard/pkg/dispatch"
	"github.com/computerscienceiscool/springboard/pkg/link"
)

// SetViperDefaults sets all default configuration values in Viper
func SetViperDefaults() {
	viper.SetDefault("package-id", DefaultPackageID)
	viper.SetDefault("action", link.SearchAction)
	viper.SetDefault("receivers-dir", DefaultReceiversDir())
	viper.SetDefault("dispatch-timeout", DefaultDispatchTimeout.String())

	viper.SetDefault("log-level", DefaultLogLevel)
	viper.SetDefault("log-format", DefaultLogFormat)
}

// SetViperConfigPaths configures config file lookup and environment binding
func SetViperConfigPaths() {
	viper.SetConfigName(ConfigName)
	viper.SetConfigType(ConfigType)
	viper.AddConfigPath(".")
	if dir := ConfigDir(); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath("$HOME")

	// SPRINGBOARD_PACKAGE_ID, SPRINGBOARD_RECEIVERS_DIR, ...
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// LoadReceivers reads the inline receivers list from the config file
func LoadReceivers() ([]dispatch.Manifest, error) {
	if !viper.IsSet("receivers") {
		return nil, nil
	}

	var receivers []dispatch.Manifest
	if err := viper.UnmarshalKey("receivers", &receivers); err != nil {
		return nil, fmt.Errorf("invalid receivers: %w", err)
	}
	for i := range receivers {
		receivers[i].Source = "config"
	}
	return receivers, nil
}
