package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/computerscienceiscool/springboard/pkg/dispatch"
	"github.com/computerscienceiscool/springboard/pkg/link"
)

// Config holds everything needed to handle one invocation
type Config struct {
	PackageID       string
	Action          string
	ReceiversDir    string
	Receivers       []dispatch.Manifest
	DispatchTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.PackageID == "" {
		return fmt.Errorf("package-id must not be empty")
	}
	if c.Action == "" {
		return fmt.Errorf("action must not be empty")
	}
	if c.DispatchTimeout < 0 {
		return fmt.Errorf("dispatch-timeout must not be negative: %s", c.DispatchTimeout)
	}
	return nil
}

// Default returns a Config populated with default values
func Default() *Config {
	return &Config{
		PackageID:       DefaultPackageID,
		Action:          link.SearchAction,
		ReceiversDir:    DefaultReceiversDir(),
		DispatchTimeout: DefaultDispatchTimeout,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// ConfigDir returns the per-user springboard config directory, or ""
// when the user config location is unknown.
func ConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, AppDir)
}

// DefaultReceiversDir returns where receiver manifests are read from by default
func DefaultReceiversDir() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ReceiversSubdir)
}
