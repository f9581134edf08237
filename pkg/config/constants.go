package config

import "time"

// Default values for springboard
const (
	// DefaultPackageID identifies this handler to the host application.
	DefaultPackageID = "eu.kanade.tachiyomi.animeextension.all.rouvideo"

	// DefaultDispatchTimeout bounds a single delivery attempt (socket dial and write)
	DefaultDispatchTimeout = 2 * time.Second

	// Logging
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	// Config file lookup
	ConfigName = "springboard"
	ConfigType = "yaml"
	EnvPrefix  = "SPRINGBOARD"
	AppDir     = "springboard"

	// ReceiversSubdir holds receiver manifests under the app config dir
	ReceiversSubdir = "receivers"
)
