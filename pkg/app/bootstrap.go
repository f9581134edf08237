package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/computerscienceiscool/springboard/pkg/config"
	"github.com/computerscienceiscool/springboard/pkg/dispatch"
	"github.com/computerscienceiscool/springboard/pkg/logging"
	"github.com/computerscienceiscool/springboard/pkg/redirector"
)

// Bootstrap initializes and returns a configured App
func Bootstrap(cfg *config.Config, logger *zap.Logger, opts ...redirector.Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// Build the receiver registry from the receivers directory and config file
	registry := dispatch.NewRegistry(logger.Named("registry"), dispatch.DefaultTransports())
	if err := registry.LoadDir(cfg.ReceiversDir); err != nil {
		return nil, err
	}
	for _, m := range cfg.Receivers {
		if err := registry.Add(m); err != nil {
			logger.Warn("skipping configured receiver",
				zap.String(logging.FieldReceiver, m.Name),
				zap.Error(err),
			)
		}
	}

	router := dispatch.NewRouter(registry, cfg.DispatchTimeout, logger.Named("dispatch"))

	opts = append([]redirector.Option{redirector.WithAction(cfg.Action)}, opts...)
	redir := redirector.New(router, cfg.PackageID, logger, opts...)

	return &App{
		config:     cfg,
		logger:     logger,
		registry:   registry,
		router:     router,
		redirector: redir,
	}, nil
}
