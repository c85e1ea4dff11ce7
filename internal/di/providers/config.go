// Package providers contains dependency injection providers for the swatch server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/swatch-server/internal/config"
	"github.com/listenupapp/swatch-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Swatch Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"port", cfg.Server.Port,
		"default_seed", cfg.Swatch.DefaultSeed,
	)

	return log, nil
}
