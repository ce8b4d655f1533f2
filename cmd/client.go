package cmd

import (
	"fmt"

	"r2-manager/core/config"
	"r2-manager/core/logger"
	"r2-manager/core/r2"

	"go.uber.org/zap"
)

// setup loads configuration and builds the logger and the r2 client.
// Unset connection values surface as missing-field errors from the builder.
func setup() (*config.Config, *zap.Logger, *r2.Client, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := r2.FromConfig(cfg.Storage).Logger(logg).Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return cfg, logg, client, nil
}
