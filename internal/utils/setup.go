package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/FlagBrew/local-teambuilder/internal/gui"
	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/apex/log"
	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	ConfigPath = "config.json"
	EnvPrefix  = "TEAMBUILDER_"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func Setup(ctx context.Context, mode string) *models.Config {
	logger := log.FromContext(ctx)

	cfg, err := LoadConfig(ConfigPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to read config.json")
	}

	found := cfg != nil
	if !found {
		cfg = &models.Config{}
	}

	if err = ApplyEnv(cfg); err != nil {
		logger.WithError(err).Fatal("failed to apply environment overrides")
	}

	err = ValidateConfig(cfg)
	if err == nil {
		return cfg
	}

	if found || mode == "docker" {
		logger.WithError(err).Fatal("Configuration is invalid, fix config.json (or the TEAMBUILDER_ environment variables) and try again. Check the wiki for more information.")
	}

	err = gui.New(cfg).Start()
	if errors.Is(err, gui.ErrCancelled) {
		logger.Info("setup cancelled, exiting")
		os.Exit(0)
	}
	if err != nil {
		logger.WithError(err).Fatal("Failed to start interactive wizard")
	}

	// Save the config once done.
	SetConfig(ctx, cfg)

	return cfg
}

func SetConfig(ctx context.Context, cfg *models.Config) {
	logger := log.FromContext(ctx)
	f, err := os.OpenFile(ConfigPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		logger.WithError(err).Error("Error opening config.json")
		return
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(cfg)
	if err != nil {
		logger.WithError(err).Error("Error encoding config.json")
	}
}

// LoadConfig reads the config at path. A missing file returns a nil config and no error.
func LoadConfig(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var config models.Config
	if err = json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &config, nil
}

// ApplyEnv overrides cfg with any TEAMBUILDER_ prefixed environment variables.
func ApplyEnv(cfg *models.Config) error {
	return env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix})
}

func ValidateConfig(cfg *models.Config) error {
	return validate.Struct(cfg)
}
