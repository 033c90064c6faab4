package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// loadSettings builds the effective settings from the config file (explicit
// path or auto-discovered) with CLI flags layered on top.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var settings *entities.Settings
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		}
	}

	if configPath != "" {
		logger.Infof("Using config file: %s", configPath)
		loaded, err := entities.NewSettings(configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	} else {
		settings = entities.NewDefaultSettings()
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		settings.GitHub.Token = entities.ResolveToken(token)
	}
	if outputDir, _ := cmd.Flags().GetString("output-dir"); outputDir != "" {
		settings.OutputDir = outputDir
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		settings.Workers = workers
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}
