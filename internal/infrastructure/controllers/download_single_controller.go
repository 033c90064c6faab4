package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/migfetch/internal/domain/commands"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// DownloadSingleController handles the "single" subcommand.
type DownloadSingleController struct {
	command commands.DownloadSingle
}

// NewDownloadSingleController creates a new DownloadSingleController.
func NewDownloadSingleController(command commands.DownloadSingle) *DownloadSingleController {
	return &DownloadSingleController{command: command}
}

// GetBind returns the Cobra command metadata for the single-entry controller.
func (it *DownloadSingleController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "single",
		Short: "Rebuild one migration entry from a YAML file",
		Long: `Parse a single PyMigBench migration YAML file and rebuild its entry
as a two-branch git repository under the output directory.`,
	}
}

// Execute runs the single-entry mode.
func (it *DownloadSingleController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		return
	}

	yamlFile, _ := cmd.Flags().GetString("file")
	if yamlFile == "" {
		logger.Error("--file is required")
		return
	}

	result, runErr := it.command.Execute(ctx, settings, yamlFile)
	if runErr != nil {
		logger.Errorf("Run failed: %v", runErr)
		return
	}
	if result.Status == entities.StatusFailed {
		logger.Errorf("Failed to build %s: %v", result.Ref, result.Err)
	}
}

// AddFlags adds the single-entry flags to the given Cobra command.
func (it *DownloadSingleController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Path to one migration YAML file")
}
