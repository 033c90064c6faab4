package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/migfetch/internal/domain/commands"
	"github.com/rios0rios0/migfetch/internal/domain/entities"
)

// DownloadAllController handles the "all" subcommand (batch mode).
type DownloadAllController struct {
	command commands.DownloadAll
}

// NewDownloadAllController creates a new DownloadAllController.
func NewDownloadAllController(command commands.DownloadAll) *DownloadAllController {
	return &DownloadAllController{command: command}
}

// GetBind returns the Cobra command metadata for the batch controller.
func (it *DownloadAllController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "all",
		Short: "Rebuild every migration entry from a dataset root",
		Long: `Load every migration YAML file under the dataset root and rebuild
each entry as a minimal two-branch git repository: the base branch holds the
snapshot of the migration commit's parent, the patch branch adds one commit
with the migration commit's snapshot.

Already-built repositories are skipped, so re-running over the same dataset
is the recovery mechanism after failures.`,
	}
}

// Execute runs the batch download mode.
func (it *DownloadAllController) Execute(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Failed to load configuration: %v", err)
		return
	}

	datasetRoot, _ := cmd.Flags().GetString("dataset")
	if datasetRoot == "" {
		logger.Error("--dataset is required")
		return
	}
	maxCount, _ := cmd.Flags().GetInt("max-count")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	summary, runErr := it.command.Execute(ctx, settings, commands.DownloadAllOptions{
		DatasetRoot: datasetRoot,
		MaxCount:    maxCount,
		Progress:    !noProgress,
	})
	if runErr != nil {
		logger.Errorf("Run failed: %v", runErr)
		return
	}
	if summary.Failed > 0 {
		logger.Warnf("%d of %d entries failed; re-run to retry them", summary.Failed, summary.Total())
	}
}

// AddFlags adds the batch-specific flags to the given Cobra command.
func (it *DownloadAllController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("dataset", "", "Path to the PyMigBench YAML dataset root")
	cmd.Flags().Int("max-count", 0, "Limit the number of entries processed (0 = no limit)")
	cmd.Flags().Bool("no-progress", false, "Disable the terminal progress bar")
}
