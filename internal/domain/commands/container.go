package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewBuildCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDownloadAllCommand); err != nil {
		return err
	}
	if err := container.Provide(NewDownloadSingleCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *BuildCommand) Build {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DownloadAllCommand) DownloadAll {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *DownloadSingleCommand) DownloadSingle {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
