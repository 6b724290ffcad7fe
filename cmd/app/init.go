package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arumata/gitprompt/internal/usecase"
)

func newInitCmd(depsFactory func(*slog.Logger) *usecase.Dependencies, exitCode *int) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			logger := setupLogger(slog.LevelWarn)
			deps := depsFactory(logger)
			if deps == nil || deps.Config == nil {
				handleCmdError(exitCode, fmt.Errorf("dependencies not available: %w", usecase.ErrCritical))
				return
			}
			configPath, err := resolveConfigPath()
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			if _, err := os.Stat(configPath); err == nil && !force {
				handleCmdError(exitCode, fmt.Errorf("config already exists at %s (use --force): %w", configPath, usecase.ErrUsage))
				return
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleCmdError(exitCode, fmt.Errorf("stat config: %v: %w", err, usecase.ErrCritical))
				return
			}
			if err := deps.Config.Save(cmd.Context(), configPath, usecase.DefaultConfigFile()); err != nil {
				handleCmdError(exitCode, fmt.Errorf("write config: %v: %w", err, usecase.ErrCritical))
				return
			}
			logger.Info("Config written", "path", configPath)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), configPath)
			*exitCode = exitSuccess
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
