package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"github.com/arumata/gitprompt/internal/adapters/loghandler"
	"github.com/arumata/gitprompt/internal/app"
	"github.com/arumata/gitprompt/internal/usecase"
)

const programName = "gitprompt"

type renderFunc func(
	ctx context.Context,
	cfg *usecase.Config,
	opts usecase.PromptOptions,
	deps *usecase.Dependencies,
	logger *slog.Logger,
) (string, error)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGHUP,
	)
	defer stop()

	cmd, exitCode := newRootCmd(app.NewDefaultDependencies, usecase.Prompt)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return *exitCode
}

func newRootCmd(
	depsFactory func(*slog.Logger) *usecase.Dependencies,
	render renderFunc,
) (*cobra.Command, *int) {
	exitCode := 0
	var ansi bool
	cmd := &cobra.Command{
		Use:           programName,
		Short:         "Print a git status summary for the shell prompt",
		SilenceUsage:  false,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			style := usecase.StylePrompt
			if ansi {
				style = usecase.StyleANSI
			}
			exitCode = runRootCommand(cmd, style, depsFactory, render)
		},
	}
	cmd.SetErr(os.Stderr)

	cmd.Flags().BoolVar(&ansi, "ansi", false, "emit raw ANSI colors instead of zsh prompt escapes")

	cmd.AddCommand(newInitCmd(depsFactory, &exitCode))
	cmd.AddCommand(newVersionCmd())

	return cmd, &exitCode
}

func runRootCommand(
	cmd *cobra.Command,
	style usecase.Style,
	depsFactory func(*slog.Logger) *usecase.Dependencies,
	render renderFunc,
) int {
	ctx := cmd.Context()
	logger := setupLogger(slog.LevelWarn)
	deps := depsFactory(logger)

	configFile, err := loadConfigFile(ctx, deps)
	if err != nil {
		return mapExitCodeWithLog(err)
	}
	logger, cleanup := withFileLogging(setupLogger(parseLogLevel(configFile.Logging.Level)), configFile.Logging)
	defer cleanup()
	// adapters keep the logger they were built with
	deps = depsFactory(logger)

	cfg, err := usecase.RuntimeConfigFromFile(configFile, style)
	if err != nil {
		return mapExitCodeWithLog(err)
	}
	dir, err := os.Getwd()
	if err != nil {
		return mapExitCodeWithLog(fmt.Errorf("resolve working dir: %v: %w", err, usecase.ErrCritical))
	}

	line, err := render(ctx, cfg, usecase.PromptOptions{Dir: dir}, deps, logger)
	if err != nil {
		logger.Error("Cannot render prompt", "error", err)
		return mapExitCode(err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
		return mapExitCodeWithLog(err)
	}
	return exitSuccess
}

func mapExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, usecase.ErrUsage):
		return exitUsageError
	case errors.Is(err, usecase.ErrInterrupted), errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		return exitCriticalError
	}
}

func resolveConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	return usecase.ConfigPath(os.Getenv, homeDir)
}

func loadConfigFile(ctx context.Context, deps *usecase.Dependencies) (usecase.ConfigFile, error) {
	if deps == nil || deps.Config == nil {
		return usecase.ConfigFile{}, fmt.Errorf("dependencies not available: %w", usecase.ErrCritical)
	}
	configPath, err := resolveConfigPath()
	if err != nil {
		return usecase.ConfigFile{}, err
	}
	info, err := os.Stat(configPath)
	if err == nil && info.IsDir() {
		return usecase.ConfigFile{}, fmt.Errorf("config path is a directory: %w", usecase.ErrUsage)
	}
	cfg, err := deps.Config.Load(ctx, configPath)
	if err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("load config: %v: %w", err, usecase.ErrCritical)
	}
	return cfg, nil
}

func setupLogger(level slog.Level) *slog.Logger {
	handler := loghandler.NewHandler(os.Stderr, &loghandler.Options{
		Level:    level,
		UseColor: shouldUseColor(os.Stderr),
		Prefix:   programName,
	})
	return slog.New(handler)
}

func withFileLogging(logger *slog.Logger, logCfg usecase.LoggingConfig) (*slog.Logger, func()) {
	file := strings.TrimSpace(logCfg.File)
	if file == "" {
		return logger, func() {}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}
	logPath := usecase.ExpandHomeDir(file, homeDir)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		logger.Warn("Cannot open log file", "path", logPath, "error", err)
		return logger, func() {}
	}

	fileHandler := loghandler.NewHandler(f, &loghandler.Options{
		Level:     parseLogLevel(logCfg.Level),
		Timestamp: true,
	})
	combined := loghandler.NewMultiHandler(logger.Handler(), fileHandler)
	return slog.New(combined), func() { _ = f.Close() }
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func shouldUseColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
