package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arumata/gitprompt/internal/adapters/config"
	"github.com/arumata/gitprompt/internal/usecase"
)

type outsideRepoPort struct{}

func (outsideRepoPort) Discover(context.Context, string) (usecase.Repository, error) {
	return nil, usecase.ErrNotRepository
}

func testDeps(logger *slog.Logger) *usecase.Dependencies {
	return &usecase.Dependencies{
		Config: config.New(logger),
		Backends: map[string]usecase.RepositoryPort{
			usecase.BackendGoGit: outsideRepoPort{},
			usecase.BackendExec:  outsideRepoPort{},
		},
	}
}

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "gitprompt", "config.toml")
	t.Setenv("GITPROMPT_CONFIG", path)
	t.Setenv("HOME", dir)
	return path
}

func TestRootCmd_PrintsRenderedLine(t *testing.T) {
	isolateConfig(t)
	var gotStyle usecase.Style
	render := func(_ context.Context, cfg *usecase.Config, opts usecase.PromptOptions,
		_ *usecase.Dependencies, logger *slog.Logger,
	) (string, error) {
		if logger == nil {
			t.Fatal("expected logger to be set")
		}
		if opts.Dir == "" {
			t.Fatal("expected working dir to be set")
		}
		gotStyle = cfg.Style
		return "[ main ]", nil
	}

	cmd, exitCode := newRootCmd(testDeps, render)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--ansi"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitSuccess {
		t.Fatalf("exit code = %d, want %d", *exitCode, exitSuccess)
	}
	if out.String() != "[ main ]\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if gotStyle != usecase.StyleANSI {
		t.Fatalf("expected ANSI style, got %v", gotStyle)
	}
}

func TestRootCmd_OutsideRepository(t *testing.T) {
	isolateConfig(t)
	cmd, exitCode := newRootCmd(testDeps, usecase.Prompt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitSuccess {
		t.Fatalf("exit code = %d", *exitCode)
	}
	if out.String() != usecase.EmptyPrompt+"\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestRootCmd_FailureWritesNothing(t *testing.T) {
	isolateConfig(t)
	render := func(context.Context, *usecase.Config, usecase.PromptOptions,
		*usecase.Dependencies, *slog.Logger,
	) (string, error) {
		return "", fmt.Errorf("%w: %w", usecase.ErrStatus, usecase.ErrCritical)
	}
	cmd, exitCode := newRootCmd(testDeps, render)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitCriticalError {
		t.Fatalf("exit code = %d, want %d", *exitCode, exitCriticalError)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty stdout, got %q", out.String())
	}
}

func TestRootCmd_UnknownBackendIsUsageError(t *testing.T) {
	path := isolateConfig(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[prompt]\nbackend = \"libgit2\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cmd, exitCode := newRootCmd(testDeps, usecase.Prompt)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitUsageError {
		t.Fatalf("exit code = %d, want %d", *exitCode, exitUsageError)
	}
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	isolateConfig(t)
	cmd, _ := newRootCmd(testDeps, usecase.Prompt)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for positional args")
	}
}

func TestInitCmd_WritesDefaultConfig(t *testing.T) {
	path := isolateConfig(t)
	cmd, exitCode := newRootCmd(testDeps, usecase.Prompt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitSuccess {
		t.Fatalf("exit code = %d", *exitCode)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Fatalf("stdout = %q, want %q", out.String(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "[prompt]") {
		t.Fatalf("config missing [prompt] section:\n%s", data)
	}

	cmd, exitCode = newRootCmd(testDeps, usecase.Prompt)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	_ = cmd.Execute()
	if *exitCode != exitUsageError {
		t.Fatalf("second init exit code = %d, want %d", *exitCode, exitUsageError)
	}

	cmd, exitCode = newRootCmd(testDeps, usecase.Prompt)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", "--force"})
	_ = cmd.Execute()
	if *exitCode != exitSuccess {
		t.Fatalf("forced init exit code = %d", *exitCode)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd, _ := newRootCmd(testDeps, usecase.Prompt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), programName+" ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelWarn,
		"bogus": slog.LevelWarn,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWithFileLogging(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "gitprompt.log")
	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	logger, cleanup := withFileLogging(base, usecase.LoggingConfig{File: logPath, Level: "info"})
	logger.Info("hello", "k", "v")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestLoadConfigFile_DirectoryIsUsageError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GITPROMPT_CONFIG", dir)
	_, err := loadConfigFile(context.Background(), testDeps(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))
	if !errors.Is(err, usecase.ErrUsage) {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestRootCmd_AdaptersUseConfiguredLogger(t *testing.T) {
	path := isolateConfig(t)
	logPath := filepath.Join(t.TempDir(), "gitprompt.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	cfgText := "[logging]\nlevel = \"debug\"\nfile = \"" + logPath + "\"\n"
	if err := os.WriteFile(path, []byte(cfgText), 0o600); err != nil {
		t.Fatal(err)
	}

	var built []*slog.Logger
	var lastDeps *usecase.Dependencies
	factory := func(logger *slog.Logger) *usecase.Dependencies {
		built = append(built, logger)
		lastDeps = testDeps(logger)
		return lastDeps
	}
	render := func(_ context.Context, _ *usecase.Config, _ usecase.PromptOptions,
		deps *usecase.Dependencies, logger *slog.Logger,
	) (string, error) {
		if deps != lastDeps || built[len(built)-1] != logger {
			t.Fatal("dependencies were not built with the configured logger")
		}
		logger.Debug("adapter debug line")
		return usecase.EmptyPrompt, nil
	}

	cmd, exitCode := newRootCmd(factory, render)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *exitCode != exitSuccess {
		t.Fatalf("exit code = %d", *exitCode)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "adapter debug line") {
		t.Fatalf("debug record missing from log file: %q", data)
	}
}
