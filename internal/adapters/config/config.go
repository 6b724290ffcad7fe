package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arumata/gitprompt/internal/usecase"
)

// Adapter implements ConfigPort using TOML files on disk.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new config adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("config adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Load reads config from path or returns defaults when file is missing.
func (a *Adapter) Load(ctx context.Context, path string) (usecase.ConfigFile, error) {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return usecase.ConfigFile{}, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is controlled by usecase
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usecase.DefaultConfigFile(), nil
		}
		return usecase.ConfigFile{}, err
	}

	cfg := usecase.DefaultConfigFile()
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("parse config toml: %w", err)
	}
	for _, key := range meta.Undecoded() {
		a.logger.Warn("Unknown config key", "key", key.String(), "path", path)
	}

	return cfg, nil
}

// Save writes config to path in TOML format with inline documentation.
func (a *Adapter) Save(ctx context.Context, path string, cfg usecase.ConfigFile) error {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	content := renderCommentedTOML(cfg)

	// #nosec G306 G304 - config is not secret, path is controlled by usecase.
	return os.WriteFile(path, []byte(content), 0o644)
}

//nolint:lll // template readability is more important than line length.
func renderCommentedTOML(cfg usecase.ConfigFile) string {
	return fmt.Sprintf(`# gitprompt configuration

# ── Prompt ───────────────────────────────────────────────────────
[prompt]

# Repository access backend:
#   go-git - read the repository in-process (default)
#   exec   - run the git executable
backend = %[1]q

# Read stash, status, branch and upstream concurrently.
parallel = %[2]t

# Render empty status/stash segments instead of failing when they cannot be read.
fail_soft = %[3]t

# Shown in place of the branch name on unborn or detached HEADs.
no_branch = %[4]q

# ── Colors ───────────────────────────────────────────────────────
# Palette indices 0-7: black, red, green, yellow, blue, magenta, cyan, white.
# A negative value disables coloring for that element.
[colors]

branch = %[5]d
divergence = %[6]d
stash = %[7]d

# Change counts, rendered in this order.
conflicted = %[8]d
deleted = %[9]d
modified = %[10]d
new = %[11]d
renamed = %[12]d
typechange = %[13]d

# ── Logging ──────────────────────────────────────────────────────
# Logs go to stderr and never into the prompt.
[logging]

# Optional log file. Supports ~, $HOME, ${HOME}.
file = %[14]q

# Minimum log level: debug, info, warn, error.
level = %[15]q
`,
		cfg.Prompt.Backend,
		cfg.Prompt.Parallel,
		cfg.Prompt.FailSoft,
		cfg.Prompt.NoBranch,
		cfg.Colors.Branch,
		cfg.Colors.Divergence,
		cfg.Colors.Stash,
		cfg.Colors.Conflicted,
		cfg.Colors.Deleted,
		cfg.Colors.Modified,
		cfg.Colors.New,
		cfg.Colors.Renamed,
		cfg.Colors.TypeChange,
		cfg.Logging.File,
		cfg.Logging.Level,
	)
}
