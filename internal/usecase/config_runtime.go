package usecase

import (
	"fmt"
	"path"
	"strings"
)

// RuntimeConfigFromFile converts TOML config into runtime config for a prompt render.
func RuntimeConfigFromFile(cfg ConfigFile, style Style) (*Config, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Prompt.Backend))
	switch backend {
	case "":
		backend = BackendGoGit
	case BackendGoGit, BackendExec:
	default:
		return nil, fmt.Errorf("unknown backend %q (want %q or %q): %w",
			cfg.Prompt.Backend, BackendGoGit, BackendExec, ErrUsage)
	}

	noBranch := cfg.Prompt.NoBranch
	if strings.TrimSpace(noBranch) == "" {
		noBranch = DefaultNoBranch
	}

	return &Config{
		Style:    style,
		Backend:  backend,
		Parallel: cfg.Prompt.Parallel,
		FailSoft: cfg.Prompt.FailSoft,
		NoBranch: noBranch,
		Palette: Palette{
			Branch:     cfg.Colors.Branch,
			Divergence: cfg.Colors.Divergence,
			Stash:      cfg.Colors.Stash,
			Conflicted: cfg.Colors.Conflicted,
			Deleted:    cfg.Colors.Deleted,
			Modified:   cfg.Colors.Modified,
			New:        cfg.Colors.New,
			Renamed:    cfg.Colors.Renamed,
			TypeChange: cfg.Colors.TypeChange,
		},
	}, nil
}

// ConfigPath picks the config file location from the environment.
// Precedence: GITPROMPT_CONFIG, then XDG_CONFIG_HOME, then ~/.config.
func ConfigPath(getenv func(string) string, homeDir string) (string, error) {
	if p := strings.TrimSpace(getenv("GITPROMPT_CONFIG")); p != "" {
		return ExpandHomeDir(p, homeDir), nil
	}
	if xdg := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); xdg != "" {
		return path.Join(xdg, "gitprompt", "config.toml"), nil
	}
	if strings.TrimSpace(homeDir) == "" {
		return "", fmt.Errorf("home directory is empty: %w", ErrCritical)
	}
	return path.Join(homeDir, ".config", "gitprompt", "config.toml"), nil
}

// ExpandHomeDir replaces a leading ~, $HOME or ${HOME} with homeDir.
func ExpandHomeDir(p, homeDir string) string {
	clean := strings.TrimSpace(p)
	home := strings.TrimRight(homeDir, "/")
	switch {
	case clean == "~" || clean == "$HOME" || clean == "${HOME}":
		return homeDir
	case strings.HasPrefix(clean, "~/"):
		return home + clean[1:]
	case strings.HasPrefix(clean, "$HOME/"):
		return home + clean[len("$HOME"):]
	case strings.HasPrefix(clean, "${HOME}/"):
		return home + clean[len("${HOME}"):]
	default:
		return clean
	}
}
