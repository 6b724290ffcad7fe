package gogit

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/arumata/gitprompt/internal/usecase"
)

// userExcludes collects ignore patterns that live outside the repository:
// core.excludesFile from the system config, then core.excludesFile from the
// global config or, when unset, $XDG_CONFIG_HOME/git/ignore
// (~/.config/git/ignore).
func userExcludes(getenv func(string) string) ([]gitignore.Pattern, error) {
	root := osfs.New("/")

	patterns, err := gitignore.LoadSystemPatterns(root)
	if err != nil {
		return nil, fmt.Errorf("system excludes: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return patterns, nil
	}
	file, err := globalExcludesFile(getenv, home)
	if err != nil {
		return nil, err
	}
	global, err := readExcludesFile(root, file)
	if err != nil {
		return nil, fmt.Errorf("global excludes %s: %w", file, err)
	}
	return append(patterns, global...), nil
}

func globalExcludesFile(getenv func(string) string, home string) (string, error) {
	cfg, err := config.LoadConfig(config.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("global git config: %w", err)
	}
	if file := strings.TrimSpace(cfg.Raw.Section("core").Options.Get("excludesfile")); file != "" {
		return usecase.ExpandHomeDir(file, home), nil
	}
	if xdg := strings.TrimSpace(getenv("XDG_CONFIG_HOME")); xdg != "" {
		return path.Join(xdg, "git", "ignore"), nil
	}
	return path.Join(home, ".config", "git", "ignore"), nil
}

func readExcludesFile(fs billy.Filesystem, file string) ([]gitignore.Pattern, error) {
	data, err := util.ReadFile(fs, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return patterns, nil
}
