package app

import (
	"log/slog"

	"github.com/arumata/gitprompt/internal/adapters/config"
	"github.com/arumata/gitprompt/internal/adapters/git"
	"github.com/arumata/gitprompt/internal/adapters/gogit"
	"github.com/arumata/gitprompt/internal/usecase"
)

// NewDefaultDependencies creates dependencies with real adapters for every backend.
func NewDefaultDependencies(logger *slog.Logger) *usecase.Dependencies {
	if logger == nil {
		panic("default dependencies require logger")
	}
	configAdapter := config.New(logger)
	gogitAdapter := gogit.New(logger)
	execAdapter := git.New(logger)

	return &usecase.Dependencies{
		Config: configAdapter,
		Backends: map[string]usecase.RepositoryPort{
			usecase.BackendGoGit: gogitAdapter,
			usecase.BackendExec:  execAdapter,
		},
	}
}
