package usecase

// ConfigFile describes TOML configuration structure.
type ConfigFile struct {
	Prompt  PromptConfig  `toml:"prompt"`
	Colors  ColorsConfig  `toml:"colors"`
	Logging LoggingConfig `toml:"logging"`
}

// PromptConfig holds prompt rendering settings.
type PromptConfig struct {
	Backend  string `toml:"backend"`
	Parallel bool   `toml:"parallel"`
	FailSoft bool   `toml:"fail_soft"`
	NoBranch string `toml:"no_branch"`
}

// ColorsConfig holds palette indices per prompt element. Negative values disable color.
type ColorsConfig struct {
	Branch     int `toml:"branch"`
	Divergence int `toml:"divergence"`
	Stash      int `toml:"stash"`
	Conflicted int `toml:"conflicted"`
	Deleted    int `toml:"deleted"`
	Modified   int `toml:"modified"`
	New        int `toml:"new"`
	Renamed    int `toml:"renamed"`
	TypeChange int `toml:"typechange"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

const (
	// BackendGoGit reads the repository in-process.
	BackendGoGit = "go-git"
	// BackendExec shells out to the git executable.
	BackendExec = "exec"

	// DefaultNoBranch is rendered in place of a branch name when HEAD has none.
	DefaultNoBranch = "NO_BRANCH"
)

// DefaultConfigFile returns default TOML configuration.
func DefaultConfigFile() ConfigFile {
	return ConfigFile{
		Prompt: PromptConfig{
			Backend:  BackendGoGit,
			Parallel: false,
			FailSoft: false,
			NoBranch: DefaultNoBranch,
		},
		Colors: ColorsConfig{
			Branch:     ColorMagenta,
			Divergence: ColorYellow,
			Stash:      NoColor,
			Conflicted: ColorRed,
			Deleted:    ColorRed,
			Modified:   ColorYellow,
			New:        ColorGreen,
			Renamed:    ColorBlue,
			TypeChange: ColorCyan,
		},
		Logging: LoggingConfig{
			File:  "",
			Level: "warn",
		},
	}
}
