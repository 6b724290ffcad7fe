package usecase

// Config contains runtime configuration for one prompt render.
type Config struct {
	Style    Style
	Backend  string
	Parallel bool
	FailSoft bool
	NoBranch string
	Palette  Palette
}

// CommitID is a hex-encoded commit object name.
type CommitID string

// HeadRef describes what HEAD points at.
type HeadRef struct {
	// Name is the full reference name, e.g. refs/heads/main. Empty when detached.
	Name string
	// Short is the display name of the branch. Empty when detached.
	Short    string
	Detached bool
	Commit   CommitID
}

// Branch is a local branch together with its tracking configuration.
type Branch struct {
	Name string
	Ref  string
	// Upstream is the full name of the tracking reference, empty when none is configured.
	Upstream string
}

// ChangeFlag is one (location, kind) change bit of a ChangeRecord.
type ChangeFlag uint16

const (
	FlagIndexNew ChangeFlag = 1 << iota
	FlagIndexModified
	FlagIndexDeleted
	FlagIndexRenamed
	FlagIndexTypeChange
	FlagWorkingNew
	FlagWorkingModified
	FlagWorkingDeleted
	FlagWorkingRenamed
	FlagWorkingTypeChange
	FlagConflicted
)

// ChangeRecord is a single path with at least one detected change.
type ChangeRecord struct {
	Path  string
	Flags ChangeFlag
}

// Has reports whether every bit of f is set on the record.
func (r ChangeRecord) Has(f ChangeFlag) bool {
	return r.Flags&f == f
}

// Divergence holds ahead/behind commit counts relative to an upstream.
type Divergence struct {
	Ahead  int
	Behind int
}

// StashVisitor receives stash entries newest first. Returning false stops iteration.
type StashVisitor func(index int, label string) bool
