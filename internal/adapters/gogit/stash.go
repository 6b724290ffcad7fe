package gogit

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5/util"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/arumata/gitprompt/internal/usecase"
)

// stashReflog is the reflog of refs/stash, relative to the git directory.
// Each line is "<old> <new> <ident> <time> <tz>\t<message>", oldest first.
const stashReflog = "logs/refs/stash"

func readStashLabels(repo *git.Repository) ([]string, error) {
	st, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, fmt.Errorf("%w: stash reflog needs filesystem storage, got %T", usecase.ErrStash, repo.Storer)
	}
	data, err := util.ReadFile(st.Filesystem(), stashReflog)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read stash reflog: %w", err)
	}
	return parseStashReflog(data), nil
}

// parseStashReflog returns entry messages newest first.
func parseStashReflog(data []byte) []string {
	lines := bytes.Split(bytes.TrimRight(data, "\n"), []byte{'\n'})
	labels := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		label := ""
		if idx := bytes.IndexByte(line, '\t'); idx >= 0 {
			label = string(line[idx+1:])
		}
		labels = append(labels, label)
	}
	return labels
}
