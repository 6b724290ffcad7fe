package git

import (
	"fmt"
	"strings"

	"github.com/arumata/gitprompt/internal/usecase"
)

// parsePorcelainV2 parses `git status --porcelain=v2 -z` output.
func parsePorcelainV2(output []byte) ([]usecase.ChangeRecord, error) {
	fields := strings.Split(string(output), "\x00")
	records := make([]usecase.ChangeRecord, 0, len(fields))

	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if entry == "" {
			continue
		}
		switch entry[0] {
		case '#', '!':
			continue
		case '?':
			if len(entry) < 3 {
				return nil, fmt.Errorf("malformed untracked entry %q", entry)
			}
			records = append(records, usecase.ChangeRecord{Path: entry[2:], Flags: usecase.FlagWorkingNew})
		case '1':
			parts := strings.SplitN(entry, " ", 9)
			if len(parts) != 9 || len(parts[1]) != 2 {
				return nil, fmt.Errorf("malformed change entry %q", entry)
			}
			records = appendChange(records, parts[8], parts[1])
		case '2':
			parts := strings.SplitN(entry, " ", 10)
			if len(parts) != 10 || len(parts[1]) != 2 {
				return nil, fmt.Errorf("malformed rename entry %q", entry)
			}
			records = appendChange(records, parts[9], parts[1])
			// the original path follows as its own field
			i++
		case 'u':
			parts := strings.SplitN(entry, " ", 11)
			if len(parts) != 11 {
				return nil, fmt.Errorf("malformed unmerged entry %q", entry)
			}
			records = append(records, usecase.ChangeRecord{Path: parts[10], Flags: usecase.FlagConflicted})
		default:
			return nil, fmt.Errorf("unknown status entry %q", entry)
		}
	}
	return records, nil
}

func appendChange(records []usecase.ChangeRecord, path, xy string) []usecase.ChangeRecord {
	flags := indexFlag(xy[0]) | worktreeFlag(xy[1])
	if flags == 0 {
		return records
	}
	return append(records, usecase.ChangeRecord{Path: path, Flags: flags})
}

func indexFlag(c byte) usecase.ChangeFlag {
	switch c {
	case 'A', 'C':
		return usecase.FlagIndexNew
	case 'M':
		return usecase.FlagIndexModified
	case 'D':
		return usecase.FlagIndexDeleted
	case 'R':
		return usecase.FlagIndexRenamed
	case 'T':
		return usecase.FlagIndexTypeChange
	default:
		return 0
	}
}

func worktreeFlag(c byte) usecase.ChangeFlag {
	switch c {
	case 'A':
		return usecase.FlagWorkingNew
	case 'M':
		return usecase.FlagWorkingModified
	case 'D':
		return usecase.FlagWorkingDeleted
	case 'R':
		return usecase.FlagWorkingRenamed
	case 'T':
		return usecase.FlagWorkingTypeChange
	default:
		return 0
	}
}

func parseLines(output string) []string {
	lines := strings.Split(output, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result = append(result, line)
	}
	return result
}
