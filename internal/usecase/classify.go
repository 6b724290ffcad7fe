package usecase

import (
	"strconv"
	"strings"
)

// Category is the kind of change counted in a Tally.
type Category int

const (
	CategoryConflicted Category = iota
	CategoryDeleted
	CategoryModified
	CategoryNew
	CategoryRenamed
	CategoryTypeChange
)

// CategoryOrder is the order categories are rendered in.
var CategoryOrder = [...]Category{
	CategoryConflicted,
	CategoryDeleted,
	CategoryModified,
	CategoryNew,
	CategoryRenamed,
	CategoryTypeChange,
}

func (c Category) String() string {
	switch c {
	case CategoryConflicted:
		return "conflicted"
	case CategoryDeleted:
		return "deleted"
	case CategoryModified:
		return "modified"
	case CategoryNew:
		return "new"
	case CategoryRenamed:
		return "renamed"
	case CategoryTypeChange:
		return "typechange"
	default:
		return "Category(" + strconv.Itoa(int(c)) + ")"
	}
}

// Tally counts changes per category. Only categories with a count of at least
// one are present.
type Tally map[Category]int

func (t Tally) add(c Category) {
	t[c]++
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// StatusTally holds the staged and unstaged tallies of one status snapshot.
type StatusTally struct {
	Index   Tally
	Working Tally
}

// Empty reports whether neither tally has entries.
func (s StatusTally) Empty() bool {
	return len(s.Index) == 0 && len(s.Working) == 0
}

type flagRule struct {
	flag     ChangeFlag
	working  bool
	category Category
}

// flagRules is checked in order for every record; conflicts only count on the working side.
var flagRules = [...]flagRule{
	{FlagIndexNew, false, CategoryNew},
	{FlagIndexModified, false, CategoryModified},
	{FlagIndexDeleted, false, CategoryDeleted},
	{FlagIndexRenamed, false, CategoryRenamed},
	{FlagIndexTypeChange, false, CategoryTypeChange},
	{FlagWorkingNew, true, CategoryNew},
	{FlagWorkingModified, true, CategoryModified},
	{FlagWorkingDeleted, true, CategoryDeleted},
	{FlagWorkingRenamed, true, CategoryRenamed},
	{FlagWorkingTypeChange, true, CategoryTypeChange},
	{FlagConflicted, true, CategoryConflicted},
}

// Classify tallies every set flag of every record.
func Classify(records []ChangeRecord) StatusTally {
	st := StatusTally{Index: Tally{}, Working: Tally{}}
	for _, rec := range records {
		for _, rule := range flagRules {
			if !rec.Has(rule.flag) {
				continue
			}
			if rule.working {
				st.Working.add(rule.category)
			} else {
				st.Index.add(rule.category)
			}
		}
	}
	return st
}

// RenderTally renders present categories in CategoryOrder, each prefixed by a space.
func RenderTally(t Tally, style Style, palette Palette) string {
	var b strings.Builder
	for _, c := range CategoryOrder {
		n, ok := t[c]
		if !ok || n <= 0 {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(paint(style, palette.ForCategory(c), strconv.Itoa(n)))
	}
	return b.String()
}

// RenderStatus renders "<working>|<index>", or nothing for a clean tree.
func RenderStatus(st StatusTally, style Style, palette Palette) string {
	if st.Empty() {
		return ""
	}
	return RenderTally(st.Working, style, palette) + "|" + RenderTally(st.Index, style, palette)
}
