package usecase

import "strconv"

// Style selects the escape dialect used to color prompt text.
type Style int

const (
	// StylePrompt wraps text in zsh prompt macros (%{%F{n}%}...%{%f%}).
	StylePrompt Style = iota
	// StyleANSI wraps text in raw SGR sequences.
	StyleANSI
)

// Standard 8-color palette indices.
const (
	NoColor      = -1
	ColorBlack   = 0
	ColorRed     = 1
	ColorGreen   = 2
	ColorYellow  = 3
	ColorBlue    = 4
	ColorMagenta = 5
	ColorCyan    = 6
	ColorWhite   = 7
)

// Palette maps prompt elements to palette indices.
type Palette struct {
	Branch     int
	Divergence int
	Stash      int
	Conflicted int
	Deleted    int
	Modified   int
	New        int
	Renamed    int
	TypeChange int
}

// ForCategory returns the color used for a status category.
func (p Palette) ForCategory(c Category) int {
	switch c {
	case CategoryConflicted:
		return p.Conflicted
	case CategoryDeleted:
		return p.Deleted
	case CategoryModified:
		return p.Modified
	case CategoryNew:
		return p.New
	case CategoryRenamed:
		return p.Renamed
	case CategoryTypeChange:
		return p.TypeChange
	default:
		return NoColor
	}
}

// Colorize decorates text with a foreground color. Color indices are not
// validated.
func Colorize(style Style, color int, text string) string {
	if style == StyleANSI {
		return "\x1b[" + strconv.Itoa(30+color) + "m" + text + "\x1b[0m"
	}
	return "%{%F{" + strconv.Itoa(color) + "}%}" + text + "%{%f%}"
}

// paint is Colorize that leaves text alone for negative colors.
func paint(style Style, color int, text string) string {
	if color < 0 {
		return text
	}
	return Colorize(style, color, text)
}
