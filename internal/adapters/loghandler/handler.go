// Package loghandler provides the slog handlers used by gitprompt. Output is
// meant for stderr or a log file; stdout belongs to the prompt.
package loghandler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorCyan    = "\033[36m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBoldRed = "\033[1;31m"
)

const timestampLayout = "2006-01-02 15:04:05"

// Options configures the Handler.
type Options struct {
	Level    slog.Level
	UseColor bool
	// Prefix is written before the level label, followed by a colon.
	Prefix string
	// Timestamp prepends the record time. Useful for log files.
	Timestamp bool
}

// Handler is a compact, optionally colored slog.Handler for CLI output.
type Handler struct {
	w      io.Writer
	opts   Options
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a new Handler writing to w.
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle formats and writes the log record as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if h.opts.Timestamp && !r.Time.IsZero() {
		h.colored(&buf, colorDim, r.Time.Format(timestampLayout))
		buf.WriteByte(' ')
	}
	if h.opts.Prefix != "" {
		buf.WriteString(h.opts.Prefix)
		buf.WriteString(": ")
	}
	label, color := levelLabel(r.Level)
	h.colored(&buf, color, label)
	if r.Message != "" {
		buf.WriteByte(' ')
		buf.WriteString(r.Message)
	}

	for _, a := range h.attrs {
		h.writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, qualify(a, h.groups))
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, qualify(a, h.groups))
	}
	return h2
}

// WithGroup returns a new Handler with the given group name appended.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		w:      h.w,
		opts:   h.opts,
		mu:     h.mu,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *Handler) colored(buf *bytes.Buffer, color, text string) {
	if !h.opts.UseColor {
		buf.WriteString(text)
		return
	}
	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelLabel(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return "ERR", colorBoldRed
	case level >= slog.LevelWarn:
		return "WRN", colorYellow
	case level >= slog.LevelInfo:
		return "INF", colorGreen
	default:
		return "DBG", colorCyan
	}
}

// qualify resolves a and prefixes its key with the open groups.
func qualify(a slog.Attr, groups []string) slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) || len(groups) == 0 {
		return a
	}
	a.Key = strings.Join(groups, ".") + "." + a.Key
	return a
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	buf.WriteByte(' ')
	if h.opts.UseColor {
		buf.WriteString(colorDim)
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	writeValue(buf, a.Value)
	if h.opts.UseColor {
		buf.WriteString(colorReset)
	}
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		writeMaybeQuoted(buf, v.String())
	case slog.KindGroup:
		for i, a := range v.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(a.Key)
			buf.WriteByte('=')
			writeValue(buf, a.Value.Resolve())
		}
	case slog.KindDuration:
		buf.WriteString(v.Duration().String())
	case slog.KindTime:
		buf.WriteString(v.Time().Format(time.RFC3339))
	default:
		writeMaybeQuoted(buf, fmt.Sprint(v.Any()))
	}
}

func writeMaybeQuoted(buf *bytes.Buffer, s string) {
	if needsQuoting(s) {
		buf.WriteString(strconv.Quote(s))
		return
	}
	buf.WriteString(s)
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := range len(s) {
		c := s[i]
		if c <= ' ' || c == '"' || c == '\\' || c == '=' {
			return true
		}
	}
	return false
}

// Verify interface compliance at compile time.
var _ slog.Handler = (*Handler)(nil)
