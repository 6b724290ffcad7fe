package usecase

import (
	"context"
	"fmt"
	"strings"
)

// ListStashes returns every stash label, newest first.
func ListStashes(ctx context.Context, repo Repository) ([]string, error) {
	var labels []string
	err := repo.ForEachStash(ctx, func(_ int, label string) bool {
		labels = append(labels, label)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStash, err)
	}
	return labels, nil
}

// RenderStashes appends a space after every label.
func RenderStashes(labels []string, style Style, palette Palette) string {
	var b strings.Builder
	for _, label := range labels {
		b.WriteString(paint(style, palette.Stash, label))
		b.WriteByte(' ')
	}
	return b.String()
}
