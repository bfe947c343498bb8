package bubbletea

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// preview returns the first line of s cut to at most width terminal cells.
// Cuts fall on grapheme cluster boundaries and are marked with an ellipsis.
func preview(s string, width int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}
	limit := width - runewidth.StringWidth(ellipsis)
	var (
		b    strings.Builder
		used int
	)
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > limit {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String() + ellipsis
}
