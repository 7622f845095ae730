package display

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

const bannerArt = `
  _ __ ___   __ _ ___| |__   ___ __ _| | ___
 | '_ ` + "`" + ` _ \ / _` + "`" + ` / __| '_ \ / __/ _` + "`" + ` | |/ __|
 | | | | | | (_| \__ \ | | | (_| (_| | | (__
 |_| |_| |_|\__,_|___/_| |_|\___\__,_|_|\___|
`

// RenderBanner returns the banner art horizontally centred for width
// columns. No scaling is applied.
func RenderBanner(width int) string {
	lines := strings.Split(strings.Trim(bannerArt, "\n"), "\n")

	// Find the widest line.
	maxW := 0
	for _, l := range lines {
		if len(l) > maxW {
			maxW = len(l)
		}
	}

	var b strings.Builder
	for _, l := range lines {
		if width > maxW {
			b.WriteString(strings.Repeat(" ", (width-maxW)/2))
		}
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

// TermWidth returns the column count of the terminal on f, or 80 as
// fallback.
func TermWidth(f *os.File) int {
	if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
