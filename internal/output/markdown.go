package output

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"

	"github.com/marcus/sitegate/internal/features"
)

const (
	defaultMarkdownWidth = 80
	minMarkdownWidth     = 20
)

// TerminalWidth returns the stdout terminal width, then $COLUMNS, then fallback.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = defaultMarkdownWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return fallback
}

// RenderMarkdown renders markdown for stdout, wrapped to the terminal width.
// Output that is not a terminal gets glamour's plain style.
func RenderMarkdown(text string) (string, error) {
	style := styles.NoTTYStyle
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = styles.AutoStyle
	}
	return renderMarkdown(text, style, TerminalWidth(defaultMarkdownWidth))
}

func renderMarkdown(text, style string, width int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if width < minMarkdownWidth {
		width = minMarkdownWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// RenderFlag renders a flag definition, falling back to the raw markdown if
// glamour fails.
func RenderFlag(f features.Flag, section string, surfaces []features.GateMapEntry) string {
	md := FlagMarkdown(f, section, surfaces)
	out, err := RenderMarkdown(md)
	if err != nil {
		Warning("markdown render failed: %v", err)
		return md
	}
	return out
}
