// Package output provides styled terminal output helpers (success, error,
// warning, decision and flag formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/nav"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	reasonStyles = map[features.Reason]lipgloss.Style{
		features.ReasonEnabled:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		features.ReasonDisabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		features.ReasonUnknown:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		features.ReasonEnvironment: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		features.ReasonPlan:        lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		features.ReasonRole:        lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		features.ReasonRollout:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		features.ReasonDependency:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		features.ReasonCycle:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeConfigError  = "config_error"
	ErrCodeDisabled     = "disabled"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
	fmt.Println(string(data))
}

// FormatReason formats a decision reason with color
func FormatReason(r features.Reason) string {
	style, ok := reasonStyles[r]
	if !ok {
		return string(r)
	}
	return style.Render(fmt.Sprintf("[%s]", r))
}

// DecisionBadge returns an on/off indicator, e.g. "✓ on" or "✗ off"
func DecisionBadge(enabled bool) string {
	if enabled {
		return successStyle.Render("✓ on")
	}
	return errorStyle.Render("✗ off")
}

// FormatDecision formats a decision on one line:
// "ai_assistant  ✗ off  [rollout]  bucket 58 >= 10"
func FormatDecision(d features.Decision) string {
	parts := []string{titleStyle.Render(string(d.Name)), DecisionBadge(d.Enabled), FormatReason(d.Reason)}
	if d.Detail != "" {
		parts = append(parts, subtleStyle.Render(d.Detail))
	}
	return strings.Join(parts, "  ")
}

// FormatRules summarises the gates on a flag, e.g. "env=development,staging plan=pro 10%"
func FormatRules(f features.Flag) string {
	var parts []string
	if len(f.Environments) > 0 {
		parts = append(parts, "env="+joinStrings(f.Environments))
	}
	if len(f.Plans) > 0 {
		parts = append(parts, "plan="+joinStrings(f.Plans))
	}
	if len(f.Roles) > 0 {
		parts = append(parts, "role="+joinStrings(f.Roles))
	}
	if f.Percentage != nil {
		parts = append(parts, fmt.Sprintf("%d%%", *f.Percentage))
	}
	if len(f.Dependencies) > 0 {
		parts = append(parts, "needs="+joinStrings(f.Dependencies))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func joinStrings[T ~string](vs []T) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = string(v)
	}
	return strings.Join(s, ",")
}

// FlagMarkdown renders a flag definition as markdown for glamour.
func FlagMarkdown(f features.Flag, section string, surfaces []features.GateMapEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", f.Name)
	if f.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", f.Description)
	}
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Section | %s |\n", section)
	fmt.Fprintf(&sb, "| Master switch | %s |\n", onOff(f.Enabled))
	fmt.Fprintf(&sb, "| Environments | %s |\n", orAny(joinStrings(f.Environments)))
	fmt.Fprintf(&sb, "| Plans | %s |\n", orAny(joinStrings(f.Plans)))
	fmt.Fprintf(&sb, "| Roles | %s |\n", orAny(joinStrings(f.Roles)))
	if f.Percentage != nil {
		fmt.Fprintf(&sb, "| Rollout | %d%% |\n", *f.Percentage)
	}
	if len(f.Dependencies) > 0 {
		fmt.Fprintf(&sb, "\n## Dependencies\n\n")
		for _, d := range f.Dependencies {
			fmt.Fprintf(&sb, "- `%s`\n", d)
		}
	}
	if len(surfaces) > 0 {
		fmt.Fprintf(&sb, "\n## Surfaces\n\n")
		for _, s := range surfaces {
			if s.Notes != "" {
				fmt.Fprintf(&sb, "- `%s` (%s)\n", s.Surface, s.Notes)
			} else {
				fmt.Fprintf(&sb, "- `%s`\n", s.Surface)
			}
		}
	}
	return sb.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

// Table lays out rows in fixed-width columns. Cells wider than their column
// are truncated with an ellipsis; ANSI styling is preserved.
func Table(headers []string, rows [][]string, widths []int) string {
	var sb strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			if w > 0 {
				cell = ansi.Truncate(cell, w, "…")
				if pad := w - ansi.StringWidth(cell); pad > 0 {
					cell += strings.Repeat(" ", pad)
				}
			}
			if style != nil {
				cell = style.Render(cell)
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}
	if len(headers) > 0 {
		writeRow(headers, &subtleStyle)
	}
	for _, r := range rows {
		writeRow(r, nil)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// NavTree formats navigation items as an indented tree:
// "Settings  /dashboard/settings" with children two spaces deeper.
func NavTree(items []nav.Item, indent int) []string {
	prefix := strings.Repeat(" ", indent)
	var lines []string
	for _, it := range items {
		line := prefix + "- " + titleStyle.Render(it.Title) + "  " + subtleStyle.Render(it.Href)
		if it.Badge != "" {
			line += "  " + badgeStyle.Render("["+it.Badge+"]")
		}
		if it.External {
			line += "  " + subtleStyle.Render("(external)")
		}
		if it.Disabled {
			line += "  " + subtleStyle.Render("(disabled)")
		}
		lines = append(lines, line)
		lines = append(lines, NavTree(it.Children, indent+2)...)
	}
	return lines
}

// FormatSource formats where a setting came from, e.g. "(env)"
func FormatSource(src string) string {
	return subtleStyle.Render("(" + src + ")")
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nPREMIUM:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentLines indents each line by the specified number of spaces
func IndentLines(lines []string, spaces int) []string {
	indent := strings.Repeat(" ", spaces)
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = indent + line
	}
	return result
}

// BulletList formats items as a bulleted list with optional indentation
func BulletList(items []string, indent int) []string {
	prefix := strings.Repeat(" ", indent)
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = prefix + "- " + item
	}
	return result
}
