package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/output"
)

var featuresBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse every decision for a context in a TUI",
	Long: `Browse the decision for every feature under an evaluation context.

Key bindings:
  ↑/↓ j/k   Select row
  e         Cycle environment
  p         Cycle plan
  r         Cycle role
  q/Esc     Quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, err := contextFromFlags(cmd, snap)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		p := tea.NewProgram(newBrowseModel(snap.Resolver, ctx), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running browser: %w", err)
		}
		return nil
	},
}

var (
	browseHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	browseDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	browseHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
)

// browseModel is the bubbletea model for `features browse`.
type browseModel struct {
	resolver  *features.Resolver
	ctx       features.Context
	decisions []features.Decision
	table     table.Model
}

func newBrowseModel(r *features.Resolver, ctx features.Context) browseModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Feature", Width: 24},
			{Title: "Section", Width: 13},
			{Title: "On", Width: 4},
			{Title: "Reason", Width: 12},
			{Title: "Rules", Width: 44},
		}),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := browseModel{resolver: r, ctx: ctx, table: t}
	m.refresh()
	return m
}

// refresh re-evaluates every feature under m.ctx and rebuilds the rows.
func (m *browseModel) refresh() {
	reg := m.resolver.Registry()
	m.decisions = m.resolver.Evaluate(m.ctx)
	rows := make([]table.Row, 0, len(m.decisions))
	for _, d := range m.decisions {
		flag, _ := reg.Lookup(d.Name)
		on := "no"
		if d.Enabled {
			on = "yes"
		}
		rows = append(rows, table.Row{
			string(d.Name),
			reg.SectionOf(d.Name),
			on,
			string(d.Reason),
			output.FormatRules(flag),
		})
	}
	m.table.SetRows(rows)
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "e":
			m.ctx.Environment = cycle(features.Environments, m.ctx.Environment)
			m.refresh()
			return m, nil
		case "p":
			m.ctx.Plan = cycle(features.Plans, m.ctx.Plan)
			m.refresh()
			return m, nil
		case "r":
			m.ctx.Role = cycle(features.Roles, m.ctx.Role)
			m.refresh()
			return m, nil
		}
	case tea.WindowSizeMsg:
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	var sb strings.Builder
	sb.WriteString(browseHeaderStyle.Render(fmt.Sprintf("env=%s  plan=%s  role=%s  user=%s",
		orAny(string(m.ctx.Environment)), orAny(string(m.ctx.Plan)), orAny(string(m.ctx.Role)), orAny(m.ctx.UserID))))
	sb.WriteString("\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")
	if d, ok := m.selected(); ok {
		detail := string(d.Reason)
		if d.Detail != "" {
			detail += ": " + d.Detail
		}
		sb.WriteString(browseDetailStyle.Render(detail))
		sb.WriteString("\n")
	}
	sb.WriteString(browseHelpStyle.Render("e env • p plan • r role • q quit"))
	return sb.String()
}

func (m browseModel) selected() (features.Decision, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.decisions) {
		return features.Decision{}, false
	}
	return m.decisions[i], true
}

// cycle returns the tag after cur in tags, with "" (any) between the last
// tag and the first.
func cycle[T ~string](tags []T, cur T) T {
	if cur == "" {
		return tags[0]
	}
	for i, t := range tags {
		if t == cur {
			if i+1 < len(tags) {
				return tags[i+1]
			}
			return ""
		}
	}
	return ""
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func init() {
	addContextFlags(featuresBrowseCmd)
	featuresCmd.AddCommand(featuresBrowseCmd)
}
