package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/pipeline"
)

const browsePanelWidth = 44

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browseLinkedStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	browsePanelStyle    = lipgloss.NewStyle().Width(browsePanelWidth)
)

// browseCommand creates the interactive mapping browser.
func (c *CLI) browseCommand() *cobra.Command {
	var flags mappingFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore a data mapping interactively",
		Long: `Show the source and target documents of a mapping side by side.

Collapsing a container folds the connections of its fields onto it. The
connections are recomputed after every toggle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := pipeline.NewRunner(nil, nil, c.Logger).OpenMapping(ctx, flags.options(c))
			if err != nil {
				return err
			}
			model, err := newBrowseModel(ctx, m)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// browseModel - bubbletea model over a mapping view
// =============================================================================

type browseModel struct {
	ctx    context.Context
	view   *pipeline.MappingView
	rows   []links.Row
	result links.Result
	err    error

	cursor int
	offset int
	height int
}

func newBrowseModel(ctx context.Context, v *pipeline.MappingView) (browseModel, error) {
	m := browseModel{ctx: ctx, view: v, height: 20}
	m.refresh()
	return m, m.err
}

// refresh recomputes the connections and re-reads the visible rows.
func (m *browseModel) refresh() {
	m.result, m.err = m.view.Refresh(m.ctx)
	m.rows = append([]links.Row(nil), m.view.View.Rows()...)
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case " ", "space", "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			n := m.rows[m.cursor].Node
			if !n.IsLeaf() {
				m.view.View.Toggle(n.Path)
				m.refresh()
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor line inside the window.
func (m *browseModel) scroll() {
	line := m.lineOf(m.cursor)
	if line < m.offset {
		m.offset = line
	}
	if line >= m.offset+m.height {
		m.offset = line - m.height + 1
	}
}

// lineOf returns the line of row i within its panel.
func (m browseModel) lineOf(i int) int {
	line := 0
	for j := 0; j < i; j++ {
		if m.rows[j].Panel == m.rows[i].Panel {
			line++
		}
	}
	return line
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Mapping %s", m.view.Target.ID)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  space collapse/expand  q quit"))
	b.WriteString("\n\n")

	linked := m.linkCounts()
	panels := make([][]string, 2)
	for i, r := range m.rows {
		p := min(r.Panel, 1)
		panels[p] = append(panels[p], m.rowLine(i, linked[r.Node.Path]))
	}
	for p := range panels {
		panels[p] = window(panels[p], m.offset, m.height)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		browsePanelStyle.Render(strings.Join(panels[0], "\n")),
		browsePanelStyle.Render(strings.Join(panels[1], "\n"))))
	b.WriteString("\n\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m browseModel) rowLine(i, linked int) string {
	r := m.rows[i]
	marker := "  "
	switch {
	case r.Node.IsLeaf():
	case r.Collapsed:
		marker = "▸ "
	default:
		marker = "▾ "
	}
	line := strings.Repeat("  ", r.Depth) + marker + r.Node.Data.DisplayLabel()
	if linked > 0 {
		line += " " + browseLinkedStyle.Render(fmt.Sprintf("●%d", linked))
	}
	if i == m.cursor {
		return browseSelectedStyle.Render(line)
	}
	return browseNormalStyle.Render(line)
}

// linkCounts counts connection ends per visible anchor.
func (m browseModel) linkCounts() map[string]int {
	counts := make(map[string]int)
	for _, c := range m.result.Connections {
		counts[c.SourceAnchor]++
		counts[c.TargetAnchor]++
	}
	return counts
}

func (m browseModel) footer() string {
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + m.err.Error()
	}
	folded := 0
	for _, c := range m.result.Connections {
		if c.Folded() {
			folded++
		}
	}
	parts := []string{
		fmt.Sprintf("%d connections", len(m.result.Connections)),
		fmt.Sprintf("%d folded", folded),
	}
	if n := len(m.result.Dropped); n > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d dropped", n)))
	}
	return StyleDim.Render(strings.Join(parts, " · "))
}

func window(lines []string, offset, height int) []string {
	if offset >= len(lines) {
		return nil
	}
	return lines[offset:min(offset+height, len(lines))]
}
