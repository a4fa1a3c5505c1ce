package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlkit/pkg/pipeline"
	"github.com/matzehuels/umlkit/pkg/report"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	listCursorStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the nodes of a diagram and their bounds",
		Long: `Lay out a diagram and browse its nodes in the terminal.

Select a node to see its parent and the edges attached to it together with
their anchor points. Use --plain to print the node table and exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the node table without the interactive view")
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain bool, w io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	d, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	l, err := runner.Layout(ctx, d, pipeline.Options{Config: cfg})
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	m := newInspectModel(report.Build(d, l))
	if plain {
		m.height = len(m.rep.Nodes)
		m.plain = true
		_, err := io.WriteString(w, m.View())
		return err
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(w), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// inspectModel - Interactive node browser
// =============================================================================

// inspectModel is the bubbletea model for browsing a layout report.
type inspectModel struct {
	rep    report.Report
	cursor int
	offset int
	height int
	plain  bool
}

func newInspectModel(rep report.Report) inspectModel {
	return inspectModel{rep: rep, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rep.Nodes)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "home", "g":
			m.cursor, m.offset = 0, 0
		case "end", "G":
			if n := len(m.rep.Nodes); n > 0 {
				m.cursor = n - 1
				m.offset = max(0, n-m.height)
			}
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, the detail pane and the table borders.
		m.height = max(5, msg.Height-14)
		if m.cursor >= m.offset+m.height {
			m.offset = m.cursor - m.height + 1
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %s", m.rep.Diagram, m.rep.Version)))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("extent (%g, %g) %g×%g", m.rep.X, m.rep.Y, m.rep.Width, m.rep.Height)))
	b.WriteString("\n")
	if !m.plain {
		b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.rep.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  (no nodes)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.rep.Nodes))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := m.rep.Nodes[i]
		cursor := "  "
		if i == m.cursor && !m.plain {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprint(n.ID),
			n.Type,
			indentName(m.rep, n),
			fmt.Sprintf("%g, %g", n.X, n.Y),
			fmt.Sprintf("%g×%g", n.Width, n.Height),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(listDimStyle).
		Headers("", "ID", "Type", "Name", "Position", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return listHeaderStyle
			}
			if !m.plain && m.offset+row == m.cursor {
				return listCursorStyle
			}
			return lipgloss.NewStyle()
		})
	b.WriteString(t.Render())
	b.WriteString("\n")

	if !m.plain {
		b.WriteString(m.details())
	}
	return b.String()
}

// details describes the selected node's parent and attached edges.
func (m inspectModel) details() string {
	var b strings.Builder
	n := m.rep.Nodes[m.cursor]

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rep.Nodes))))
	b.WriteString("\n")
	if n.Parent != nil {
		b.WriteString(fmt.Sprintf("  parent  %s\n", StyleValue.Render(fmt.Sprint(*n.Parent))))
	}
	for _, e := range m.rep.Edges {
		switch n.ID {
		case e.Start:
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
				listDimStyle.Render("→"), StyleNumber.Render(fmt.Sprint(e.End)), e.Type,
				listDimStyle.Render(fmt.Sprintf("(%g, %g) → (%g, %g)", e.StartX, e.StartY, e.EndX, e.EndY))))
		case e.End:
			b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
				listDimStyle.Render("←"), StyleNumber.Render(fmt.Sprint(e.Start)), e.Type,
				listDimStyle.Render(fmt.Sprintf("(%g, %g) → (%g, %g)", e.StartX, e.StartY, e.EndX, e.EndY))))
		}
	}
	return b.String()
}

// indentName prefixes a node's name by its containment depth.
func indentName(rep report.Report, n report.Node) string {
	depth := 0
	for p := n.Parent; p != nil; {
		depth++
		parent, ok := rep.Node(*p)
		if !ok {
			break
		}
		p = parent.Parent
	}
	name := n.Name
	if name == "" {
		name = "·"
	}
	return strings.Repeat("  ", depth) + name
}
