package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	listBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// row is one visible line of the tree, pointing into the model's copy
// of the step tree.
type row struct {
	step  *buildstep.BuildStep
	depth int
}

type model struct {
	root     buildstep.BuildStep
	expanded map[string]bool
	rows     []row
	selected int
	viewport viewport.Model
	ready    bool
	done     bool

	width       int
	height      int
	listWidth   int
	detailWidth int
}

func newModel(root buildstep.BuildStep) model {
	vp := viewport.New(0, 0)
	m := model{
		root:     root,
		expanded: map[string]bool{root.Identifier: true},
		viewport: vp,
	}
	m.rebuildRows()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// rebuildRows flattens the tree into visible rows, descending only
// through expanded steps.
func (m *model) rebuildRows() {
	m.rows = m.rows[:0]
	m.appendRows(&m.root, 0)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) appendRows(step *buildstep.BuildStep, depth int) {
	m.rows = append(m.rows, row{step: step, depth: depth})
	if !m.expanded[step.Identifier] {
		return
	}
	for i := range step.SubSteps {
		m.appendRows(&step.SubSteps[i], depth+1)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshDetail()
			}
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
				m.refreshDetail()
			}
		case "enter", " ", "right", "l":
			step := m.rows[m.selected].step
			if len(step.SubSteps) > 0 {
				m.expanded[step.Identifier] = !m.expanded[step.Identifier]
				m.rebuildRows()
			}
		case "left", "h":
			step := m.rows[m.selected].step
			if m.expanded[step.Identifier] {
				m.expanded[step.Identifier] = false
				m.rebuildRows()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.listWidth = m.width / 2
		if m.listWidth < 30 {
			m.listWidth = 30
		}
		m.detailWidth = m.width - m.listWidth - 2
		m.viewport.Width = m.detailWidth - 4
		m.viewport.Height = m.height - 6
		m.ready = true
		m.refreshDetail()
	}
	return m, nil
}

func (m *model) refreshDetail() {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return
	}
	m.viewport.SetContent(stepDetail(*m.rows[m.selected].step))
}

// stepDetail renders the right-hand pane for one step.
func stepDetail(step buildstep.BuildStep) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", titleStyle.Render(step.Title))
	fmt.Fprintf(&sb, "Kind        %s\n", step.Kind)
	if step.Kind == buildstep.StepKindDetail {
		fmt.Fprintf(&sb, "Category    %s\n", step.DetailCategory)
	}
	if step.Architecture != "" {
		fmt.Fprintf(&sb, "Arch        %s\n", step.Architecture)
	}
	fmt.Fprintf(&sb, "Duration    %.2fs\n", step.Duration)
	fmt.Fprintf(&sb, "Start       %s\n", step.StartDate)
	fmt.Fprintf(&sb, "End         %s\n", step.EndDate)
	if step.BuildStatus != "" {
		fmt.Fprintf(&sb, "Status      %s\n", step.BuildStatus)
	}
	if step.DocumentURL != "" {
		fmt.Fprintf(&sb, "Document    %s\n", step.DocumentURL)
	}
	if step.Signature != "" {
		fmt.Fprintf(&sb, "\n%s\n", mutedStyle.Render(step.Signature))
	}

	if len(step.Notes) > 0 {
		sb.WriteString("\n")
		for _, n := range step.Notes {
			style := mutedStyle
			switch {
			case n.IsError():
				style = errorStyle
			case n.IsWarning():
				style = warningStyle
			}
			fmt.Fprintf(&sb, "%s\n", style.Render(fmt.Sprintf("[%s] %s", n.Type, n.Title)))
		}
	}

	for _, ft := range step.SwiftFunctionTimes {
		fmt.Fprintf(&sb, "%s\n", mutedStyle.Render(fmt.Sprintf("%.2fms %s", ft.DurationMS, ft.Signature)))
	}
	return sb.String()
}

func (m model) View() string {
	if !m.ready {
		return "Loading build..."
	}

	contentHeight := m.height - 4
	if contentHeight < 5 {
		contentHeight = 5
	}

	listPanel := listBoxStyle.Width(m.listWidth).Render(
		fitLines(m.renderList(), contentHeight))
	detailPanel := listBoxStyle.Width(m.detailWidth).Render(
		fitLines(m.viewport.View(), contentHeight))

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, detailPanel)
	help := mutedStyle.Render("↑/↓ navigate · enter expand · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, panels, help)
}

func (m model) renderList() string {
	var lines []string
	for i, r := range m.rows {
		indent := strings.Repeat("  ", r.depth)
		marker := "  "
		if len(r.step.SubSteps) > 0 {
			marker = "▸ "
			if m.expanded[r.step.Identifier] {
				marker = "▾ "
			}
		}
		label := fmt.Sprintf("%s%s%s %s", indent, marker, statusIcon(*r.step), r.step.Title)
		label += mutedStyle.Render(fmt.Sprintf(" %.1fs", r.step.Duration))
		if i == m.selected {
			label = selectedStyle.Render(fmt.Sprintf("%s%s%s %s %.1fs", indent, marker, rawStatusIcon(*r.step), r.step.Title, r.step.Duration))
		}
		lines = append(lines, label)
	}
	return strings.Join(lines, "\n")
}

func statusIcon(step buildstep.BuildStep) string {
	switch {
	case step.ErrorCount > 0:
		return errorStyle.Render("✗")
	case step.WarningCount > 0:
		return warningStyle.Render("⚠")
	default:
		return successStyle.Render("✓")
	}
}

// rawStatusIcon returns the icon without styling for selected rows.
func rawStatusIcon(step buildstep.BuildStep) string {
	switch {
	case step.ErrorCount > 0:
		return "✗"
	case step.WarningCount > 0:
		return "⚠"
	default:
		return "✓"
	}
}

// fitLines pads or truncates content to exactly height lines.
func fitLines(content string, height int) string {
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
