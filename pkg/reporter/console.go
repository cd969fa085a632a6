package reporter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// Console reports a build as styled terminal output via lipgloss.
// A Console is safe for concurrent Report calls.
type Console struct {
	theme Theme
	width int
}

// NewConsole creates a console reporter with the given theme.
func NewConsole(theme Theme, width int) *Console {
	if width <= 0 {
		width = 80
	}
	return &Console{theme: theme, width: width}
}

// Report formats the build header, per-target timings and the slowest
// command invocations.
func (c *Console) Report(root buildstep.BuildStep) (string, error) {
	var sb strings.Builder
	c.writeHeader(&sb, root)
	c.writeTargets(&sb, root)
	c.writeSlowest(&sb, root)
	return sb.String(), nil
}

func (c *Console) writeHeader(sb *strings.Builder, root buildstep.BuildStep) {
	icon, style := c.statusIconStyle(root.BuildStatus)
	sb.WriteString(style.Render(icon + " "))
	sb.WriteString(c.theme.Bold.Render(root.Title))
	sb.WriteString(c.theme.Muted.Render(fmt.Sprintf("  %.2fs", root.Duration)))
	sb.WriteString("\n")

	if root.WarningCount > 0 {
		sb.WriteString("  ")
		sb.WriteString(c.theme.Warning.Render(fmt.Sprintf("%s %d warnings", c.theme.Icons.Warn, root.WarningCount)))
		sb.WriteString("\n")
	}
	if root.ErrorCount > 0 {
		sb.WriteString("  ")
		sb.WriteString(c.theme.Error.Render(fmt.Sprintf("%s %d errors", c.theme.Icons.Fail, root.ErrorCount)))
		sb.WriteString("\n")
	}
}

func (c *Console) writeTargets(sb *strings.Builder, root buildstep.BuildStep) {
	if len(root.SubSteps) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(c.theme.Bold.Render("Targets"))
	sb.WriteString("\n")

	maxName := 0
	for _, target := range root.SubSteps {
		if w := runewidth.StringWidth(target.Title); w > maxName {
			maxName = w
		}
	}
	nameCap := c.width - 20
	if maxName > nameCap {
		maxName = nameCap
	}

	for _, target := range root.SubSteps {
		sb.WriteString("  ")
		sb.WriteString(c.theme.Muted.Render(c.theme.Icons.Bullet + " "))
		sb.WriteString(c.theme.Primary.Render(padRight(truncate(target.Title, maxName), maxName)))
		sb.WriteString(c.theme.Muted.Render(fmt.Sprintf("  %7.2fs", target.Duration)))
		if target.ErrorCount > 0 {
			sb.WriteString(c.theme.Error.Render(fmt.Sprintf("  %d errors", target.ErrorCount)))
		} else if target.WarningCount > 0 {
			sb.WriteString(c.theme.Warning.Render(fmt.Sprintf("  %d warnings", target.WarningCount)))
		}
		sb.WriteString("\n")
	}
}

// writeSlowest lists the longest command invocations across all
// targets, grouped label per category.
func (c *Console) writeSlowest(sb *strings.Builder, root buildstep.BuildStep) {
	type slow struct {
		title    string
		category string
		duration float64
	}
	var details []slow
	for _, target := range root.SubSteps {
		for _, d := range target.SubSteps {
			details = append(details, slow{d.Title, string(d.DetailCategory), d.Duration})
		}
	}
	if len(details) == 0 {
		return
	}
	sort.Slice(details, func(i, j int) bool { return details[i].duration > details[j].duration })
	top := details
	if len(top) > 10 {
		top = top[:10]
	}

	sb.WriteString("\n")
	header := "Slowest steps"
	if len(details) > len(top) {
		header += fmt.Sprintf(" (top %d of %d)", len(top), len(details))
	}
	sb.WriteString(c.theme.Bold.Render(header))
	sb.WriteString("\n")

	// Casers are stateful transformers, so build one per call rather
	// than sharing one across concurrent reports.
	title := cases.Title(language.English)

	maxName := 0
	for _, d := range top {
		if w := runewidth.StringWidth(d.title); w > maxName {
			maxName = w
		}
	}
	nameCap := c.width - 30
	if maxName > nameCap {
		maxName = nameCap
	}

	for _, d := range top {
		sb.WriteString("  ")
		sb.WriteString(padRight(truncate(d.title, maxName), maxName))
		sb.WriteString(c.theme.Warning.Render(fmt.Sprintf("  %7.2fs", d.duration)))
		sb.WriteString(c.theme.Muted.Render("  " + title.String(categoryLabel(d.category))))
		sb.WriteString("\n")
	}
}

// categoryLabel turns a camelCase detail category into spaced words so
// the title caser reads naturally, e.g. "swiftCompilation" to "swift
// compilation".
func categoryLabel(category string) string {
	var sb strings.Builder
	for _, r := range category {
		if r >= 'A' && r <= 'Z' {
			sb.WriteRune(' ')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (c *Console) statusIconStyle(status string) (string, lipgloss.Style) {
	switch status {
	case "succeeded":
		return c.theme.Icons.Pass, c.theme.Success
	case "failed":
		return c.theme.Icons.Fail, c.theme.Error
	default:
		return c.theme.Icons.Info, c.theme.Muted
	}
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
