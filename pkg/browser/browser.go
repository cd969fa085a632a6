// Package browser provides an interactive terminal viewer for build
// step trees.
package browser

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sairamkotha/XCLogParser/pkg/buildstep"
)

// Run launches the step browser and blocks until the user quits.
func Run(ctx context.Context, root buildstep.BuildStep) error {
	program := tea.NewProgram(newModel(root), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
