package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Registry, ctx.Projector), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
