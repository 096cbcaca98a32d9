package gui

import (
	"errors"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ErrCancelled is returned by Gui.Start when the user left the wizard without saving.
var ErrCancelled = errors.New("setup wizard cancelled")

// Gui is the interactive set-up wizard that fills in a models.Config.
type Gui struct {
	app       *tview.Application
	config    *models.Config
	cancelled bool
}

func New(config *models.Config) *Gui {
	g := &Gui{
		app:    tview.NewApplication(),
		config: config,
	}

	if g.config == nil {
		g.config = &models.Config{}
	}

	g.app.EnableMouse(true)
	g.init()

	return g
}

func (g *Gui) init() {
	pages := tview.NewPages()
	pages.AddPage("setup", g.introPage(pages), true, true)
	pages.AddPage("database-type", g.databaseSelection(pages), true, false)
	pages.AddPage("display-config", g.displayMode(pages), true, false)

	pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			g.cancelled = true
			g.app.Stop()
			return nil
		}
		return event
	})

	g.app.SetRoot(pages, true)
}

// Start runs the wizard until the config is saved or the user exits.
func (g *Gui) Start() error {
	if err := g.app.Run(); err != nil {
		return err
	}

	if g.cancelled {
		return ErrCancelled
	}
	return nil
}

func (g *Gui) Stop() {
	g.app.Stop()
}
