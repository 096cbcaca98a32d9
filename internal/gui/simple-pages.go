package gui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) introPage(p *tview.Pages) tview.Primitive {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetText(`Welcome to Local Team Builder, if this is the first time you're running it, [::b]I strongly recommend you read the wiki[-:-:-:-] (https://github.com/FlagBrew/local-teambuilder/wiki)

This wizard will walk you through setting up where your catalog and team are stored, and how the server is reached.

[::b]It is strongly recommended that you maximize this terminal window to avoid text being cut-off[-:-:-:-]

If you would like to exit the wizard early, please press the [red]esc key[-:-:-:-], otherwise please press [yellow]enter[-:-:-:-] to continue

`)

	textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			p.SwitchToPage("database-type")
		}
		return event
	})

	frame := tview.NewFrame(textView)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true).SetTitle("Local Team Builder")
	return frame
}

// databaseSummary describes the configured database, masking the password.
func databaseSummary(database, connectionString string) string {
	values := parseConnectionString(database, connectionString)

	switch database {
	case "sqlite":
		return fmt.Sprintf("Type: Sqlite\nFile: %s", values[0])
	case "postgres", "mysql":
		if values[0] == "" {
			return "Failed to parse database connection string"
		}
		return fmt.Sprintf(`Type: %s
User: %s, Password: %s
Host: %s, Port: %s
DB Name: %s
`, database, values[0], strings.Repeat("*", len(values[1])), values[2], values[3], values[4])
	default:
		return "No database configured"
	}
}

func (g *Gui) confirmationPage(p *tview.Pages) tview.Primitive {
	form := tview.NewForm()

	displayMode := "simple"
	if g.config.FancyScreen {
		displayMode = "fancy"
	}

	seed := g.config.Misc.SeedCatalog
	if seed == "" {
		seed = "none"
	}

	form.AddTextView("Database Settings", databaseSummary(g.config.Database.DBType, g.config.Database.ConnectionString), 0, 0, true, true)
	form.AddTextView("HTTP Settings", fmt.Sprintf(`Listening Address: %s
Listening Port: %d
Writes per minute: %d
`, g.config.HTTP.ListeningAddr, g.config.HTTP.Port, g.config.HTTP.WriteLimit), 0, 0, true, true)
	form.AddTextView("Display Mode", displayMode, 0, 0, true, true)
	form.AddTextView("Seed Catalog", seed, 0, 0, true, true)

	form.AddButton("Save", func() {
		g.Stop()
	})
	form.AddButton("Edit", func() {
		p.SwitchToPage("database-type")
	})

	frame := tview.NewFrame(form)
	frame.AddText("Please review the details below, and if all is good, press enter on the save button, otherwise, press the edit button to go back to the first page (with your data saved of course)", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - submit [orange] (Shift+)Tab - switch buttons", false, tview.AlignLeft, tcell.ColorYellow)
	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Settings Review")

	return frame
}
