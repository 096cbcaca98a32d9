package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func (g *Gui) databaseSelection(p *tview.Pages) tview.Primitive {
	list := tview.NewList()

	list.AddItem("sqlite", "Easiest to use, creates a database file on disk, good if you're building teams for yourself only, [::b]if you have no experience with databases, use this option", '1', func() {
		p.AddPage("db-config", g.databaseConfigPage(p, "sqlite"), true, false)
		p.SwitchToPage("db-config")
	})
	list.AddItem("MySql", "Requires a running instance of a MySql database, recommended if sharing the catalog with others", '2', func() {
		p.AddPage("db-config", g.databaseConfigPage(p, "mysql"), true, false)
		p.SwitchToPage("db-config")
	})
	list.AddItem("Postgres", "Requires a running instance of a Postgres database, recommended if sharing the catalog with others", '3', func() {
		p.AddPage("db-config", g.databaseConfigPage(p, "postgres"), true, false)
		p.SwitchToPage("db-config")
	})

	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Choosing Database")
	frame.AddText("Please select below what database you would like to store the catalog and your team in", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)
	return frame
}

func (g *Gui) seedSelection(p *tview.Pages) tview.Primitive {
	list := tview.NewList()
	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Seed Catalog")
	frame.AddText("Would you like to import a catalog when the database is empty? (JSON array of entries, file path or URL)", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)

	list.AddItem("Yes", "You will be asked for the location of the catalog file", '1', func() {
		p.AddPage("seed-config", g.seedConfigPage(p), true, false)
		p.SwitchToPage("seed-config")
	})
	list.AddItem("No", "You will start with an empty catalog and add entries yourself", '2', func() {
		g.config.Misc.SeedCatalog = ""
		p.AddPage("http-config", g.httpConfigPage(p), true, false)
		p.SwitchToPage("http-config")
	})

	return frame
}

func (g *Gui) displayMode(p *tview.Pages) tview.Primitive {
	list := tview.NewList()

	list.AddItem("simple", "Plain and simple, no fancy terminal GUI, the server just writes plain-ol logs.", '1', func() {
		g.config.FancyScreen = false
		p.AddPage("confirm", g.confirmationPage(p), true, false)
		p.SwitchToPage("confirm")
	})
	list.AddItem("fancy", "Runs the team builder screen next to the server, logs are shown at the bottom of the screen.", '2', func() {
		g.config.FancyScreen = true
		p.AddPage("confirm", g.confirmationPage(p), true, false)
		p.SwitchToPage("confirm")
	})

	frame := tview.NewFrame(list)
	frame.SetBorder(true)
	frame.SetTitle("Local Team Builder - Choosing Display Mode")
	frame.AddText("Please select below which display mode you would like to use when running Local Team Builder", true, tview.AlignLeft, tcell.ColorYellow)
	frame.AddText("[red]ESC - exit[-:-:-:-] [yellow] Enter - continue", false, tview.AlignLeft, tcell.ColorYellow)
	return frame
}
