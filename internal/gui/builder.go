package gui

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder"
	"github.com/apex/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	filterAll  = "All"
	optionNone = "(none)"

	builderHelp = "[red]ESC - exit[-:-:-:-] [yellow]F1 search F2 type F3 region F4 results F5 team F6 new entry [orange]team: r - rename, d - remove"
)

// Builder is the team builder screen. It renders a teambuilder.Builder and forwards user
// actions to it.
type Builder struct {
	app   *tview.Application
	pages *tview.Pages

	// Only touched from the draw goroutine.
	ctx     context.Context
	tb      *teambuilder.Builder
	shown   []models.CatalogEntry
	members []models.TeamEntry
	draft   models.Draft
	syncing bool

	search       *tview.InputField
	typeFilter   *tview.DropDown
	regionFilter *tview.DropDown
	results      *tview.List
	team         *tview.List
	form         *tview.Form
	logs         *tview.TextView
}

func NewBuilder() *Builder {
	b := &Builder{
		app:   tview.NewApplication(),
		pages: tview.NewPages(),
		ctx:   context.Background(),
	}

	b.app.EnableMouse(true)
	b.init()

	return b
}

func (b *Builder) init() {
	b.search = tview.NewInputField().SetLabel("Search: ").SetFieldWidth(30)
	b.search.SetChangedFunc(func(text string) {
		if b.syncing || b.tb == nil {
			return
		}
		b.tb.SetSearch(text)
		b.refresh()
	})

	b.typeFilter = tview.NewDropDown().SetLabel("Type: ")
	b.typeFilter.SetSelectedFunc(func(text string, index int) {
		if b.syncing || b.tb == nil {
			return
		}
		b.tb.SetFilterType(filterValue(text, index))
		b.refresh()
	})

	b.regionFilter = tview.NewDropDown().SetLabel("Region: ")
	b.regionFilter.SetSelectedFunc(func(text string, index int) {
		if b.syncing || b.tb == nil {
			return
		}
		b.tb.SetFilterRegion(filterValue(text, index))
		b.refresh()
	})

	b.results = tview.NewList()
	b.results.SetBorder(true).SetTitle("Results")
	b.results.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(b.shown) {
			b.selectEntry(b.shown[index])
		}
	})

	b.team = tview.NewList()
	b.team.SetBorder(true).SetTitle("Team")
	b.team.SetInputCapture(b.teamKeys)

	b.form = tview.NewForm()
	b.form.SetBorder(true).SetTitle("New catalog entry")
	b.buildForm(models.Draft{})

	b.logs = tview.NewTextView().SetScrollable(true).SetMaxLines(500)
	b.logs.SetChangedFunc(func() {
		b.app.Draw()
	})
	b.logs.SetBorder(true).SetTitle("Logs")

	filters := tview.NewFlex().
		AddItem(b.search, 0, 2, true).
		AddItem(b.typeFilter, 0, 1, false).
		AddItem(b.regionFilter, 0, 1, false)

	main := tview.NewFlex().
		AddItem(b.results, 0, 2, false).
		AddItem(b.team, 0, 2, false).
		AddItem(b.form, 0, 2, false)

	help := tview.NewTextView().SetDynamicColors(true).SetText(builderHelp)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(filters, 1, 0, true).
		AddItem(main, 0, 3, false).
		AddItem(b.logs, 0, 1, false).
		AddItem(help, 1, 0, false)
	root.SetBorder(true).SetTitle("Local Team Builder")

	b.pages.AddPage("main", root, true, true)

	b.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := b.pages.GetFrontPage(); name != "main" {
			return event
		}

		switch event.Key() {
		case tcell.KeyEscape:
			b.app.Stop()
			return nil
		case tcell.KeyF1:
			b.app.SetFocus(b.search)
		case tcell.KeyF2:
			b.app.SetFocus(b.typeFilter)
		case tcell.KeyF3:
			b.app.SetFocus(b.regionFilter)
		case tcell.KeyF4:
			b.app.SetFocus(b.results)
		case tcell.KeyF5:
			b.app.SetFocus(b.team)
		case tcell.KeyF6:
			b.app.SetFocus(b.form)
		default:
			return event
		}
		return nil
	})

	b.app.SetRoot(b.pages, true)
}

// GetLogOutput returns the writer backing the log panel.
func (b *Builder) GetLogOutput() io.Writer {
	return b.logs
}

// SetBuilder attaches tb to the screen and loads the catalog and team in the background.
func (b *Builder) SetBuilder(ctx context.Context, tb *teambuilder.Builder) {
	b.app.QueueUpdateDraw(func() {
		b.ctx = ctx
		b.tb = tb
	})

	go func() {
		if err := tb.LoadAll(ctx); err != nil {
			log.FromContext(ctx).WithError(err).Error("failed to load team builder data")
		}
		b.app.QueueUpdateDraw(b.refresh)
	}()
}

func (b *Builder) Start() error {
	return b.app.Run()
}

func (b *Builder) Stop() {
	b.app.Stop()
}

// run calls fn off the draw goroutine, then hands its error to done and redraws.
func (b *Builder) run(fn func(ctx context.Context, tb *teambuilder.Builder) error, done func(err error)) {
	ctx, tb := b.ctx, b.tb
	if tb == nil {
		return
	}

	go func() {
		err := fn(ctx, tb)
		b.app.QueueUpdateDraw(func() {
			if done != nil {
				done(err)
			}
			b.refresh()
		})
	}()
}

// report shows user-facing errors. Everything else is already logged by the teambuilder package.
func (b *Builder) report(err error) {
	if teambuilder.IsUserFacing(err) {
		b.alert(err.Error())
	}
}

func (b *Builder) refresh() {
	if b.tb == nil {
		return
	}

	state := b.tb.State()

	b.syncing = true
	if b.search.GetText() != state.Search {
		b.search.SetText(state.Search)
	}
	setFilterOptions(b.typeFilter, b.tb.TypeOptions(), state.FilterType)
	setFilterOptions(b.regionFilter, b.tb.RegionOptions(), state.FilterRegion)
	b.syncing = false

	b.results.Clear()
	b.shown = nil
	if state.Searching() {
		b.shown = b.tb.Visible()
	}
	for _, entry := range b.shown {
		b.results.AddItem(entryTitle(entry), entryDetails(entry), 0, nil)
	}
	b.results.SetTitle(fmt.Sprintf("Results (%d)", len(b.shown)))

	b.members = b.tb.Team()
	current := b.team.GetCurrentItem()
	b.team.Clear()
	for _, member := range b.members {
		b.team.AddItem(memberTitle(member), entryDetails(member.CatalogEntry), 0, nil)
	}
	if current < len(b.members) {
		b.team.SetCurrentItem(current)
	}
	b.team.SetTitle(fmt.Sprintf("Team (%d/%d)", len(b.members), models.MaxTeamSize))
}

func (b *Builder) selectEntry(entry models.CatalogEntry) {
	add := func(nickname string) {
		b.run(func(ctx context.Context, tb *teambuilder.Builder) error {
			return tb.Add(ctx, entry, nickname)
		}, b.report)
	}

	if len(b.members) >= models.MaxTeamSize {
		b.alert(teambuilder.ErrTeamFull.Error())
		return
	}

	if _, ok := b.tb.Member(entry.ID); ok {
		add("")
		return
	}

	b.prompt(fmt.Sprintf("Nickname for %s (leave empty to skip)", entry.Name), "", add)
}

func (b *Builder) teamKeys(event *tcell.EventKey) *tcell.EventKey {
	index := b.team.GetCurrentItem()
	if index < 0 || index >= len(b.members) {
		return event
	}
	member := b.members[index]

	switch {
	case event.Key() == tcell.KeyDelete, event.Rune() == 'd':
		b.run(func(ctx context.Context, tb *teambuilder.Builder) error {
			return tb.Remove(ctx, member.ID)
		}, b.report)
	case event.Rune() == 'r':
		b.prompt(fmt.Sprintf("New nickname for %s", member.Name), member.Nickname, func(nickname string) {
			b.run(func(ctx context.Context, tb *teambuilder.Builder) error {
				return tb.Rename(ctx, member.ID, nickname)
			}, b.report)
		})
	default:
		return event
	}
	return nil
}

func (b *Builder) buildForm(draft models.Draft) {
	b.draft = draft
	b.form.Clear(true)

	changed := func() {
		if b.tb != nil {
			b.tb.SetDraft(b.draft)
		}
	}

	pokedex := ""
	if draft.PokedexNumber != 0 {
		pokedex = strconv.Itoa(draft.PokedexNumber)
	}

	types := withNone(models.AllTypes)
	regions := withNone(models.AllRegions)

	b.form.AddInputField("Name", draft.Name, 30, nil, func(text string) {
		b.draft.Name = strings.TrimSpace(text)
		changed()
	})
	b.form.AddInputField("Pokedex #", pokedex, 8, tview.InputFieldInteger, func(text string) {
		b.draft.PokedexNumber, _ = strconv.Atoi(text)
		changed()
	})
	b.form.AddInputField("Sprite URL", draft.SpriteURL, 40, nil, func(text string) {
		b.draft.SpriteURL = strings.TrimSpace(text)
		changed()
	})
	b.form.AddDropDown("Primary type", types, optionIndex(models.AllTypes, draft.PrimaryType), func(text string, index int) {
		b.draft.PrimaryType = filterValue(text, index)
		changed()
	})
	b.form.AddDropDown("Secondary type", types, optionIndex(models.AllTypes, draft.SecondaryType), func(text string, index int) {
		b.draft.SecondaryType = filterValue(text, index)
		changed()
	})
	b.form.AddDropDown("Region", regions, optionIndex(models.AllRegions, draft.Region), func(text string, index int) {
		b.draft.Region = filterValue(text, index)
		changed()
	})

	b.form.AddButton("Add to catalog", func() {
		draft := b.draft
		b.run(func(ctx context.Context, tb *teambuilder.Builder) error {
			return tb.AddCatalogEntry(ctx, draft)
		}, func(err error) {
			if err != nil {
				b.report(err)
				return
			}
			b.buildForm(b.tb.State().Draft)
			b.alert(fmt.Sprintf("Added %s to the catalog", draft.Name))
		})
	})
}

func (b *Builder) prompt(title, value string, done func(text string)) {
	focus := b.app.GetFocus()
	closePrompt := func() {
		b.pages.RemovePage("prompt")
		b.app.SetFocus(focus)
	}

	form := tview.NewForm()
	form.AddInputField("Nickname", value, 30, nil, func(text string) {
		value = strings.TrimSpace(text)
	})
	form.AddButton("Save", func() {
		closePrompt()
		done(value)
	})
	form.AddButton("Cancel", closePrompt)
	form.SetCancelFunc(closePrompt)
	form.SetBorder(true).SetTitle(title)

	b.pages.AddPage("prompt", center(form, 60, 7), true, true)
	b.app.SetFocus(form)
}

func (b *Builder) alert(message string) {
	focus := b.app.GetFocus()

	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			b.pages.RemovePage("alert")
			b.app.SetFocus(focus)
		})

	b.pages.AddPage("alert", modal, true, true)
	b.app.SetFocus(modal)
}

func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 1, true).
			AddItem(nil, 0, 1, false), width, 1, true).
		AddItem(nil, 0, 1, false)
}

// setFilterOptions replaces the options of d with "All" followed by options, keeping current
// selected.
func setFilterOptions(d *tview.DropDown, options []string, current string) {
	d.SetOptions(append([]string{filterAll}, options...), nil)
	d.SetCurrentOption(optionIndex(options, current))
}

// optionIndex returns the drop-down index of value in a list prefixed by a catch-all option.
func optionIndex(options []string, value string) int {
	if value == "" {
		return 0
	}
	return slices.Index(options, value) + 1
}

// filterValue maps the catch-all option at index 0 back to an empty value.
func filterValue(text string, index int) string {
	if index <= 0 {
		return ""
	}
	return text
}

func withNone(options []string) []string {
	return append([]string{optionNone}, options...)
}

func entryTitle(entry models.CatalogEntry) string {
	return fmt.Sprintf("#%03d %s", entry.PokedexNumber, entry.Name)
}

func memberTitle(member models.TeamEntry) string {
	if member.Nickname == "" {
		return entryTitle(member.CatalogEntry)
	}
	return fmt.Sprintf("#%03d %s (%s)", member.PokedexNumber, member.DisplayName(), member.Name)
}

func entryDetails(entry models.CatalogEntry) string {
	types := entry.PrimaryType
	if entry.SecondaryType != "" {
		types += "/" + entry.SecondaryType
	}
	return fmt.Sprintf("%s | %s | %s", types, entry.Region, entry.SpriteURL)
}
