// Package teambuilder keeps a local mirror of the catalog and the team in sync with a Store.
//
// Writes are fire-and-confirm: the mirror only changes after the store acknowledged the write.
package teambuilder

import (
	"slices"
	"sync"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"golang.org/x/sync/singleflight"
)

// State is the transient, user-owned part of the builder.
type State struct {
	Search       string
	FilterType   string
	FilterRegion string
	Draft        models.Draft
}

// Searching reports whether any filter is set.
func (s State) Searching() bool {
	return s.Search != "" || s.FilterType != "" || s.FilterRegion != ""
}

type Builder struct {
	store Store
	loads singleflight.Group

	// mu guards everything below. It is never held across a store call.
	mu      sync.Mutex
	catalog []models.CatalogEntry
	team    []models.TeamEntry
	pending map[int]struct{}
	state   State
}

func New(store Store) *Builder {
	return &Builder{
		store:   store,
		catalog: []models.CatalogEntry{},
		team:    []models.TeamEntry{},
		pending: map[int]struct{}{},
	}
}

// Entries returns a copy of the mirrored catalog.
func (b *Builder) Entries() []models.CatalogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.catalog)
}

// Team returns a copy of the mirrored team.
func (b *Builder) Team() []models.TeamEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.team)
}

// Member returns the team entry for entryID.
func (b *Builder) Member(entryID int) (models.TeamEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, member := range b.team {
		if member.ID == entryID {
			return member, true
		}
	}
	return models.TeamEntry{}, false
}

func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Builder) SetSearch(query string) {
	b.mu.Lock()
	b.state.Search = query
	b.mu.Unlock()
}

func (b *Builder) SetFilterType(typ string) {
	b.mu.Lock()
	b.state.FilterType = typ
	b.mu.Unlock()
}

func (b *Builder) SetFilterRegion(region string) {
	b.mu.Lock()
	b.state.FilterRegion = region
	b.mu.Unlock()
}

func (b *Builder) SetDraft(draft models.Draft) {
	b.mu.Lock()
	b.state.Draft = draft
	b.mu.Unlock()
}

// ResetFilters clears the search text and both filters.
func (b *Builder) ResetFilters() {
	b.mu.Lock()
	b.resetFilters()
	b.mu.Unlock()
}

func (b *Builder) resetFilters() {
	b.state.Search = ""
	b.state.FilterType = ""
	b.state.FilterRegion = ""
}

// Visible returns the catalog entries matching the current search and filters.
func (b *Builder) Visible() []models.CatalogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Filter(b.catalog, b.state.Search, b.state.FilterType, b.state.FilterRegion)
}

func (b *Builder) TypeOptions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DeriveTypeOptions(b.catalog)
}

func (b *Builder) RegionOptions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DeriveRegionOptions(b.catalog)
}
