package teambuilder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder/teambuildertest"
	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedBuilder(t *testing.T, store *teambuildertest.MemoryStore) *Builder {
	t.Helper()
	b := New(store)
	require.NoError(t, b.LoadAll(context.Background()))
	return b
}

func TestLoadAllAddScenario(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)

	b := loadedBuilder(t, store)
	assert.Equal(t, []models.CatalogEntry{pikachu}, b.Entries())
	assert.Empty(t, b.Team())

	require.NoError(t, b.Add(ctx, pikachu, "Sparky"))

	team := b.Team()
	require.Len(t, team, 1)
	assert.Equal(t, "Sparky", team[0].Nickname)
	assert.Equal(t, "Sparky", team[0].DisplayName())
	assert.Equal(t, pikachu, team[0].CatalogEntry)
	assert.Equal(t, []models.Membership{{EntryID: 1, Nickname: "Sparky"}}, store.Members())
}

func TestLoadAllDropsDanglingMemberships(t *testing.T) {
	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"), mon(2, "Eevee", "normal", "", "Kanto"))
	store.SetMembers(models.Membership{EntryID: 2, Nickname: "Vee"}, models.Membership{EntryID: 99}, models.Membership{EntryID: 1})

	b := loadedBuilder(t, store)

	team := b.Team()
	require.Len(t, team, 2)
	assert.Equal(t, "Vee", team[0].DisplayName())
	assert.Equal(t, "Pikachu", team[1].DisplayName())
}

func TestLoadAllCatalogFailureLeavesStateUntouched(t *testing.T) {
	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"))
	store.SetMembers(models.Membership{EntryID: 1})
	b := loadedBuilder(t, store)

	store.CatalogErr = teambuildertest.ErrStoreDown
	store.SetMembers()

	err := b.LoadAll(context.Background())
	require.Error(t, err)

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, CollectionCatalog, fetchErr.Collection)
	assert.ErrorIs(t, err, teambuildertest.ErrStoreDown)
	assert.False(t, IsUserFacing(err))

	assert.Len(t, b.Entries(), 1)
	assert.Len(t, b.Team(), 1)
}

func TestLoadAllTeamFailureKeepsCatalog(t *testing.T) {
	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"))
	store.SetMembers(models.Membership{EntryID: 1})
	store.TeamErr = teambuildertest.ErrStoreDown

	b := New(store)
	err := b.LoadAll(context.Background())

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, CollectionTeam, fetchErr.Collection)
	assert.Len(t, b.Entries(), 1)
	assert.Empty(t, b.Team())
}

func TestAddDuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)
	b := loadedBuilder(t, store)

	require.NoError(t, b.Add(ctx, pikachu, "Sparky"))
	writes := store.WriteCount()

	b.SetSearch("pika")
	require.NoError(t, b.Add(ctx, pikachu, "Other"))

	assert.Equal(t, writes, store.WriteCount())
	team := b.Team()
	require.Len(t, team, 1)
	assert.Equal(t, "Sparky", team[0].Nickname)
	assert.Empty(t, b.State().Search)
}

func TestAddRejectsSeventhMember(t *testing.T) {
	ctx := context.Background()
	store := teambuildertest.NewMemoryStore()
	for i := 1; i <= 7; i++ {
		require.NoError(t, store.InsertCatalog(context.Background(), mon(i, fmt.Sprintf("Mon%d", i), "normal", "", "Kanto")))
	}
	b := loadedBuilder(t, store)

	entries := b.Entries()
	for _, entry := range entries[:6] {
		require.NoError(t, b.Add(ctx, entry, ""))
	}
	before := b.Team()

	b.SetFilterType("normal")
	err := b.Add(ctx, entries[6], "X")
	require.ErrorIs(t, err, ErrTeamFull)
	assert.True(t, IsUserFacing(err))

	assert.Equal(t, before, b.Team())
	assert.Len(t, store.Members(), 6)
	assert.Equal(t, "normal", b.State().FilterType)
}

func TestAddDuplicateOnFullTeamIsRejected(t *testing.T) {
	ctx := context.Background()
	store := teambuildertest.NewMemoryStore()
	for i := 1; i <= 6; i++ {
		require.NoError(t, store.InsertCatalog(ctx, mon(i, fmt.Sprintf("Mon%d", i), "normal", "", "Kanto")))
	}
	b := loadedBuilder(t, store)

	entries := b.Entries()
	for _, entry := range entries {
		require.NoError(t, b.Add(ctx, entry, ""))
	}
	writes := store.WriteCount()

	b.SetSearch("mon")
	err := b.Add(ctx, entries[0], "X")
	require.ErrorIs(t, err, ErrTeamFull)

	assert.Equal(t, "mon", b.State().Search)
	assert.Equal(t, writes, store.WriteCount())
	assert.Len(t, b.Team(), 6)
}

func TestAddConcurrentNeverExceedsCap(t *testing.T) {
	ctx := context.Background()
	store := teambuildertest.NewMemoryStore()
	for i := 1; i <= 10; i++ {
		require.NoError(t, store.InsertCatalog(context.Background(), mon(i, fmt.Sprintf("Mon%d", i), "normal", "", "Kanto")))
	}
	b := loadedBuilder(t, store)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		full int
	)
	for _, entry := range b.Entries() {
		wg.Add(1)
		go func(entry models.CatalogEntry) {
			defer wg.Done()
			if err := b.Add(ctx, entry, ""); errors.Is(err, ErrTeamFull) {
				mu.Lock()
				full++
				mu.Unlock()
			}
		}(entry)
	}
	wg.Wait()

	assert.Len(t, b.Team(), models.MaxTeamSize)
	assert.Len(t, store.Members(), models.MaxTeamSize)
	assert.Equal(t, 4, full)
}

func TestAddRemoteFailureLeavesTeamUnchanged(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)
	b := loadedBuilder(t, store)

	b.SetSearch("pika")
	store.Fail(teambuildertest.ErrStoreDown)

	err := b.Add(ctx, pikachu, "Sparky")
	wErr, ok := AsRemoteWriteError(err)
	require.True(t, ok)
	assert.Equal(t, OpInsert, wErr.Op)
	assert.Equal(t, CollectionTeam, wErr.Collection)
	assert.False(t, IsUserFacing(err))

	assert.Empty(t, b.Team())
	assert.Equal(t, "pika", b.State().Search)

	// The failed add must not leave the entry reserved.
	store.Fail(nil)
	require.NoError(t, b.Add(ctx, pikachu, "Sparky"))
	assert.Len(t, b.Team(), 1)
}

func TestAddResetsFilters(t *testing.T) {
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	b := loadedBuilder(t, teambuildertest.NewMemoryStore(pikachu))

	b.SetSearch("pik")
	b.SetFilterType("electric")
	b.SetFilterRegion("Kanto")
	assert.True(t, b.State().Searching())
	assert.Len(t, b.Visible(), 1)

	require.NoError(t, b.Add(context.Background(), pikachu, ""))

	state := b.State()
	assert.False(t, state.Searching())
	assert.Empty(t, state.FilterType)
	assert.Empty(t, state.FilterRegion)
}

func TestRemoveThenAddUsesNewNickname(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)
	b := loadedBuilder(t, store)

	require.NoError(t, b.Add(ctx, pikachu, "Old"))
	require.NoError(t, b.Remove(ctx, pikachu.ID))
	assert.Empty(t, b.Team())

	require.NoError(t, b.Add(ctx, pikachu, "New"))
	member, ok := b.Member(pikachu.ID)
	require.True(t, ok)
	assert.Equal(t, "New", member.Nickname)
	assert.Equal(t, []models.Membership{{EntryID: 1, Nickname: "New"}}, store.Members())
}

func TestRemoveMissingEntryStillCallsStore(t *testing.T) {
	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"))
	b := loadedBuilder(t, store)

	require.NoError(t, b.Remove(context.Background(), 42))
	assert.Equal(t, 1, store.WriteCount())
}

func TestRemoveFailureKeepsMember(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)
	b := loadedBuilder(t, store)
	require.NoError(t, b.Add(ctx, pikachu, ""))

	store.Fail(teambuildertest.ErrStoreDown)
	err := b.Remove(ctx, pikachu.ID)
	require.ErrorIs(t, err, teambuildertest.ErrStoreDown)
	assert.Len(t, b.Team(), 1)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	pikachu := mon(1, "Pikachu", "electric", "", "Kanto")
	store := teambuildertest.NewMemoryStore(pikachu)
	b := loadedBuilder(t, store)
	require.NoError(t, b.Add(ctx, pikachu, "Sparky"))

	require.NoError(t, b.Rename(ctx, pikachu.ID, "X"))
	member, _ := b.Member(pikachu.ID)
	assert.Equal(t, "X", member.DisplayName())

	store.Fail(teambuildertest.ErrStoreDown)
	err := b.Rename(ctx, pikachu.ID, "Y")
	wErr, ok := AsRemoteWriteError(err)
	require.True(t, ok)
	assert.Equal(t, OpUpdate, wErr.Op)
	assert.True(t, IsUserFacing(err))

	member, _ = b.Member(pikachu.ID)
	assert.Equal(t, "X", member.DisplayName())

	store.Fail(nil)
	require.NoError(t, b.Rename(ctx, pikachu.ID, ""))
	member, _ = b.Member(pikachu.ID)
	assert.Equal(t, "Pikachu", member.DisplayName())
}

func TestAddCatalogEntryValidation(t *testing.T) {
	store := teambuildertest.NewMemoryStore()
	b := loadedBuilder(t, store)

	err := b.AddCatalogEntry(context.Background(), models.Draft{
		Name:          "",
		PokedexNumber: 1,
		SpriteURL:     "u",
		PrimaryType:   "fire",
		Region:        "Kanto",
	})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"name"}, vErr.Fields)
	assert.True(t, IsUserFacing(err))
	assert.Zero(t, store.WriteCount())
}

func TestAddCatalogEntryReportsEveryMissingField(t *testing.T) {
	b := loadedBuilder(t, teambuildertest.NewMemoryStore())

	err := b.AddCatalogEntry(context.Background(), models.Draft{SecondaryType: "fire"})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"name", "pokedex_number", "sprite_url", "primary_type", "region"}, vErr.Fields)
}

func TestAddCatalogEntryReloadsCatalogOnly(t *testing.T) {
	ctx := context.Background()
	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"))
	b := loadedBuilder(t, store)

	draft := models.Draft{
		Name:          "Charmander",
		PokedexNumber: 4,
		SpriteURL:     "charmander.png",
		PrimaryType:   "fire",
		Region:        "Kanto",
	}
	b.SetDraft(draft)
	teamReads := store.TeamReads

	require.NoError(t, b.AddCatalogEntry(ctx, draft))

	assert.Equal(t, models.Draft{}, b.State().Draft)
	assert.Equal(t, teamReads, store.TeamReads)
	assert.Equal(t, []string{"Pikachu", "Charmander"}, names(b.Entries()))
	assert.Equal(t, []string{"electric", "fire"}, b.TypeOptions())
	assert.Equal(t, []string{"Kanto"}, b.RegionOptions())
}

func TestAddCatalogEntryReloadFailureStillSucceeds(t *testing.T) {
	handler := memory.New()
	ctx := log.NewContext(context.Background(), &log.Logger{Handler: handler, Level: log.InfoLevel})

	store := teambuildertest.NewMemoryStore(mon(1, "Pikachu", "electric", "", "Kanto"))
	b := loadedBuilder(t, store)
	store.CatalogErr = teambuildertest.ErrStoreDown

	draft := models.Draft{Name: "Mew", PokedexNumber: 151, SpriteURL: "mew.png", PrimaryType: "psychic", Region: "Kanto"}
	require.NoError(t, b.AddCatalogEntry(ctx, draft))

	assert.Len(t, store.Catalog(), 2)
	assert.Equal(t, []string{"Pikachu"}, names(b.Entries()))

	var warned bool
	for _, entry := range handler.Entries {
		if entry.Level == log.WarnLevel && entry.Message == "failed to refresh catalog after insert" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestAddCatalogEntryRemoteFailure(t *testing.T) {
	store := teambuildertest.NewMemoryStore()
	b := loadedBuilder(t, store)
	store.Fail(teambuildertest.ErrStoreDown)

	draft := models.Draft{Name: "Mew", PokedexNumber: 151, SpriteURL: "mew.png", PrimaryType: "psychic", Region: "Kanto"}
	b.SetDraft(draft)

	err := b.AddCatalogEntry(context.Background(), draft)
	wErr, ok := AsRemoteWriteError(err)
	require.True(t, ok)
	assert.Equal(t, CollectionCatalog, wErr.Collection)
	assert.True(t, IsUserFacing(err))
	assert.Equal(t, draft, b.State().Draft)
	assert.Empty(t, b.Entries())
}

func TestJoin(t *testing.T) {
	catalog := []models.CatalogEntry{mon(1, "Pikachu", "electric", "", "Kanto"), mon(2, "Eevee", "normal", "", "Kanto")}
	team := Join(catalog, []models.Membership{{EntryID: 2, Nickname: "Vee"}, {EntryID: 3}})

	require.Len(t, team, 1)
	assert.Equal(t, 2, team[0].ID)
	assert.Equal(t, "Vee", team[0].Nickname)
	assert.Empty(t, Join(nil, nil))
}
