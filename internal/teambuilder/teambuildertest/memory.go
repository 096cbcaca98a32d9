// Package teambuildertest provides an in-memory teambuilder.Store for tests.
package teambuildertest

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/FlagBrew/local-teambuilder/internal/models"
)

var ErrStoreDown = errors.New("store is down")

// MemoryStore keeps the catalog and the team in memory. Setting one of the Err fields makes the
// matching operations fail.
type MemoryStore struct {
	mu      sync.Mutex
	nextID  int
	catalog []models.CatalogEntry
	members []models.Membership

	CatalogErr error
	TeamErr    error
	WriteErr   error

	CatalogReads int
	TeamReads    int
	Writes       int
}

// NewMemoryStore returns a store holding entries. Entries keep their IDs.
func NewMemoryStore(entries ...models.CatalogEntry) *MemoryStore {
	s := &MemoryStore{}
	for _, entry := range entries {
		s.nextID = max(s.nextID, entry.ID)
		s.catalog = append(s.catalog, entry)
	}
	return s
}

// Mon builds a catalog entry for tests.
func Mon(id int, name, primary, secondary, region string) models.CatalogEntry {
	return models.CatalogEntry{
		ID:            id,
		Name:          name,
		PokedexNumber: id,
		SpriteURL:     name + ".png",
		PrimaryType:   primary,
		SecondaryType: secondary,
		Region:        region,
	}
}

func (s *MemoryStore) ListCatalog(context.Context) ([]models.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CatalogReads++
	if s.CatalogErr != nil {
		return nil, s.CatalogErr
	}
	return slices.Clone(s.catalog), nil
}

func (s *MemoryStore) InsertCatalog(_ context.Context, entries ...models.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for _, entry := range entries {
		s.nextID++
		entry.ID = s.nextID
		s.catalog = append(s.catalog, entry)
	}
	return nil
}

func (s *MemoryStore) ListMemberships(context.Context) ([]models.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TeamReads++
	if s.TeamErr != nil {
		return nil, s.TeamErr
	}
	return slices.Clone(s.members), nil
}

func (s *MemoryStore) InsertMembership(_ context.Context, member models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.members = append(s.members, member)
	return nil
}

func (s *MemoryStore) DeleteMembership(_ context.Context, entryID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.members = slices.DeleteFunc(s.members, func(m models.Membership) bool {
		return m.EntryID == entryID
	})
	return nil
}

func (s *MemoryStore) UpdateNickname(_ context.Context, entryID int, nickname string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Writes++
	if s.WriteErr != nil {
		return s.WriteErr
	}
	for i := range s.members {
		if s.members[i].EntryID == entryID {
			s.members[i].Nickname = nickname
		}
	}
	return nil
}

// Fail makes every following write return err. A nil err restores writes.
func (s *MemoryStore) Fail(err error) {
	s.mu.Lock()
	s.WriteErr = err
	s.mu.Unlock()
}

func (s *MemoryStore) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Writes
}

func (s *MemoryStore) Catalog() []models.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.catalog)
}

func (s *MemoryStore) Members() []models.Membership {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members)
}

// SetMembers replaces the team.
func (s *MemoryStore) SetMembers(members ...models.Membership) {
	s.mu.Lock()
	s.members = members
	s.mu.Unlock()
}
