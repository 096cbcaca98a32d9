package teambuilder

import (
	"context"
	"errors"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// Join resolves every membership to its catalog entry. Memberships pointing at an entry that is
// not in the catalog are dropped.
func Join(catalog []models.CatalogEntry, members []models.Membership) []models.TeamEntry {
	index := make(map[int]models.CatalogEntry, len(catalog))
	for _, entry := range catalog {
		index[entry.ID] = entry
	}

	team := make([]models.TeamEntry, 0, len(members))
	for _, member := range members {
		entry, ok := index[member.EntryID]
		if !ok {
			continue
		}
		team = append(team, models.TeamEntry{CatalogEntry: entry, Nickname: member.Nickname})
	}
	return team
}

// LoadAll fetches the catalog and the team and rebuilds the mirror. Concurrent calls share a
// single load.
//
// When the catalog fetch fails nothing is replaced. When only the team fetch fails the catalog
// is replaced and the team is left as it was.
func (b *Builder) LoadAll(ctx context.Context) error {
	_, err, _ := b.loads.Do("all", func() (any, error) {
		return nil, b.loadAll(ctx)
	})
	return err
}

func (b *Builder) loadAll(ctx context.Context) error {
	logger := log.FromContext(ctx)

	var (
		g          errgroup.Group
		catalog    []models.CatalogEntry
		members    []models.Membership
		catalogErr error
		memberErr  error
	)

	g.Go(func() error {
		var err error
		catalog, err = b.store.ListCatalog(ctx)
		if err != nil {
			logger.WithError(err).Error("failed to fetch catalog")
			catalogErr = &RemoteFetchError{Collection: CollectionCatalog, Err: err}
		}
		return catalogErr
	})

	g.Go(func() error {
		var err error
		members, err = b.store.ListMemberships(ctx)
		if err != nil {
			logger.WithError(err).Error("failed to fetch team")
			memberErr = &RemoteFetchError{Collection: CollectionTeam, Err: err}
		}
		return memberErr
	})

	if err := g.Wait(); err != nil && catalogErr != nil {
		return errors.Join(catalogErr, memberErr)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.catalog = catalog
	if memberErr != nil {
		return memberErr
	}

	b.team = Join(catalog, members)
	logger.WithField("catalog", len(catalog)).WithField("team", len(b.team)).Debug("loaded catalog and team")
	return nil
}

// ReloadCatalog re-fetches the catalog only. The team is left untouched.
func (b *Builder) ReloadCatalog(ctx context.Context) error {
	catalog, err := b.store.ListCatalog(ctx)
	if err != nil {
		log.FromContext(ctx).WithError(err).Error("failed to fetch catalog")
		return &RemoteFetchError{Collection: CollectionCatalog, Err: err}
	}

	b.mu.Lock()
	b.catalog = catalog
	b.mu.Unlock()
	return nil
}
