package teambuilder

import (
	"context"

	"github.com/FlagBrew/local-teambuilder/internal/models"
)

const (
	CollectionCatalog = "catalog"
	CollectionTeam    = "team"

	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Store is the remote data store holding the catalog and the team memberships.
type Store interface {
	ListCatalog(ctx context.Context) ([]models.CatalogEntry, error)
	InsertCatalog(ctx context.Context, entries ...models.CatalogEntry) error

	ListMemberships(ctx context.Context) ([]models.Membership, error)
	InsertMembership(ctx context.Context, member models.Membership) error
	DeleteMembership(ctx context.Context, entryID int) error
	UpdateNickname(ctx context.Context, entryID int, nickname string) error
}
