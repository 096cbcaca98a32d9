package database

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/FlagBrew/local-teambuilder/internal/models"
)

var catalogFields = []string{"id", "name", "pokedex_number", "sprite_url", "primary_type", "secondary_type", "region"}

// Store implements the catalog and team tables on top of a SQL driver.
type Store struct {
	drv *entsql.Driver
}

func NewStore(drv *entsql.Driver) *Store {
	return &Store{drv: drv}
}

func (s *Store) Close() error {
	return s.drv.Close()
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

func (s *Store) ListCatalog(ctx context.Context) ([]models.CatalogEntry, error) {
	b := s.builder()
	query, args := b.Select(catalogFields...).
		From(b.Table(CatalogTableName)).
		OrderBy("id").
		Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	entries := []models.CatalogEntry{}
	for rows.Next() {
		var entry models.CatalogEntry
		var secondary sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.PokedexNumber,
			&entry.SpriteURL,
			&entry.PrimaryType,
			&secondary,
			&entry.Region,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entry.SecondaryType = secondary.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}

	return entries, nil
}

// InsertCatalog inserts all entries in a single statement. IDs on the entries are ignored.
func (s *Store) InsertCatalog(ctx context.Context, entries ...models.CatalogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ins := s.builder().Insert(CatalogTableName).
		Columns(catalogFields[1:]...)
	for _, entry := range entries {
		ins.Values(
			entry.Name,
			entry.PokedexNumber,
			entry.SpriteURL,
			entry.PrimaryType,
			nullString(entry.SecondaryType),
			entry.Region,
		)
	}

	query, args := ins.Query()
	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to insert catalog entries: %w", err)
	}
	return nil
}

func (s *Store) ListMemberships(ctx context.Context) ([]models.Membership, error) {
	b := s.builder()
	query, args := b.Select("entry_id", "nickname").
		From(b.Table(TeamTableName)).
		OrderBy("id").
		Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("failed to query team: %w", err)
	}
	defer rows.Close()

	members := []models.Membership{}
	for rows.Next() {
		var member models.Membership
		var nickname sql.NullString
		if err := rows.Scan(&member.EntryID, &nickname); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		member.Nickname = nickname.String
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team: %w", err)
	}

	return members, nil
}

func (s *Store) InsertMembership(ctx context.Context, member models.Membership) error {
	query, args := s.builder().Insert(TeamTableName).
		Columns("entry_id", "nickname").
		Values(member.EntryID, nullString(member.Nickname)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to insert team member: %w", err)
	}
	return nil
}

// DeleteMembership removes every membership pointing at entryID.
func (s *Store) DeleteMembership(ctx context.Context, entryID int) error {
	query, args := s.builder().Delete(TeamTableName).
		Where(entsql.EQ("entry_id", entryID)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	return nil
}

func (s *Store) UpdateNickname(ctx context.Context, entryID int, nickname string) error {
	query, args := s.builder().Update(TeamTableName).
		Set("nickname", nullString(nickname)).
		Where(entsql.EQ("entry_id", entryID)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
