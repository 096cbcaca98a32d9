package teambuilder

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateDraft returns a ValidationError naming every required field left empty.
func ValidateDraft(draft models.Draft) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fields := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// hasMember must be called with mu held.
func (b *Builder) hasMember(entryID int) bool {
	if _, ok := b.pending[entryID]; ok {
		return true
	}
	return slices.ContainsFunc(b.team, func(t models.TeamEntry) bool {
		return t.ID == entryID
	})
}

// Add inserts entry into the team under nickname. A full team is rejected with ErrTeamFull before
// anything else. Adding an entry that is already on the team (or currently being added) does
// nothing. The filters are cleared after the add.
//
// The team slot is reserved before the store call, so concurrent adds never grow the team past
// models.MaxTeamSize.
func (b *Builder) Add(ctx context.Context, entry models.CatalogEntry, nickname string) error {
	logger := log.FromContext(ctx).WithField("entry_id", entry.ID)

	b.mu.Lock()
	if len(b.team)+len(b.pending) >= models.MaxTeamSize {
		b.mu.Unlock()
		return ErrTeamFull
	}
	if b.hasMember(entry.ID) {
		b.resetFilters()
		b.mu.Unlock()
		return nil
	}
	b.pending[entry.ID] = struct{}{}
	b.mu.Unlock()

	err := b.store.InsertMembership(ctx, models.Membership{EntryID: entry.ID, Nickname: nickname})

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, entry.ID)

	if err != nil {
		logger.WithError(err).Error("failed to save team member")
		return &RemoteWriteError{Op: OpInsert, Collection: CollectionTeam, Err: err}
	}

	b.team = append(b.team, models.TeamEntry{CatalogEntry: entry, Nickname: nickname})
	b.resetFilters()
	return nil
}

// Remove deletes the membership of entryID. The delete is sent even when the entry is not on the
// local team.
func (b *Builder) Remove(ctx context.Context, entryID int) error {
	if err := b.store.DeleteMembership(ctx, entryID); err != nil {
		log.FromContext(ctx).WithError(err).WithField("entry_id", entryID).Error("failed to remove team member")
		return &RemoteWriteError{Op: OpDelete, Collection: CollectionTeam, Err: err}
	}

	b.mu.Lock()
	b.team = slices.DeleteFunc(b.team, func(t models.TeamEntry) bool {
		return t.ID == entryID
	})
	b.mu.Unlock()
	return nil
}

// Rename sets the nickname of entryID.
func (b *Builder) Rename(ctx context.Context, entryID int, nickname string) error {
	if err := b.store.UpdateNickname(ctx, entryID, nickname); err != nil {
		log.FromContext(ctx).WithError(err).WithField("entry_id", entryID).Error("failed to update nickname")
		return &RemoteWriteError{Op: OpUpdate, Collection: CollectionTeam, Err: err}
	}

	b.mu.Lock()
	for i := range b.team {
		if b.team[i].ID == entryID {
			b.team[i].Nickname = nickname
		}
	}
	b.mu.Unlock()
	return nil
}

// AddCatalogEntry validates draft and inserts it into the catalog. On success the stored draft is
// cleared and the catalog is re-fetched.
func (b *Builder) AddCatalogEntry(ctx context.Context, draft models.Draft) error {
	logger := log.FromContext(ctx)

	if err := ValidateDraft(draft); err != nil {
		return err
	}

	if err := b.store.InsertCatalog(ctx, draft.Entry()); err != nil {
		logger.WithError(err).WithField("name", draft.Name).Error("failed to insert catalog entry")
		return &RemoteWriteError{Op: OpInsert, Collection: CollectionCatalog, Err: err}
	}

	b.mu.Lock()
	b.state.Draft = models.Draft{}
	b.mu.Unlock()

	if err := b.ReloadCatalog(ctx); err != nil {
		logger.WithError(err).Warn("failed to refresh catalog after insert")
	}
	return nil
}
