package teambuilder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FlagBrew/local-teambuilder/internal/models"
)

// ErrTeamFull is returned when adding to a team that already holds models.MaxTeamSize members.
var ErrTeamFull = fmt.Errorf("your team can only have %d members", models.MaxTeamSize)

// ValidationError lists the required draft fields that were left empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "please fill out all required fields: " + strings.Join(e.Fields, ", ")
}

// RemoteFetchError wraps a failed read of one of the store collections.
type RemoteFetchError struct {
	Collection string
	Err        error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Collection, e.Err)
}

func (e *RemoteFetchError) Unwrap() error {
	return e.Err
}

// RemoteWriteError wraps a failed insert, update or delete.
type RemoteWriteError struct {
	Op         string
	Collection string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// AsRemoteWriteError attempts to unwrap an error into a RemoteWriteError.
func AsRemoteWriteError(err error) (*RemoteWriteError, bool) {
	var wErr *RemoteWriteError
	if errors.As(err, &wErr) {
		return wErr, true
	}
	return nil, false
}

// IsUserFacing reports whether err should be shown to the user instead of only being logged.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTeamFull) {
		return true
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return true
	}

	if wErr, ok := AsRemoteWriteError(err); ok {
		return wErr.Collection == CollectionCatalog || wErr.Op == OpUpdate
	}

	return false
}
