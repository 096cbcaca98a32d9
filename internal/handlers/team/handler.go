package team

import (
	"net/http"
	"strconv"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder"
	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/lrstanley/chix"
)

type Handler struct {
	store  teambuilder.Store
	writes []func(http.Handler) http.Handler
}

// NewHandler returns the team routes. writes wrap the routes that modify the team.
func NewHandler(store teambuilder.Store, writes ...func(http.Handler) http.Handler) *Handler {
	return &Handler{store: store, writes: writes}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/entries", h.entries)

	r.Group(func(r chi.Router) {
		r.Use(h.writes...)
		r.Post("/", h.insert)
		r.Patch("/{entryID}", h.rename)
		r.Delete("/{entryID}", h.remove)
	})
}

func entryID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "entryID"))
	if err != nil {
		chix.JSON(w, r, http.StatusBadRequest, chix.M{"error": "invalid entry id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.ListMemberships(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list team")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list team"})
		return
	}

	chix.JSON(w, r, http.StatusOK, members)
}

func (h *Handler) entries(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())

	catalog, err := h.store.ListCatalog(r.Context())
	if err != nil {
		logger.WithError(err).Error("failed to list catalog")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list catalog"})
		return
	}

	members, err := h.store.ListMemberships(r.Context())
	if err != nil {
		logger.WithError(err).Error("failed to list team")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list team"})
		return
	}

	chix.JSON(w, r, http.StatusOK, teambuilder.Join(catalog, members))
}

func (h *Handler) insert(w http.ResponseWriter, r *http.Request) {
	var payload models.Membership
	if chix.Error(w, r, chix.Bind(r, &payload)) {
		return
	}

	if err := h.store.InsertMembership(r.Context(), payload); err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("entry_id", payload.EntryID).Error("failed to insert team member")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to add team member"})
		return
	}

	chix.JSON(w, r, http.StatusCreated, payload)
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var payload renameRequest
	if chix.Error(w, r, chix.Bind(r, &payload)) {
		return
	}

	if err := h.store.UpdateNickname(r.Context(), id, payload.Nickname); err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("entry_id", id).Error("failed to update nickname")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to update nickname"})
		return
	}

	chix.JSON(w, r, http.StatusOK, chix.M{})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteMembership(r.Context(), id); err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("entry_id", id).Error("failed to remove team member")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to remove team member"})
		return
	}

	chix.JSON(w, r, http.StatusOK, chix.M{})
}
