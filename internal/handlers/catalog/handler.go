package catalog

import (
	"net/http"

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

// NewHandler returns the catalog routes. writes wrap the routes that modify the catalog.
func NewHandler(store teambuilder.Store, writes ...func(http.Handler) http.Handler) *Handler {
	return &Handler{store: store, writes: writes}
}

func (h *Handler) Route(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/search", h.search)

	r.Group(func(r chi.Router) {
		r.Use(h.writes...)
		r.Post("/", h.insert)
		r.Post("/bulk", h.bulk)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListCatalog(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list catalog")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to list catalog"})
		return
	}

	chix.JSON(w, r, http.StatusOK, entries)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ListCatalog(r.Context())
	if err != nil {
		log.FromContext(r.Context()).WithError(err).Error("failed to list catalog")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to search catalog"})
		return
	}

	query := r.URL.Query()
	matches := teambuilder.Filter(entries, query.Get("q"), query.Get("type"), query.Get("region"))

	// Options are derived from the whole catalog so the selectors don't shrink while filtering.
	chix.JSON(w, r, http.StatusOK, searchResponse{
		Total:   len(matches),
		Entries: matches,
		Types:   teambuilder.DeriveTypeOptions(entries),
		Regions: teambuilder.DeriveRegionOptions(entries),
	})
}

func (h *Handler) insert(w http.ResponseWriter, r *http.Request) {
	var payload models.CatalogEntry
	if chix.Error(w, r, chix.Bind(r, &payload)) {
		return
	}

	h.save(w, r, payload)
}

func (h *Handler) bulk(w http.ResponseWriter, r *http.Request) {
	var payload bulkRequest
	if chix.Error(w, r, chix.Bind(r, &payload)) {
		return
	}

	h.save(w, r, payload.Entries...)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, entries ...models.CatalogEntry) {
	if err := h.store.InsertCatalog(r.Context(), entries...); err != nil {
		log.FromContext(r.Context()).WithError(err).WithField("count", len(entries)).Error("failed to insert catalog entries")
		chix.JSON(w, r, http.StatusInternalServerError, chix.M{"error": "failed to insert catalog entries"})
		return
	}

	chix.JSON(w, r, http.StatusCreated, chix.M{"inserted": len(entries)})
}
