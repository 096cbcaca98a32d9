package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder/teambuildertest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(store *teambuildertest.MemoryStore) http.Handler {
	r := chi.NewRouter()
	r.Route("/catalog", NewHandler(store).Route)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListCatalog(t *testing.T) {
	store := teambuildertest.NewMemoryStore(
		teambuildertest.Mon(1, "Pikachu", "electric", "", "Kanto"),
		teambuildertest.Mon(2, "Gyarados", "water", "flying", "Kanto"),
	)

	rec := do(t, newRouter(store), http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.CatalogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Equal(t, store.Catalog(), entries)
}

func TestListCatalogStoreFailure(t *testing.T) {
	store := teambuildertest.NewMemoryStore()
	store.CatalogErr = teambuildertest.ErrStoreDown

	rec := do(t, newRouter(store), http.MethodGet, "/catalog", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to list catalog")
}

func TestSearchCatalog(t *testing.T) {
	store := teambuildertest.NewMemoryStore(
		teambuildertest.Mon(1, "Pikachu", "electric", "", "Kanto"),
		teambuildertest.Mon(2, "Gyarados", "water", "flying", "Kanto"),
		teambuildertest.Mon(3, "Pichu", "electric", "", "Johto"),
	)

	rec := do(t, newRouter(store), http.MethodGet, "/catalog/search?q=PI&type=electric&region=Johto", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Pichu", resp.Entries[0].Name)
	assert.Equal(t, []string{"electric", "water", "flying"}, resp.Types)
	assert.Equal(t, []string{"Kanto", "Johto"}, resp.Regions)
}

func TestInsertCatalogEntry(t *testing.T) {
	store := teambuildertest.NewMemoryStore()

	body := `{"name":"Charmander","pokedex_number":4,"sprite_url":"charmander.png","primary_type":"fire","region":"Kanto"}`
	rec := do(t, newRouter(store), http.MethodPost, "/catalog", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	catalog := store.Catalog()
	require.Len(t, catalog, 1)
	assert.Equal(t, "Charmander", catalog[0].Name)
	assert.Equal(t, 1, catalog[0].ID)
}

func TestInsertCatalogMalformedBody(t *testing.T) {
	store := teambuildertest.NewMemoryStore()

	rec := do(t, newRouter(store), http.MethodPost, "/catalog", `{"name":`)
	assert.GreaterOrEqual(t, rec.Code, http.StatusBadRequest)
	assert.Zero(t, store.WriteCount())
}

func TestInsertCatalogStoreFailure(t *testing.T) {
	store := teambuildertest.NewMemoryStore()
	store.Fail(teambuildertest.ErrStoreDown)

	body := `{"name":"Charmander","pokedex_number":4,"sprite_url":"charmander.png","primary_type":"fire","region":"Kanto"}`
	rec := do(t, newRouter(store), http.MethodPost, "/catalog", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestBulkInsert(t *testing.T) {
	store := teambuildertest.NewMemoryStore()

	body := `{"entries":[
		{"name":"Bulbasaur","pokedex_number":1,"sprite_url":"b.png","primary_type":"grass","secondary_type":"poison","region":"Kanto"},
		{"name":"Chikorita","pokedex_number":152,"sprite_url":"c.png","primary_type":"grass","region":"Johto"}
	]}`
	rec := do(t, newRouter(store), http.MethodPost, "/catalog/bulk", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	catalog := store.Catalog()
	require.Len(t, catalog, 2)
	assert.Equal(t, "poison", catalog[0].SecondaryType)
	assert.Equal(t, 1, store.WriteCount())
}

func TestWriteMiddlewareOnlyWrapsWrites(t *testing.T) {
	store := teambuildertest.NewMemoryStore()
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	r := chi.NewRouter()
	r.Route("/catalog", NewHandler(store, blocked).Route)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/catalog", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, r, http.MethodPost, "/catalog", `{}`).Code)
	assert.Zero(t, store.WriteCount())
}
