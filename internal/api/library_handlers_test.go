package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectoraapp/lectora/internal/domain"
	"github.com/lectoraapp/lectora/internal/store"
)

func bookBody(id string, pages int) map[string]any {
	body := map[string]any{"id": id, "title": "Libro " + id}
	if pages > 0 {
		body["pageCount"] = pages
	}
	return body
}

func ids(books []domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestLibrary_EmptySnapshot(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/library")
	require.Equal(t, http.StatusOK, resp.Code)

	lib := decode[domain.Library](t, resp)
	assert.Empty(t, lib.ReadingNow)
	assert.Empty(t, lib.ToRead)
	assert.Empty(t, lib.Finished)
	assert.Empty(t, lib.Progress)
}

func TestLibrary_ListsAreExclusive(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/library/to-read", bookBody("OL1W", 200))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	lib := decode[domain.Library](t, resp)
	assert.Equal(t, []string{"OL1W"}, ids(lib.ToRead))

	resp = ts.api.Post("/api/v1/library/reading-now", bookBody("OL1W", 200))
	require.Equal(t, http.StatusOK, resp.Code)
	lib = decode[domain.Library](t, resp)
	assert.Equal(t, []string{"OL1W"}, ids(lib.ReadingNow))
	assert.Empty(t, lib.ToRead)
	assert.Equal(t, 0, lib.Progress["OL1W"])

	resp = ts.api.Post("/api/v1/library/finished", bookBody("OL1W", 200))
	require.Equal(t, http.StatusOK, resp.Code)
	lib = decode[domain.Library](t, resp)
	assert.Equal(t, []string{"OL1W"}, ids(lib.Finished))
	assert.Empty(t, lib.ReadingNow)
	assert.Equal(t, 200, lib.Progress["OL1W"])
}

func TestLibrary_MissingBookID(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/library/to-read", map[string]any{"id": "  ", "title": "Sin id"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[APIError](t, resp).Code)
}

func TestLibrary_Remove(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Post("/api/v1/library/to-read", bookBody("OL1W", 0))
	ts.api.Post("/api/v1/library/to-read", bookBody("OL2W", 0))

	resp := ts.api.Delete("/api/v1/library/to-read/OL1W")
	require.Equal(t, http.StatusOK, resp.Code)
	lib := decode[domain.Library](t, resp)
	assert.Equal(t, []string{"OL2W"}, ids(lib.ToRead))

	resp = ts.api.Delete("/api/v1/library/wishlist/OL2W")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestLibrary_Progress(t *testing.T) {
	ts := setupTestServer(t)
	ts.api.Post("/api/v1/library/reading-now", bookBody("OL1W", 100))

	resp := ts.api.Post("/api/v1/library/progress/OL1W", map[string]any{"delta": 30, "total": 100})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, ProgressResponse{BookID: "OL1W", PagesRead: 30}, decode[ProgressResponse](t, resp))

	resp = ts.api.Post("/api/v1/library/progress/OL1W", map[string]any{"delta": 500, "total": 100})
	assert.Equal(t, 100, decode[ProgressResponse](t, resp).PagesRead)

	resp = ts.api.Put("/api/v1/library/progress/OL1W", map[string]any{"pages": -4, "total": 100})
	assert.Equal(t, 0, decode[ProgressResponse](t, resp).PagesRead)

	resp = ts.api.Put("/api/v1/library/progress/OL1W", map[string]any{"pages": 42})
	assert.Equal(t, 42, decode[ProgressResponse](t, resp).PagesRead)

	lib := decode[domain.Library](t, ts.api.Get("/api/v1/library"))
	assert.Equal(t, 42, lib.Progress["OL1W"])
}

func TestLibrary_LegacyReadingNowIsMigrated(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	require.NoError(t, ts.kv.Set(ctx, store.KeyReadingNow, []byte(`{"id":"OL9W","title":"Viejo","pageCount":300}`)))
	require.NoError(t, ts.kv.Set(ctx, store.KeyProgressLegacy, []byte(`{"OL9W":50}`)))

	lib := decode[domain.Library](t, ts.api.Get("/api/v1/library"))
	assert.Equal(t, []string{"OL9W"}, ids(lib.ReadingNow))
	assert.Equal(t, 150, lib.Progress["OL9W"])

	raw, err := ts.kv.Get(ctx, store.KeyReadingNow)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"OL9W","title":"Viejo","pageCount":300}]`, string(raw))
}
