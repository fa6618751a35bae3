package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/smart_shopper/internal/catalog"
)

func TestGetCatalogData(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sections := decode[[]catalog.Section](t, rec)
	require.NotEmpty(t, sections)
	require.NotEmpty(t, sections[0].Products)
}

func TestCatalogSearchFallsBackWithoutES(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/data/search?q=milk", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[map[string]any](t, rec)
	products, ok := resp["products"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, products)

	recEmpty := env.do(t, http.MethodGet, "/api/data/search", nil)
	require.Equal(t, http.StatusBadRequest, recEmpty.Code)
}
