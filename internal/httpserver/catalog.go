package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/smart_shopper/internal/catalog"
	"github.com/Skotchmaster/smart_shopper/internal/logging"
	"github.com/Skotchmaster/smart_shopper/internal/service/search"
)

const defaultSearchSize = 20

type CatalogHTTP struct {
	Catalog *catalog.Catalog
	ES      *elasticsearch.Client
	Index   string
}

// GetData serves the static dataset verbatim, same bytes the client has
// always parsed.
func (h *CatalogHTTP) GetData(c echo.Context) error {
	return c.JSONBlob(http.StatusOK, h.Catalog.Raw())
}

// SearchData queries Elasticsearch when configured and silently falls back
// to the in-memory scan when it is absent or failing; a degraded search is
// still a 200.
func (h *CatalogHTTP) SearchData(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("catalog_search_error", "status", 400, "reason", "q required")
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	if h.ES != nil {
		total, hits, err := search.Search(ctx, h.ES, h.Index, q, 0, defaultSearchSize)
		if err == nil {
			return c.JSON(http.StatusOK, echo.Map{"total": total, "products": hits})
		}
		l.Warn("catalog_search_degraded", "reason", "elasticsearch unavailable", "error", err)
	}

	hits := h.Catalog.Search(q)
	return c.JSON(http.StatusOK, echo.Map{"total": len(hits), "products": hits})
}
