// Package catalog serves the static supermarket dataset the client uses to
// populate search results. The terse JSON keys (n/p/c/i/s/d) predate this
// server and are what the mobile screens read, so they are preserved.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed supermarkets.json
var rawCatalog []byte

type CatalogProduct struct {
	Name        string  `json:"n"`
	Price       float64 `json:"p"`
	Description string  `json:"c"`
}

type Section struct {
	Name        string           `json:"n"`
	Supermarket string           `json:"s"`
	Image       string           `json:"i"`
	Products    []CatalogProduct `json:"d"`
}

// SearchHit is the flattened projection returned by search.
type SearchHit struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Section     string  `json:"section"`
	Supermarket string  `json:"supermarket"`
}

type Catalog struct {
	sections []Section
	raw      json.RawMessage
}

func Load() (*Catalog, error) {
	var sections []Section
	if err := json.Unmarshal(rawCatalog, &sections); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return &Catalog{sections: sections, raw: rawCatalog}, nil
}

// Raw returns the dataset verbatim for GET /api/data.
func (c *Catalog) Raw() json.RawMessage { return c.raw }

func (c *Catalog) Sections() []Section { return c.sections }

// Hits flattens every section into search projections, used to build the
// Elasticsearch index at startup.
func (c *Catalog) Hits() []SearchHit {
	var hits []SearchHit
	for _, s := range c.sections {
		for _, p := range s.Products {
			hits = append(hits, SearchHit{
				Name:        p.Name,
				Price:       p.Price,
				Description: p.Description,
				Section:     s.Name,
				Supermarket: s.Supermarket,
			})
		}
	}
	return hits
}

// Search is the in-memory fallback: case-insensitive substring match on
// product name and description, the same scan the client used to run.
func (c *Catalog) Search(q string) []SearchHit {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []SearchHit{}
	}

	hits := []SearchHit{}
	for _, s := range c.sections {
		for _, p := range s.Products {
			if strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) {
				hits = append(hits, SearchHit{
					Name:        p.Name,
					Price:       p.Price,
					Description: p.Description,
					Section:     s.Name,
					Supermarket: s.Supermarket,
				})
			}
		}
	}
	return hits
}
