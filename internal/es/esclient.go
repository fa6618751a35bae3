package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/smart_shopper/internal/catalog"
	"github.com/Skotchmaster/smart_shopper/internal/config"
)

func NewClient(cfg config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}

	return client, nil
}

// IndexCatalog writes every catalog product into the search index. Document
// ids are positional so re-indexing on restart overwrites instead of
// duplicating.
func IndexCatalog(ctx context.Context, client *elasticsearch.Client, index string, cat *catalog.Catalog) error {
	for i, hit := range cat.Hits() {
		data, err := json.Marshal(hit)
		if err != nil {
			return fmt.Errorf("marshal catalog doc: %w", err)
		}

		res, err := client.Index(
			index,
			bytes.NewReader(data),
			client.Index.WithContext(ctx),
			client.Index.WithDocumentID(strconv.Itoa(i)),
		)
		if err != nil {
			return fmt.Errorf("index catalog doc: %w", err)
		}
		if res.IsError() {
			res.Body.Close()
			return fmt.Errorf("index catalog doc: %s", res.Status())
		}
		res.Body.Close()
	}
	return nil
}
