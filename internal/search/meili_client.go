// Package search indexes finished prospecting runs in Meilisearch and serves
// free-text queries over them.
package search

import (
	"fmt"

	ms "github.com/meilisearch/meilisearch-go"
)

// ClientWrapper narrows the Meilisearch client to the handful of index
// operations the run indexer needs.
type ClientWrapper struct {
	cli ms.ServiceManager
}

// NewClientWrapper connects to a Meilisearch instance.
func NewClientWrapper(url, key string) *ClientWrapper {
	client := ms.New(url, ms.WithAPIKey(key))
	return &ClientWrapper{
		cli: client,
	}
}

// SearchIndex queries one index with an optional filter expression.
func (c *ClientWrapper) SearchIndex(index string, q string, filter string, limit int64) (*ms.SearchResponse, error) {
	idx := c.cli.Index(index)

	req := &ms.SearchRequest{
		Limit:  limit,
		Filter: filter,
	}

	return idx.Search(q, req)
}

// AddDocuments pushes documents to an index.
func (c *ClientWrapper) AddDocuments(index string, docs interface{}, primaryKey string) error {
	_, err := c.cli.Index(index).AddDocuments(docs, primaryKey)
	return err
}

// EnsureFilterable declares the filterable attributes of an index.
func (c *ClientWrapper) EnsureFilterable(index string, attrs []string) error {
	_, err := c.cli.Index(index).UpdateSettings(&ms.Settings{
		FilterableAttributes: attrs,
	})
	return err
}

// DeleteByFilter removes all documents matching a filter expression.
func (c *ClientWrapper) DeleteByFilter(index string, filter string) error {
	_, err := c.cli.Index(index).DeleteDocumentsByFilter(filter)
	return err
}

// FilterRun creates filter string scoping a query to one prospecting run.
func FilterRun(runID string) string {
	return fmt.Sprintf("run_id = %q", runID)
}
