package search

import (
	"fmt"
	"strings"

	ms "github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
)

const prospectIndex = "prospects"

// ProspectDoc is the flattened search view of one fused record inside a run.
type ProspectDoc struct {
	ID          string  `json:"id"`
	RunID       string  `json:"run_id"`
	Status      string  `json:"status"`
	Address     string  `json:"address"`
	CompanyName string  `json:"company_name"`
	Title       string  `json:"title"`
	Phone       string  `json:"phone"`
	Siren       string  `json:"siren"`
	Owner       string  `json:"owner"`
	DistanceM   float64 `json:"distance_m"`
}

// RunIndexer pushes fused run results into Meilisearch so the UI can free-text
// search within one prospecting run.
type RunIndexer struct {
	client *ClientWrapper
	logger *zap.Logger
}

// NewRunIndexer builds a RunIndexer and declares the run_id/status filters.
func NewRunIndexer(client *ClientWrapper, logger *zap.Logger) (*RunIndexer, error) {
	if err := client.EnsureFilterable(prospectIndex, []string{"run_id", "status"}); err != nil {
		return nil, fmt.Errorf("configuration index prospects: %w", err)
	}
	return &RunIndexer{client: client, logger: logger}, nil
}

// IndexRun flattens and indexes every record of a run.
func (ri *RunIndexer) IndexRun(run *models.ProspectRun) error {
	records := run.AllRecords()
	docs := make([]ProspectDoc, 0, len(records))
	for i, rec := range records {
		doc := ProspectDoc{
			ID:          fmt.Sprintf("%s-%d", run.RunID, i),
			RunID:       run.RunID,
			Status:      string(rec.Status),
			Address:     strings.TrimSpace(rec.Addr().String()),
			CompanyName: rec.CompanyName,
			Title:       rec.DirectoryTitle,
			Phone:       rec.DirectoryPhone,
			Siren:       rec.Siren,
			Owner:       rec.OwnerName,
		}
		if rec.DistanceToCenterM != nil {
			doc.DistanceM = *rec.DistanceToCenterM
		}
		docs = append(docs, doc)
	}

	if err := ri.client.AddDocuments(prospectIndex, docs, "id"); err != nil {
		return fmt.Errorf("indexation run %s: %w", run.RunID, err)
	}

	ri.logger.Info("run indexe", zap.String("run_id", run.RunID), zap.Int("docs", len(docs)))
	return nil
}

// SearchRun free-text searches within one run.
func (ri *RunIndexer) SearchRun(runID, query string, limit int64) (*ms.SearchResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	return ri.client.SearchIndex(prospectIndex, query, FilterRun(runID), limit)
}

// DeleteRun drops all documents of one run from the index.
func (ri *RunIndexer) DeleteRun(runID string) error {
	return ri.client.DeleteByFilter(prospectIndex, FilterRun(runID))
}
