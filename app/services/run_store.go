package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
)

const runCollection = "prospect_runs"

// RunStore persists prospecting runs in MongoDB so results survive restarts
// and can be re-exported later.
type RunStore struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewRunStore builds the store and ensures its indexes.
func NewRunStore(db *mongo.Database, logger *zap.Logger) (*RunStore, error) {
	rs := &RunStore{db: db, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Collection(runCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "run_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creation index %s: %w", runCollection, err)
	}
	return rs, nil
}

// Save upserts a run by its run_id.
func (rs *RunStore) Save(ctx context.Context, run *models.ProspectRun) error {
	filter := bson.M{"run_id": run.RunID}
	update := bson.M{"$set": run}

	_, err := rs.db.Collection(runCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("sauvegarde run %s: %w", run.RunID, err)
	}

	rs.logger.Debug("run sauvegarde", zap.String("run_id", run.RunID))
	return nil
}

// Get loads one run by id. Returns (nil, nil) when absent.
func (rs *RunStore) Get(ctx context.Context, runID string) (*models.ProspectRun, error) {
	var run models.ProspectRun
	err := rs.db.Collection(runCollection).FindOne(ctx, bson.M{"run_id": runID}).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture run %s: %w", runID, err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first.
func (rs *RunStore) List(ctx context.Context, limit int64) ([]models.ProspectRun, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := rs.db.Collection(runCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []models.ProspectRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("decodage runs: %w", err)
	}
	return runs, nil
}

// Delete removes a run.
func (rs *RunStore) Delete(ctx context.Context, runID string) error {
	_, err := rs.db.Collection(runCollection).DeleteOne(ctx, bson.M{"run_id": runID})
	if err != nil {
		return fmt.Errorf("suppression run %s: %w", runID, err)
	}
	return nil
}

// Count returns the stored run count.
func (rs *RunStore) Count(ctx context.Context) (int64, error) {
	return rs.db.Collection(runCollection).CountDocuments(ctx, bson.M{})
}
