package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-chase/game"
	"github.com/beka-birhanu/vinom-chase/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.ResultRepo = &ResultRepo{}

// ResultRepo persists finished games.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new ResultRepo with the given MongoDB client, database name, and collection name.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) *ResultRepo {
	return &ResultRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes indexes results by player and finish time.
func (r *ResultRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "finishedAt", Value: -1}},
	})
	return err
}

// Save inserts the result. Results are immutable once written.
func (r *ResultRepo) Save(result *game.Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, result); err != nil {
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// ByPlayer returns up to limit results of the player, newest first.
func (r *ResultRepo) ByPlayer(playerID uuid.UUID, limit int64) ([]game.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding results: %w", err)
	}

	results := []game.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}
