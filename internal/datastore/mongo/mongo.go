package mongoClient

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SwipesCollection   = "swipes"
	MatchesCollection  = "matches"
	MessagesCollection = "messages"
)

// InitializeDB connects to the document store holding swipes, matches and
// messages, and verifies the connection with a ping.
func InitializeDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// swipe index is what turns a repeat decision into a duplicate-key error,
// and the unique pair_key index is what serializes the concurrent-accept
// race on match creation.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(SwipesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "target_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create swipes index: %w", err)
	}

	_, err = db.Collection(MatchesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pair_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "users", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create matches indexes: %w", err)
	}

	_, err = db.Collection(MessagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "match_id", Value: 1},
			{Key: "sent_at", Value: -1},
		},
	})
	if err != nil {
		return fmt.Errorf("create messages index: %w", err)
	}

	return nil
}
