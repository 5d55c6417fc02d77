package matchRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoClient "github.com/matchpoint-app/backend/internal/datastore/mongo"
	"github.com/matchpoint-app/backend/internal/entity"
	"github.com/matchpoint-app/backend/internal/repository/storage"
)

type IMatchRepo interface {
	EnsureMatch(ctx context.Context, userA, userB string) (*entity.Match, error)
	GetMatch(ctx context.Context, matchID string) (*entity.Match, error)
	TouchLastMessage(ctx context.Context, matchID string, timestamp time.Time) (*entity.Match, error)
	ListMatchesForUser(ctx context.Context, userID string, skip, limit int) ([]entity.Match, error)
}

type MatchRepo struct {
	collection *mongo.Collection
}

func New(db *mongo.Database) IMatchRepo {
	return &MatchRepo{
		collection: db.Collection(mongoClient.MatchesCollection),
	}
}

// EnsureMatch returns the match for the pair, creating it on first call.
// Both sides can swipe within the same instant, so the insert relies on the
// unique pair_key index: the loser of that race sees a duplicate-key error
// and re-fetches the winner's record instead of failing the caller.
func (r *MatchRepo) EnsureMatch(ctx context.Context, userA, userB string) (*entity.Match, error) {
	if userA == "" || userB == "" || userA == userB {
		return nil, entity.ErrValidation
	}

	users, pairKey := entity.NormalizePair(userA, userB)

	existing, err := r.getByPairKey(ctx, pairKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrMatchNotFound) {
		return nil, err
	}

	match := entity.Match{
		ID:            uuid.NewString(),
		PairKey:       pairKey,
		Users:         users,
		CreatedAt:     time.Now().UTC(),
		LastMessageAt: nil,
	}

	if _, err := r.collection.InsertOne(ctx, match); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.getByPairKey(ctx, pairKey)
		}
		return nil, storage.WrapErr("insert match", err)
	}

	return &match, nil
}

func (r *MatchRepo) GetMatch(ctx context.Context, matchID string) (*entity.Match, error) {
	var match entity.Match
	err := r.collection.FindOne(ctx, bson.M{"id": matchID}).Decode(&match)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMatchNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("find match", err)
	}

	return &match, nil
}

// TouchLastMessage atomically bumps last_message_at and returns the updated
// record. A missing match id yields ErrMatchNotFound and creates nothing.
func (r *MatchRepo) TouchLastMessage(ctx context.Context, matchID string, timestamp time.Time) (*entity.Match, error) {
	var match entity.Match
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"id": matchID},
		bson.M{"$set": bson.M{"last_message_at": timestamp}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&match)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMatchNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("touch last message", err)
	}

	return &match, nil
}

// ListMatchesForUser orders by last_message_at descending. Mongo's
// descending sort places null and missing values after non-null ones, so
// matches with no conversation yet come last without an aggregation.
func (r *MatchRepo) ListMatchesForUser(ctx context.Context, userID string, skip, limit int) ([]entity.Match, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "last_message_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"users": userID}, opts)
	if err != nil {
		return nil, storage.WrapErr("list matches", err)
	}
	defer cursor.Close(ctx)

	var matches []entity.Match
	if err := cursor.All(ctx, &matches); err != nil {
		return nil, storage.WrapErr("decode matches", err)
	}

	return matches, nil
}

func (r *MatchRepo) getByPairKey(ctx context.Context, pairKey string) (*entity.Match, error) {
	var match entity.Match
	err := r.collection.FindOne(ctx, bson.M{"pair_key": pairKey}).Decode(&match)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMatchNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("find match by pair", err)
	}

	return &match, nil
}
