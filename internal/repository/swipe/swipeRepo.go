package swipeRepo

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

// ISwipeRepo is the append-only ledger of swipe decisions. RecordDecision
// is the only write; a decision is never updated or deleted.
type ISwipeRepo interface {
	RecordDecision(ctx context.Context, userID, targetID string, isLike bool) (*entity.Swipe, error)
	GetDecision(ctx context.Context, userID, targetID string) (*entity.Swipe, error)
	ListAcceptedTargets(ctx context.Context, userID string, skip, limit int) ([]string, error)
	ListDecidedTargets(ctx context.Context, userID string, skip, limit int) ([]string, error)
	ListReciprocalLikes(ctx context.Context, userID string, candidates []string) ([]string, error)
	CountDecisionsSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type SwipeRepo struct {
	collection *mongo.Collection
}

func New(db *mongo.Database) ISwipeRepo {
	return &SwipeRepo{
		collection: db.Collection(mongoClient.SwipesCollection),
	}
}

// RecordDecision inserts the decision with a server-assigned timestamp.
// The unique (user_id, target_id) index rejects a repeat decision for the
// same pair, which surfaces as ErrSwipeExists.
func (r *SwipeRepo) RecordDecision(ctx context.Context, userID, targetID string, isLike bool) (*entity.Swipe, error) {
	if userID == "" || targetID == "" || userID == targetID {
		return nil, entity.ErrValidation
	}

	swipe := entity.Swipe{
		ID:        uuid.NewString(),
		UserID:    userID,
		TargetID:  targetID,
		IsLike:    isLike,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, swipe); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, entity.ErrSwipeExists
		}
		return nil, storage.WrapErr("insert swipe", err)
	}

	return &swipe, nil
}

func (r *SwipeRepo) GetDecision(ctx context.Context, userID, targetID string) (*entity.Swipe, error) {
	var swipe entity.Swipe
	err := r.collection.FindOne(ctx, bson.M{
		"user_id":   userID,
		"target_id": targetID,
	}).Decode(&swipe)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrSwipeNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("find swipe", err)
	}

	return &swipe, nil
}

// ListAcceptedTargets streams target ids this user liked, ordered by
// decision id so skip/limit pagination is stable.
func (r *SwipeRepo) ListAcceptedTargets(ctx context.Context, userID string, skip, limit int) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"target_id": 1}).
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{
		"user_id": userID,
		"is_like": true,
	}, opts)
	if err != nil {
		return nil, storage.WrapErr("list accepted targets", err)
	}
	defer cursor.Close(ctx)

	var targets []string
	for cursor.Next(ctx) {
		var doc struct {
			TargetID string `bson:"target_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, storage.WrapErr("decode swipe", err)
		}
		targets = append(targets, doc.TargetID)
	}
	if err := cursor.Err(); err != nil {
		return nil, storage.WrapErr("list accepted targets", err)
	}

	return targets, nil
}

// ListDecidedTargets returns every target this user decided on, liked or
// not. Discovery uses it to avoid re-serving already-swiped profiles.
func (r *SwipeRepo) ListDecidedTargets(ctx context.Context, userID string, skip, limit int) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"target_id": 1}).
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storage.WrapErr("list decided targets", err)
	}
	defer cursor.Close(ctx)

	var targets []string
	for cursor.Next(ctx) {
		var doc struct {
			TargetID string `bson:"target_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, storage.WrapErr("decode swipe", err)
		}
		targets = append(targets, doc.TargetID)
	}
	if err := cursor.Err(); err != nil {
		return nil, storage.WrapErr("list decided targets", err)
	}

	return targets, nil
}

// ListReciprocalLikes returns the subset of candidates that recorded a like
// back at this user. Each reciprocal relationship maps to exactly one
// decision row per direction, so the result carries no duplicates.
func (r *SwipeRepo) ListReciprocalLikes(ctx context.Context, userID string, candidates []string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"user_id":   bson.M{"$in": candidates},
		"target_id": userID,
		"is_like":   true,
	}, options.Find().SetProjection(bson.M{"user_id": 1}))
	if err != nil {
		return nil, storage.WrapErr("list reciprocal likes", err)
	}
	defer cursor.Close(ctx)

	var userIDs []string
	for cursor.Next(ctx) {
		var doc struct {
			UserID string `bson:"user_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, storage.WrapErr("decode swipe", err)
		}
		userIDs = append(userIDs, doc.UserID)
	}
	if err := cursor.Err(); err != nil {
		return nil, storage.WrapErr("list reciprocal likes", err)
	}

	return userIDs, nil
}

// CountDecisionsSince seeds the daily quota counter on a cache miss.
func (r *SwipeRepo) CountDecisionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, storage.WrapErr("count swipes", err)
	}
	return int(count), nil
}
