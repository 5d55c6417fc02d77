package messageRepo

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

type IMessageRepo interface {
	Create(ctx context.Context, matchID, senderID, content, contentType string) (*entity.Message, error)
	Get(ctx context.Context, messageID string) (*entity.Message, error)
	ListForMatch(ctx context.Context, matchID string, skip, limit int) ([]entity.Message, error)
	MarkDelivered(ctx context.Context, messageID string) (*entity.Message, error)
	MarkRead(ctx context.Context, messageID string) (*entity.Message, error)
	MarkDeleted(ctx context.Context, messageID string) (*entity.Message, error)
}

type MessageRepo struct {
	collection *mongo.Collection
}

func New(db *mongo.Database) IMessageRepo {
	return &MessageRepo{
		collection: db.Collection(mongoClient.MessagesCollection),
	}
}

func (r *MessageRepo) Create(ctx context.Context, matchID, senderID, content, contentType string) (*entity.Message, error) {
	if contentType == "" {
		contentType = "text"
	}

	message := entity.Message{
		ID:          uuid.NewString(),
		MatchID:     matchID,
		SenderID:    senderID,
		Content:     content,
		ContentType: contentType,
		SentAt:      time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, message); err != nil {
		return nil, storage.WrapErr("insert message", err)
	}

	return &message, nil
}

func (r *MessageRepo) Get(ctx context.Context, messageID string) (*entity.Message, error) {
	var message entity.Message
	err := r.collection.FindOne(ctx, bson.M{"id": messageID}).Decode(&message)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMessageNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("find message", err)
	}

	return &message, nil
}

// ListForMatch queries newest-first against the (match_id, sent_at) index,
// then reverses so callers get chronological order. Soft-deleted messages
// are excluded.
func (r *MessageRepo) ListForMatch(ctx context.Context, matchID string, skip, limit int) ([]entity.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sent_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{
		"match_id":   matchID,
		"is_deleted": false,
	}, opts)
	if err != nil {
		return nil, storage.WrapErr("list messages", err)
	}
	defer cursor.Close(ctx)

	var messages []entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, storage.WrapErr("decode messages", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *MessageRepo) MarkDelivered(ctx context.Context, messageID string) (*entity.Message, error) {
	return r.setField(ctx, messageID, bson.M{"delivered_at": time.Now().UTC()})
}

func (r *MessageRepo) MarkRead(ctx context.Context, messageID string) (*entity.Message, error) {
	return r.setField(ctx, messageID, bson.M{"read_at": time.Now().UTC()})
}

func (r *MessageRepo) MarkDeleted(ctx context.Context, messageID string) (*entity.Message, error) {
	return r.setField(ctx, messageID, bson.M{"is_deleted": true})
}

func (r *MessageRepo) setField(ctx context.Context, messageID string, fields bson.M) (*entity.Message, error) {
	var message entity.Message
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"id": messageID},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&message)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMessageNotFound
	}
	if err != nil {
		return nil, storage.WrapErr("update message", err)
	}

	return &message, nil
}
