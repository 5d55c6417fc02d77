package chatUseCase

import (
	"context"

	"github.com/matchpoint-app/backend/internal/entity"
	matchRepo "github.com/matchpoint-app/backend/internal/repository/match"
	messageRepo "github.com/matchpoint-app/backend/internal/repository/message"
)

const defaultMessagesLimit = 50

type IChatUseCase interface {
	SendMessage(ctx context.Context, senderID, matchID, content, contentType string) (*entity.Message, error)
	ListMessages(ctx context.Context, userID, matchID string, skip, limit int) ([]entity.Message, error)
	MarkDelivered(ctx context.Context, userID, messageID string) (*entity.Message, error)
	MarkRead(ctx context.Context, userID, messageID string) (*entity.Message, error)
	DeleteMessage(ctx context.Context, userID, messageID string) (*entity.Message, error)
}

type chatUseCase struct {
	messages messageRepo.IMessageRepo
	matches  matchRepo.IMatchRepo
}

func New(messages messageRepo.IMessageRepo, matches matchRepo.IMatchRepo) IChatUseCase {
	return &chatUseCase{
		messages: messages,
		matches:  matches,
	}
}

// SendMessage stores the message and bumps the match's last-message
// timestamp to the message's sent_at so conversation lists stay ordered.
func (u *chatUseCase) SendMessage(ctx context.Context, senderID, matchID, content, contentType string) (*entity.Message, error) {
	if senderID == "" || matchID == "" || content == "" {
		return nil, entity.ErrValidation
	}

	match, err := u.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(senderID) {
		return nil, entity.ErrNotMatchMember
	}

	message, err := u.messages.Create(ctx, matchID, senderID, content, contentType)
	if err != nil {
		return nil, err
	}

	if _, err := u.matches.TouchLastMessage(ctx, matchID, message.SentAt); err != nil {
		return nil, err
	}

	return message, nil
}

func (u *chatUseCase) ListMessages(ctx context.Context, userID, matchID string, skip, limit int) ([]entity.Message, error) {
	if userID == "" || matchID == "" {
		return nil, entity.ErrValidation
	}
	if limit <= 0 {
		limit = defaultMessagesLimit
	}

	match, err := u.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, entity.ErrNotMatchMember
	}

	return u.messages.ListForMatch(ctx, matchID, skip, limit)
}

func (u *chatUseCase) MarkDelivered(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := u.memberMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	return u.messages.MarkDelivered(ctx, message.ID)
}

func (u *chatUseCase) MarkRead(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := u.memberMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	return u.messages.MarkRead(ctx, message.ID)
}

// DeleteMessage soft-deletes; the record stays but drops out of listings.
// Only the user who sent the message may delete it.
func (u *chatUseCase) DeleteMessage(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	message, err := u.memberMessage(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, entity.ErrNotMessageSender
	}
	return u.messages.MarkDeleted(ctx, message.ID)
}

// memberMessage loads the message and verifies the caller belongs to the
// match it was sent in.
func (u *chatUseCase) memberMessage(ctx context.Context, userID, messageID string) (*entity.Message, error) {
	if userID == "" || messageID == "" {
		return nil, entity.ErrValidation
	}

	message, err := u.messages.Get(ctx, messageID)
	if err != nil {
		return nil, err
	}

	match, err := u.matches.GetMatch(ctx, message.MatchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, entity.ErrNotMatchMember
	}

	return message, nil
}
