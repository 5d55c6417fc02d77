package swipeUseCase

import (
	"context"
	"errors"
	"time"

	"github.com/matchpoint-app/backend/internal/entity"
	matchRepo "github.com/matchpoint-app/backend/internal/repository/match"
	quotaRepo "github.com/matchpoint-app/backend/internal/repository/quota"
	swipeRepo "github.com/matchpoint-app/backend/internal/repository/swipe"
)

const defaultMutualLikesLimit = 100

type ISwipeUseCase interface {
	Swipe(ctx context.Context, userID, targetID string, isLike bool) (*entity.Swipe, *entity.Match, entity.Outcome, error)
	FindMutualLikes(ctx context.Context, userID string, skip, limit int) ([]string, error)
	ListMatches(ctx context.Context, userID string, skip, limit int) ([]entity.Match, error)
}

type swipeUseCase struct {
	ledger     swipeRepo.ISwipeRepo
	registry   matchRepo.IMatchRepo
	quota      quotaRepo.IQuotaRepo
	dailyLimit int
	now        func() time.Time
}

func New(ledger swipeRepo.ISwipeRepo, registry matchRepo.IMatchRepo, quota quotaRepo.IQuotaRepo, dailyLimit int) ISwipeUseCase {
	if dailyLimit <= 0 {
		dailyLimit = 8
	}
	return &swipeUseCase{
		ledger:     ledger,
		registry:   registry,
		quota:      quota,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

// Swipe records a decision and, when it is a like, checks whether the
// target already liked this user back; if so the match record is ensured.
// A repeat decision for the same pair fails with ErrSwipeExists, leaving
// the first decision untouched.
func (u *swipeUseCase) Swipe(ctx context.Context, userID, targetID string, isLike bool) (*entity.Swipe, *entity.Match, entity.Outcome, error) {
	if userID == "" || targetID == "" || userID == targetID {
		return nil, nil, 0, entity.ErrValidation
	}

	count, err := u.todayCount(ctx, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	if count >= u.dailyLimit {
		return nil, nil, entity.OutcomeLimitReached, nil
	}

	swipe, err := u.ledger.RecordDecision(ctx, userID, targetID, isLike)
	if err != nil {
		return nil, nil, 0, err
	}

	if err := u.quota.Increment(ctx, userID); err != nil {
		return nil, nil, 0, err
	}

	if !isLike {
		return swipe, nil, entity.OutcomePassed, nil
	}

	reciprocal, err := u.ledger.GetDecision(ctx, targetID, userID)
	if errors.Is(err, entity.ErrSwipeNotFound) {
		return swipe, nil, entity.OutcomeLiked, nil
	}
	if err != nil {
		return nil, nil, 0, err
	}
	if !reciprocal.IsLike {
		// The target already rejected this user; their decision is final.
		return swipe, nil, entity.OutcomeLiked, nil
	}

	match, err := u.registry.EnsureMatch(ctx, userID, targetID)
	if err != nil {
		return nil, nil, 0, err
	}

	return swipe, match, entity.OutcomeMatched, nil
}

// FindMutualLikes resolves the set of users with a reciprocal like. The
// seed set is the user's own accepted targets; when it is empty the second
// ledger query is skipped entirely.
func (u *swipeUseCase) FindMutualLikes(ctx context.Context, userID string, skip, limit int) ([]string, error) {
	if userID == "" {
		return nil, entity.ErrValidation
	}
	if limit <= 0 {
		limit = defaultMutualLikesLimit
	}

	targets, err := u.ledger.ListAcceptedTargets(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return []string{}, nil
	}

	return u.ledger.ListReciprocalLikes(ctx, userID, targets)
}

func (u *swipeUseCase) ListMatches(ctx context.Context, userID string, skip, limit int) ([]entity.Match, error) {
	if userID == "" {
		return nil, entity.ErrValidation
	}
	if limit <= 0 {
		limit = defaultMutualLikesLimit
	}
	return u.registry.ListMatchesForUser(ctx, userID, skip, limit)
}

func (u *swipeUseCase) todayCount(ctx context.Context, userID string) (int, error) {
	count, found, err := u.quota.TodayCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if found {
		return count, nil
	}

	now := u.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err = u.ledger.CountDecisionsSince(ctx, userID, startOfDay)
	if err != nil {
		return 0, err
	}
	if err := u.quota.Prime(ctx, userID, count); err != nil {
		return 0, err
	}
	return count, nil
}
