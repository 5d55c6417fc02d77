package profileUseCase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matchpoint-app/backend/internal/entity"
	profileRepo "github.com/matchpoint-app/backend/internal/repository/profile"
	swipeRepo "github.com/matchpoint-app/backend/internal/repository/swipe"
)

const discoveryScanLimit = 500

type IProfileUseCase interface {
	GetOwnProfile(ctx context.Context, userID string) (*entity.Profile, error)
	UpdateOwnProfile(ctx context.Context, userID string, request entity.UpdateProfileRequest) (*entity.Profile, error)
	Discover(ctx context.Context, userID string, skip, limit int) ([]entity.Profile, error)
}

type profileUseCase struct {
	profiles profileRepo.IProfileRepo
	ledger   swipeRepo.ISwipeRepo
}

func New(profiles profileRepo.IProfileRepo, ledger swipeRepo.ISwipeRepo) IProfileUseCase {
	return &profileUseCase{
		profiles: profiles,
		ledger:   ledger,
	}
}

func (u *profileUseCase) GetOwnProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	if userID == "" {
		return nil, entity.ErrValidation
	}
	return u.profiles.GetByUserID(ctx, userID)
}

func (u *profileUseCase) UpdateOwnProfile(ctx context.Context, userID string, request entity.UpdateProfileRequest) (*entity.Profile, error) {
	if userID == "" {
		return nil, entity.ErrValidation
	}

	profile := entity.Profile{
		UserID:       userID,
		Name:         request.Name,
		Gender:       request.Gender,
		InterestedIn: request.InterestedIn,
		Bio:          request.Bio,
		Photos:       request.Photos,
	}

	if request.Birthdate != "" {
		birthdate, err := time.Parse("2006-01-02", request.Birthdate)
		if err != nil {
			return nil, entity.ErrValidation
		}
		profile.Birthdate = birthdate
	}

	if request.Location != nil {
		location, err := json.Marshal(request.Location)
		if err != nil {
			return nil, entity.ErrValidation
		}
		profile.Location = location
	}

	return u.profiles.Upsert(ctx, profile)
}

// Discover lists candidate profiles matching the viewer's preferences,
// excluding everyone the viewer already decided on.
func (u *profileUseCase) Discover(ctx context.Context, userID string, skip, limit int) ([]entity.Profile, error) {
	if userID == "" {
		return nil, entity.ErrValidation
	}
	if limit <= 0 {
		limit = 10
	}

	own, err := u.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	swiped, err := u.ledger.ListDecidedTargets(ctx, userID, 0, discoveryScanLimit)
	if err != nil {
		return nil, err
	}

	return u.profiles.ListForDiscovery(ctx, userID, own.InterestedIn, swiped, skip, limit)
}
