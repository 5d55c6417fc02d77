package profileRepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matchpoint-app/backend/internal/entity"
)

type IProfileRepo interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Upsert(ctx context.Context, profile entity.Profile) (*entity.Profile, error)
	ListForDiscovery(ctx context.Context, userID string, genders, excludeUserIDs []string, skip, limit int) ([]entity.Profile, error)
}

type ProfileRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IProfileRepo {
	return &ProfileRepo{
		db: db,
	}
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	var profile entity.Profile
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrProfileNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &profile, nil
}

// Upsert creates the profile on first save and replaces the editable
// fields afterwards, keyed on user_id.
func (r *ProfileRepo) Upsert(ctx context.Context, profile entity.Profile) (*entity.Profile, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "birthdate", "gender", "interested_in", "bio", "photos", "location", "updated_at",
		}),
	}).Create(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	return r.GetByUserID(ctx, profile.UserID)
}

// ListForDiscovery returns candidate profiles matching the viewer's gender
// preferences, excluding the viewer and anyone already swiped on.
func (r *ProfileRepo) ListForDiscovery(ctx context.Context, userID string, genders, excludeUserIDs []string, skip, limit int) ([]entity.Profile, error) {
	var profiles []entity.Profile

	query := r.db.WithContext(ctx).
		Model(&entity.Profile{}).
		Where("user_id <> ?", userID)

	if len(genders) > 0 {
		query = query.Where("gender IN ?", genders)
	}
	if len(excludeUserIDs) > 0 {
		query = query.Where("user_id NOT IN ?", excludeUserIDs)
	}

	result := query.Offset(skip).Limit(limit).Find(&profiles)
	return profiles, result.Error
}
