package profileUseCase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matchpoint-app/backend/internal/entity"
)

type profileStub struct {
	stored        *entity.Profile
	upserted      *entity.Profile
	excludedWith  []string
	discoveryOut  []entity.Profile
}

func (s *profileStub) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	if s.stored == nil || s.stored.UserID != userID {
		return nil, entity.ErrProfileNotFound
	}
	return s.stored, nil
}

func (s *profileStub) Upsert(_ context.Context, profile entity.Profile) (*entity.Profile, error) {
	s.upserted = &profile
	return &profile, nil
}

func (s *profileStub) ListForDiscovery(_ context.Context, _ string, _, excludeUserIDs []string, _, _ int) ([]entity.Profile, error) {
	s.excludedWith = excludeUserIDs
	return s.discoveryOut, nil
}

type ledgerStub struct {
	decided []string
}

func (s *ledgerStub) RecordDecision(context.Context, string, string, bool) (*entity.Swipe, error) {
	return nil, nil
}

func (s *ledgerStub) GetDecision(context.Context, string, string) (*entity.Swipe, error) {
	return nil, entity.ErrSwipeNotFound
}

func (s *ledgerStub) ListAcceptedTargets(context.Context, string, int, int) ([]string, error) {
	return nil, nil
}

func (s *ledgerStub) ListDecidedTargets(context.Context, string, int, int) ([]string, error) {
	return s.decided, nil
}

func (s *ledgerStub) ListReciprocalLikes(context.Context, string, []string) ([]string, error) {
	return nil, nil
}

func (s *ledgerStub) CountDecisionsSince(context.Context, string, time.Time) (int, error) {
	return 0, nil
}

func TestUpdateOwnProfilePersistsLocation(t *testing.T) {
	profiles := &profileStub{}
	uc := New(profiles, &ledgerStub{})

	request := entity.UpdateProfileRequest{
		Name:         "Alice",
		Gender:       "female",
		InterestedIn: []string{"male"},
		Location:     &entity.GeoLocation{Type: "Point", Coordinates: []float64{-73.9857, 40.7484}},
	}

	_, err := uc.UpdateOwnProfile(context.Background(), "alice", request)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.upserted == nil {
		t.Fatal("expected an upsert")
	}
	if len(profiles.upserted.Location) == 0 {
		t.Fatal("location must survive a profile update")
	}

	var location entity.GeoLocation
	if err := json.Unmarshal(profiles.upserted.Location, &location); err != nil {
		t.Fatalf("stored location is not valid JSON: %v", err)
	}
	if location.Type != "Point" || len(location.Coordinates) != 2 {
		t.Fatalf("unexpected stored location: %+v", location)
	}
}

func TestUpdateOwnProfileBadBirthdate(t *testing.T) {
	uc := New(&profileStub{}, &ledgerStub{})

	_, err := uc.UpdateOwnProfile(context.Background(), "alice", entity.UpdateProfileRequest{
		Name:      "Alice",
		Gender:    "female",
		Birthdate: "01-02-1990",
	})
	if !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDiscoverExcludesDecidedTargets(t *testing.T) {
	profiles := &profileStub{
		stored: &entity.Profile{UserID: "alice", InterestedIn: []string{"male"}},
	}
	ledger := &ledgerStub{decided: []string{"bob", "carol"}}
	uc := New(profiles, ledger)

	_, err := uc.Discover(context.Background(), "alice", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles.excludedWith) != 2 {
		t.Fatalf("expected both decided targets excluded, got %v", profiles.excludedWith)
	}
}
