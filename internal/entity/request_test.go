package entity

import (
	"context"
	"testing"

	"gotest.tools/assert"
)

func TestCreateUserRequestValidate(t *testing.T) {
	req := &CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Username: "alice",
	}
	assert.Equal(t, len(req.Validate(context.Background())), 0)

	req = &CreateUserRequest{Email: "not-an-email", Username: "averyveryverylongusername"}
	problems := req.Validate(context.Background())
	assert.Assert(t, len(problems["Name"]) > 0)
	assert.Assert(t, len(problems["Email"]) > 0)
	assert.Assert(t, len(problems["Username"]) > 0)
	assert.Assert(t, len(problems["Password"]) > 0)
}

func TestSignInRequestRequiresIdentifier(t *testing.T) {
	req := &SignInRequest{Password: "s3cret"}
	problems := req.Validate(context.Background())
	assert.Assert(t, len(problems["Email/Username"]) > 0)

	req = &SignInRequest{Username: "alice", Password: "s3cret"}
	assert.Equal(t, len(req.Validate(context.Background())), 0)
}

func TestSwipeRequestValidate(t *testing.T) {
	req := &SwipeRequest{}
	problems := req.Validate(context.Background())
	assert.Assert(t, len(problems["TargetID"]) > 0)

	req = &SwipeRequest{TargetID: "bob"}
	assert.Equal(t, len(req.Validate(context.Background())), 0)
}

func TestUpdateProfileRequestValidate(t *testing.T) {
	req := &UpdateProfileRequest{Name: "Alice", Gender: "female", InterestedIn: []string{"male"}}
	assert.Equal(t, len(req.Validate(context.Background())), 0)

	req = &UpdateProfileRequest{}
	problems := req.Validate(context.Background())
	assert.Assert(t, len(problems["Name"]) > 0)
	assert.Assert(t, len(problems["Gender"]) > 0)
	assert.Assert(t, len(problems["InterestedIn"]) > 0)
}

func TestUpdateProfileRequestLocation(t *testing.T) {
	req := &UpdateProfileRequest{
		Name:         "Alice",
		Gender:       "female",
		InterestedIn: []string{"male"},
		Location:     &GeoLocation{Type: "Point", Coordinates: []float64{-73.9857, 40.7484}},
	}
	assert.Equal(t, len(req.Validate(context.Background())), 0)

	req.Location = &GeoLocation{Type: "Polygon", Coordinates: []float64{1}}
	problems := req.Validate(context.Background())
	assert.Equal(t, len(problems["Location"]), 2)
}
