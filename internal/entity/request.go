package entity

import (
	"context"
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (r *CreateUserRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Name == "" {
		problems["Name"] = append(problems["Name"], "Name is required")
	}

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Username == "" {
		problems["Username"] = append(problems["Username"], "Username is required")
	}

	if len(r.Username) > 16 {
		problems["Username"] = append(problems["Username"], "Username is too long")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	if len([]byte(r.Password)) > 72 {
		problems["Password"] = append(problems["Password"], "Password length should not exceed 72 bytes")
	}

	return problems
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

func (r *SignInRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Email == "" && r.Username == "" {
		problems["Email/Username"] = append(problems["Email/Username"], "Either Email or Username is required")
	}

	if r.Email != "" && !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	return problems
}

type SwipeRequest struct {
	TargetID string `json:"target_id"`
	IsLike   bool   `json:"is_like"`
}

func (r *SwipeRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.TargetID == "" {
		problems["TargetID"] = append(problems["TargetID"], "Target is required")
	}

	return problems
}

type SendMessageRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

func (r *SendMessageRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Content == "" {
		problems["Content"] = append(problems["Content"], "Content is required")
	}

	return problems
}

// GeoLocation is a GeoJSON point, coordinates as [longitude, latitude].
type GeoLocation struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type UpdateProfileRequest struct {
	Name         string       `json:"name"`
	Birthdate    string       `json:"birthdate"`
	Gender       string       `json:"gender"`
	InterestedIn []string     `json:"interested_in"`
	Bio          string       `json:"bio"`
	Photos       []string     `json:"photos"`
	Location     *GeoLocation `json:"location"`
}

func (r *UpdateProfileRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Name == "" {
		problems["Name"] = append(problems["Name"], "Name is required")
	}

	if r.Gender == "" {
		problems["Gender"] = append(problems["Gender"], "Gender is required")
	}

	if len(r.InterestedIn) == 0 {
		problems["InterestedIn"] = append(problems["InterestedIn"], "At least one preference is required")
	}

	if r.Location != nil {
		if r.Location.Type != "Point" {
			problems["Location"] = append(problems["Location"], "Location type must be Point")
		}
		if len(r.Location.Coordinates) != 2 {
			problems["Location"] = append(problems["Location"], "Coordinates must contain exactly 2 values [longitude, latitude]")
		}
	}

	return problems
}
