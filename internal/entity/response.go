package entity

type SignUpResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

type SwipeResponse struct {
	Outcome     string  `json:"outcome"`
	OutcomeEnum Outcome `json:"outcome_enum"`
	Swipe       *Swipe  `json:"swipe,omitempty"`
	Match       *Match  `json:"match,omitempty"`
}

type MutualLikesResponse struct {
	UserIDs []string `json:"user_ids"`
}

type MatchListResponse struct {
	Matches []Match `json:"matches"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
}

type DiscoverResponse struct {
	Profiles []Profile `json:"profiles"`
}
