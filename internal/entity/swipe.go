package entity

import "time"

// Swipe is one user's accept/reject decision about another user, stored in
// the swipes collection. A compound unique index on (user_id, target_id)
// guarantees at most one decision per ordered pair.
type Swipe struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	TargetID  string    `bson:"target_id" json:"target_id"`
	IsLike    bool      `bson:"is_like" json:"is_like"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type Outcome uint

const (
	OutcomeMatched      Outcome = iota + 1 // both users liked each other
	OutcomeLiked                           // like recorded, no reciprocal like yet
	OutcomePassed                          // reject recorded
	OutcomeLimitReached                    // daily swipe quota exhausted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "Matched"
	case OutcomeLiked:
		return "Liked"
	case OutcomePassed:
		return "Passed"
	case OutcomeLimitReached:
		return "Limit Reached"
	default:
		return "Unknown"
	}
}
