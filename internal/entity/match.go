package entity

import (
	"sort"
	"strings"
	"time"
)

// Match marks two users as mutually interested. Users is stored sorted
// ascending and PairKey is the sorted pair joined with ":", carrying a
// unique index so the concurrent-accept race can only insert one record.
// A unique index directly on the users array would be multikey and would
// wrongly limit each user to a single match.
type Match struct {
	ID            string     `bson:"id" json:"id"`
	PairKey       string     `bson:"pair_key" json:"-"`
	Users         []string   `bson:"users" json:"users"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	LastMessageAt *time.Time `bson:"last_message_at" json:"last_message_at"`
}

func (m *Match) HasUser(userID string) bool {
	for _, u := range m.Users {
		if u == userID {
			return true
		}
	}
	return false
}

// NormalizePair returns the two user ids in sorted order plus the pair key.
func NormalizePair(userA, userB string) (users []string, pairKey string) {
	users = []string{userA, userB}
	sort.Strings(users)
	return users, strings.Join(users, ":")
}
