package entity

import "time"

type Message struct {
	ID          string     `bson:"id" json:"id"`
	MatchID     string     `bson:"match_id" json:"match_id"`
	SenderID    string     `bson:"sender_id" json:"sender_id"`
	Content     string     `bson:"content" json:"content"`
	ContentType string     `bson:"content_type" json:"content_type"`
	SentAt      time.Time  `bson:"sent_at" json:"sent_at"`
	DeliveredAt *time.Time `bson:"delivered_at" json:"delivered_at"`
	ReadAt      *time.Time `bson:"read_at" json:"read_at"`
	IsDeleted   bool       `bson:"is_deleted" json:"-"`
}
