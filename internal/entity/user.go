package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid;column:id" json:"id"`
	Name      string    `gorm:"not null;column:name" json:"name"`
	Email     string    `gorm:"unique;not null;column:email" json:"email"`
	Username  string    `gorm:"unique;column:username" json:"username"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Profile struct {
	ID             string          `gorm:"primaryKey;type:uuid;column:id" json:"id"`
	UserID         string          `gorm:"type:uuid;unique;not null;column:user_id" json:"user_id"`
	Name           string          `gorm:"not null;column:name" json:"name"`
	Birthdate      time.Time       `gorm:"type:date;column:birthdate" json:"birthdate"`
	Gender         string          `gorm:"not null;column:gender" json:"gender"`
	InterestedIn   pq.StringArray  `gorm:"type:text[];column:interested_in" json:"interested_in"`
	Bio            string          `gorm:"column:bio" json:"bio"`
	Photos         pq.StringArray  `gorm:"type:text[];column:photos" json:"photos"`
	Location       json.RawMessage `gorm:"type:jsonb;column:location" json:"location,omitempty"`
	LikesGiven     int             `gorm:"column:likes_given" json:"likes_given"`
	LikesReceived  int             `gorm:"column:likes_received" json:"likes_received"`
	DailySwipeCap  int             `gorm:"column:daily_swipe_limit" json:"daily_swipe_limit"`
	TotalMatches   int             `gorm:"column:total_matches" json:"total_matches"`
	LastSwipeReset time.Time       `gorm:"column:last_swipe_reset" json:"last_swipe_reset"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
