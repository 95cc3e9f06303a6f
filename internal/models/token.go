package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// Token is a persisted refresh token. Access tokens are stateless JWTs and
// never touch the database.
type Token struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	RefreshToken uuid.UUID `json:"refresh_token" gorm:"type:uuid;uniqueIndex;not null"`
	ExpiresAt    time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *Token) Expired() bool {
	return time.Now().After(t.ExpiresAt)
}
