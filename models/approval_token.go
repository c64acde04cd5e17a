package models

import "time"

// ApprovalToken is a single-use, time-limited capability authorizing a
// role change. Tokens flip used=false -> used=true exactly once; expired
// tokens are garbage-collected lazily at lookup time.
type ApprovalToken struct {
	Token     string    `json:"token" gorm:"primarykey"`
	UserID    string    `json:"user_id" gorm:"not null"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *ApprovalToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
