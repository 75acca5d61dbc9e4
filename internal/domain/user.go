package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	RealName     string    `json:"realName"`
	IsAdmin      bool      `json:"isAdmin"`
	IsTeacher    bool      `json:"isTeacher"`
	CreatedAt    time.Time `json:"createdAt"`
	// bumped on every credential change; reserved for token revocation
	Version int32 `json:"-"`
}

// PublicProfile is the part of a user returned on sign-in.
type PublicProfile struct {
	Username string `json:"username"`
}
