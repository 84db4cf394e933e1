package domain

import "time"

// User is an auth identity: the credential record behind a registered account.
// The application-level profile row lives in the profiles package and is
// created separately during registration.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session is the ephemeral proof of authentication held in Redis. The token
// is the client-facing credential; everything else is derived server-side.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
