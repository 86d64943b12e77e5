package domain

import "time"

// Session is an authenticated login. Token is the signed bearer credential
// handed to the client; it stays usable only while the session exists.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"-"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
