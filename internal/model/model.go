package model

import "time"

// Thought is a short user-submitted text post.
//
// UserID is empty for records created before ownership existed; those
// records cannot be edited or deleted through the API.
type Thought struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Category  string    `json:"category,omitempty"`
	Hearts    int       `json:"hearts"`
	UserID    string    `json:"user,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account holder. PasswordHash and AccessToken never leave
// the process; handlers respond with PublicUser instead.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AccessToken  string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the wire representation of a User with credentials stripped.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public returns the credential-free view of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// SiteStats is an aggregate snapshot of the collection.
type SiteStats struct {
	Users    int64 `json:"users"`
	Thoughts int64 `json:"thoughts"`
	Hearts   int64 `json:"hearts"`
}
