package model

import "time"

// User is the stored account record. PasswordHash never leaves the service layer.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthUser is the public projection of a User returned by the API.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() AuthUser {
	return AuthUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      AuthUser
}
