package model

import "time"

type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BookTitle string    `json:"book_title"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
}
