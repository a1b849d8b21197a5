package model

import "strings"

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

type CreateReviewRequest struct {
	BookTitle string  `json:"book_title" validate:"required,notblank,max=255"`
	Rating    float64 `json:"rating" validate:"required,min=1,max=5,whole"`
	Review    string  `json:"review" validate:"required,min=10"`
	Mood      string  `json:"mood" validate:"required,notblank,max=50"`
}

func (r *CreateReviewRequest) Normalize() {
	r.BookTitle = strings.TrimSpace(r.BookTitle)
	r.Review = strings.TrimSpace(r.Review)
	r.Mood = strings.TrimSpace(r.Mood)
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
