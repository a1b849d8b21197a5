package service

import (
	"context"
	"errors"
	"log/slog"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
)

type ReviewStore interface {
	List(ctx context.Context) ([]model.Review, error)
	FindByID(ctx context.Context, id int64) (model.Review, error)
	Create(ctx context.Context, review model.Review) (model.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	return s.reviews.List(ctx)
}

// Create stores a review owned by identity. The request is expected to be
// normalized and validated by the caller.
func (s *ReviewService) Create(ctx context.Context, identity auth.Identity, req model.CreateReviewRequest) (model.Review, error) {
	review, err := s.reviews.Create(ctx, model.Review{
		UserID:    identity.UserID,
		BookTitle: req.BookTitle,
		Rating:    int(req.Rating),
		Review:    req.Review,
		Mood:      req.Mood,
	})
	if err != nil {
		return model.Review{}, err
	}

	slog.InfoContext(ctx, "review created", "review_id", review.ID, "user_id", identity.UserID)
	return review, nil
}

// Delete removes a review if identity owns it.
func (s *ReviewService) Delete(ctx context.Context, identity auth.Identity, reviewID int64) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != identity.UserID {
		return model.ErrForbidden
	}

	// Another request may have deleted it between the lookup and here.
	if err := s.reviews.Delete(ctx, reviewID); err != nil && !errors.Is(err, model.ErrReviewNotFound) {
		return err
	}

	slog.InfoContext(ctx, "review deleted", "review_id", reviewID, "user_id", identity.UserID)
	return nil
}
