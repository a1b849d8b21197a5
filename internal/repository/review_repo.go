package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookshelf/internal/model"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// List returns every review, newest first, with the author's name.
func (r *ReviewRepository) List(ctx context.Context) ([]model.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.book_title, r.rating, r.review, r.mood, r.created_at, u.name
		 FROM reviews r
		 JOIN users u ON r.user_id = u.id
		 ORDER BY r.created_at DESC, r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.BookTitle, &rv.Rating, &rv.Review, &rv.Mood, &rv.CreatedAt, &rv.UserName); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (model.Review, error) {
	var rv model.Review
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, book_title, rating, review, mood, created_at
		 FROM reviews WHERE id = $1`, id).
		Scan(&rv.ID, &rv.UserID, &rv.BookTitle, &rv.Rating, &rv.Review, &rv.Mood, &rv.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Review{}, model.ErrReviewNotFound
	}
	if err != nil {
		return model.Review{}, fmt.Errorf("find review by id: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (user_id, book_title, rating, review, mood)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rv.UserID, rv.BookTitle, rv.Rating, rv.Review, rv.Mood).Scan(&rv.ID, &rv.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return model.Review{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.Review{}, fmt.Errorf("create review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}
