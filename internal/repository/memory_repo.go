package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookshelf/internal/model"
)

// memoryState backs both in-memory repositories so review listings can join
// on user names the way the SQL query does.
type memoryState struct {
	mu           sync.RWMutex
	users        map[int64]model.User
	usersByEmail map[string]int64
	reviews      map[int64]model.Review
	nextUserID   int64
	nextReviewID int64
}

type MemoryUserRepository struct {
	state *memoryState
}

type MemoryReviewRepository struct {
	state *memoryState
}

// NewMemoryRepositories returns user and review stores that share one
// process-local dataset. Data is lost on restart.
func NewMemoryRepositories() (*MemoryUserRepository, *MemoryReviewRepository) {
	state := &memoryState{
		users:        map[int64]model.User{},
		usersByEmail: map[string]int64{},
		reviews:      map[int64]model.Review{},
	}
	return &MemoryUserRepository{state: state}, &MemoryReviewRepository{state: state}
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (model.User, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	u, ok := r.state.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (model.User, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	id, ok := r.state.usersByEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return r.state.users[id], nil
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) (model.User, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	u.Email = model.NormalizeEmail(u.Email)
	if _, exists := r.state.usersByEmail[u.Email]; exists {
		return model.User{}, model.ErrUserAlreadyExists
	}

	r.state.nextUserID++
	u.ID = r.state.nextUserID
	u.CreatedAt = time.Now().UTC()

	r.state.users[u.ID] = u
	r.state.usersByEmail[u.Email] = u.ID
	return u, nil
}

// Delete removes a user and their reviews, mirroring ON DELETE CASCADE.
func (r *MemoryUserRepository) Delete(_ context.Context, id int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	u, ok := r.state.users[id]
	if !ok {
		return model.ErrUserNotFound
	}

	delete(r.state.users, id)
	delete(r.state.usersByEmail, u.Email)
	for reviewID, rv := range r.state.reviews {
		if rv.UserID == id {
			delete(r.state.reviews, reviewID)
		}
	}
	return nil
}

func (r *MemoryReviewRepository) List(_ context.Context) ([]model.Review, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	reviews := make([]model.Review, 0, len(r.state.reviews))
	for _, rv := range r.state.reviews {
		rv.UserName = r.state.users[rv.UserID].Name
		reviews = append(reviews, rv)
	}

	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].ID > reviews[j].ID
		}
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *MemoryReviewRepository) FindByID(_ context.Context, id int64) (model.Review, error) {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()

	rv, ok := r.state.reviews[id]
	if !ok {
		return model.Review{}, model.ErrReviewNotFound
	}
	return rv, nil
}

func (r *MemoryReviewRepository) Create(_ context.Context, rv model.Review) (model.Review, error) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.users[rv.UserID]; !ok {
		return model.Review{}, model.ErrUserNotFound
	}

	r.state.nextReviewID++
	rv.ID = r.state.nextReviewID
	rv.CreatedAt = time.Now().UTC()
	rv.UserName = ""

	r.state.reviews[rv.ID] = rv
	return rv, nil
}

func (r *MemoryReviewRepository) Delete(_ context.Context, id int64) error {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()

	if _, ok := r.state.reviews[id]; !ok {
		return model.ErrReviewNotFound
	}
	delete(r.state.reviews, id)
	return nil
}
