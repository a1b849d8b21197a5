package auth

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const DefaultBcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordCodec hashes and verifies passwords with bcrypt. At most
// concurrency hash operations run at once; callers waiting for a slot give up
// when their context is cancelled.
type PasswordCodec struct {
	cost      int
	slots     *semaphore.Weighted
	dummyHash []byte
}

func NewPasswordCodec(cost int, concurrency int) (*PasswordCodec, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("bookshelf:unknown-account"), cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &PasswordCodec{
		cost:      cost,
		slots:     semaphore.NewWeighted(int64(concurrency)),
		dummyHash: dummy,
	}, nil
}

func (c *PasswordCodec) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.slots.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed or empty hash is
// a mismatch, and is compared against a dummy hash first so it costs the same
// as a wrong password. The error is non-nil only when ctx ends before a slot frees up.
func (c *PasswordCodec) Verify(ctx context.Context, plaintext string, hash string) (bool, error) {
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer c.slots.Release(1)

	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		_ = bcrypt.CompareHashAndPassword(c.dummyHash, []byte(plaintext))
		return false, nil
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
}
