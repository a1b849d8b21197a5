package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookshelf/internal/auth"
	"bookshelf/internal/model"
	"bookshelf/pkg/apierror"
)

type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, user model.User) (model.User, error)
}

type passwordCodec interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext string, hash string) (bool, error)
}

type tokenIssuer interface {
	Issue(identity auth.Identity) (string, time.Time, error)
}

type AuthService struct {
	users     UserStore
	passwords passwordCodec
	tokens    tokenIssuer
}

func NewAuthService(users UserStore, passwords passwordCodec, tokens tokenIssuer) *AuthService {
	return &AuthService{users: users, passwords: passwords, tokens: tokens}
}

// Signup stores a new account. The request is expected to be normalized and
// validated by the caller.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthUser, error) {
	if len(req.Password) > auth.MaxPasswordBytes {
		return model.AuthUser{}, apierror.Validation(fmt.Sprintf("Password must be at most %d bytes long", auth.MaxPasswordBytes), "password")
	}

	hash, err := s.passwords.Hash(ctx, req.Password)
	if err != nil {
		return model.AuthUser{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         req.Name,
		Email:        model.NormalizeEmail(req.Email),
		PasswordHash: hash,
	})
	if errors.Is(err, model.ErrUserAlreadyExists) {
		return model.AuthUser{}, apierror.Conflict("User with this email already exists", "")
	}
	if err != nil {
		return model.AuthUser{}, err
	}

	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return user.Public(), nil
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords fail identically, including the time spent hashing.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, model.NormalizeEmail(req.Email))
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return model.LoginResult{}, err
	}

	ok, verifyErr := s.passwords.Verify(ctx, req.Password, user.PasswordHash)
	if verifyErr != nil {
		return model.LoginResult{}, verifyErr
	}
	if err != nil || !ok {
		return model.LoginResult{}, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return model.LoginResult{}, err
	}

	slog.InfoContext(ctx, "user logged in", "user_id", user.ID)
	return model.LoginResult{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, identity auth.Identity) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return model.AuthUser{}, err
	}

	return user.Public(), nil
}
