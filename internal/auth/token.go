package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

const minSecretLength = 32

var (
	// ErrInvalidToken is the only error Verify returns for a token that must not be trusted.
	// Callers cannot tell a bad signature from an expired or truncated token.
	ErrInvalidToken = errors.New("invalid session token")

	ErrMissingSecret = errors.New("session secret is required")
	ErrWeakSecret    = fmt.Errorf("session secret must be at least %d bytes", minSecretLength)
)

// Identity is the verified claim carried by a session token.
type Identity struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

type sessionClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256-signed session tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}

	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// Issue signs a token for identity and returns it together with its expiry.
func (s *TokenService) Issue(identity Identity) (string, time.Time, error) {
	if identity.UserID <= 0 || strings.TrimSpace(identity.Email) == "" {
		return "", time.Time{}, errors.New("issue session token: incomplete identity")
	}

	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(SessionTTL)

	claims := sessionClaims{
		UserID: identity.UserID,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature and expiry. Any token that fails a check yields
// ErrInvalidToken; other errors mean the service itself is unusable.
func (s *TokenService) Verify(token string) (Identity, error) {
	if s == nil || len(s.secret) == 0 {
		return Identity{}, errors.New("verify session token: token service is not configured")
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.UserID <= 0 || claims.Email == "" || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
