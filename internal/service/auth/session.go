package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/platform/logger"
)

// DefaultSessionLifetime is how long an issued session stays valid.
const DefaultSessionLifetime = 7 * 24 * time.Hour

// SessionService defines operations for issuing and validating the signed,
// client-held session token. The token is the sole gate for every task and
// category operation.
type SessionService interface {
	// Issue creates a signed session token carrying the user's identity.
	Issue(ctx context.Context, userID int64, username string) (string, error)

	// Validate checks the token's signature and expiry and extracts the
	// identity it carries. Returns ErrExpiredToken or ErrInvalidToken when
	// the token cannot be trusted.
	Validate(ctx context.Context, token string) (*SessionClaims, error)
}

// SessionClaims is the identity carried by a validated session token.
type SessionClaims struct {
	UserID   int64
	Username string
}

// sessionCustomClaims defines the JWT claim structure for session tokens.
type sessionCustomClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// hmacSessionService implements SessionService using HMAC-SHA256 signing.
// The signing key is loaded once at process start and immutable afterward;
// rotating it invalidates every outstanding session.
type hmacSessionService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
}

// Ensure hmacSessionService implements SessionService interface
var _ SessionService = (*hmacSessionService)(nil)

// NewSessionService creates a new session token service using HMAC-SHA256
// signing. A lifetime of zero falls back to DefaultSessionLifetime.
func NewSessionService(secret string, lifetime time.Duration) (SessionService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}

	return &hmacSessionService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
	}, nil
}

// Issue implements SessionService.Issue.
func (s *hmacSessionService) Issue(ctx context.Context, userID int64, username string) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := sessionCustomClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign session token",
			"error", err,
			"user_id", userID)
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Validate implements SessionService.Validate.
func (s *hmacSessionService) Validate(ctx context.Context, tokenString string) (*SessionClaims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("session token expired")
			return nil, ErrExpiredToken
		}
		log.Debug("session token rejected", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionCustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		log.Debug("session token carried a malformed subject",
			"subject", claims.Subject)
		return nil, ErrInvalidToken
	}

	return &SessionClaims{
		UserID:   userID,
		Username: claims.Username,
	}, nil
}
