package mocks

import (
	"context"
	"strconv"
	"strings"

	"github.com/taskdeck/taskdeck/internal/service/auth"
)

// MockSessionService implements auth.SessionService for testing. The default
// token format is "uid:username" in the clear, which is enough for handler
// tests that only need a recognizable round trip.
type MockSessionService struct {
	IssueFn    func(ctx context.Context, userID int64, username string) (string, error)
	ValidateFn func(ctx context.Context, token string) (*auth.SessionClaims, error)
}

var _ auth.SessionService = (*MockSessionService)(nil)

// Issue implements the SessionService interface.
func (m *MockSessionService) Issue(ctx context.Context, userID int64, username string) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, userID, username)
	}
	return strconv.FormatInt(userID, 10) + ":" + username, nil
}

// Validate implements the SessionService interface.
func (m *MockSessionService) Validate(ctx context.Context, token string) (*auth.SessionClaims, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}

	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return nil, auth.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return nil, auth.ErrInvalidToken
	}
	return &auth.SessionClaims{UserID: userID, Username: parts[1]}, nil
}
