package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
	"github.com/iurelen/delicious-project-with-react/internal/store/sqlite"
)

func newAuthService(t *testing.T, s *sqlite.Store, rps float64, burst int) *AuthService {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	tokenService, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return NewAuthService(s, tokenService, ratelimit.New(rps, burst), testLogger())
}

func registerTestUser(t *testing.T, s *sqlite.Store, username, password string) string {
	t.Helper()
	svc := NewUserService(s, NewProjector(s), testLogger())
	view, err := svc.Register(context.Background(), RegisterRequest{
		Username:  username,
		Email:     username + "@test.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  password,
	})
	require.NoError(t, err)
	return view.ID
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	s := newTestStore(t)
	svc := newAuthService(t, s, 100, 100)
	ctx := context.Background()

	userID := registerTestUser(t, s, "alice", "correct horse battery")

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "alice@test.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	user, err := svc.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	s := newTestStore(t)
	svc := newAuthService(t, s, 100, 100)
	ctx := context.Background()

	registerTestUser(t, s, "alice", "correct horse battery")

	// Wrong password and unknown email return the same error code.
	_, err := svc.Login(ctx, LoginRequest{Email: "alice@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "nobody@test.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_RateLimited(t *testing.T) {
	s := newTestStore(t)
	// One attempt per hour with burst 2.
	svc := newAuthService(t, s, 1.0/3600, 2)
	ctx := context.Background()

	registerTestUser(t, s, "alice", "correct horse battery")
	registerTestUser(t, s, "bob", "correct horse battery")

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, LoginRequest{Email: "alice@test.com", Password: "wrong"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}

	// Third attempt is cut off before credentials are even checked.
	_, err := svc.Login(ctx, LoginRequest{Email: "alice@test.com", Password: "correct horse battery"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// The limiter is keyed per email: other accounts are unaffected.
	_, err = svc.Login(ctx, LoginRequest{Email: "bob@test.com", Password: "correct horse battery"})
	assert.NoError(t, err)
}

func TestAuthService_Authenticate_InvalidToken(t *testing.T) {
	s := newTestStore(t)
	svc := newAuthService(t, s, 100, 100)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
