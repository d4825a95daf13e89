package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/domain"
	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
	"github.com/iurelen/delicious-project-with-react/internal/store"
	"github.com/iurelen/delicious-project-with-react/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()

// AuthService issues and verifies access tokens.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	loginLimiter *ratelimit.KeyedLimiter
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokenService *auth.TokenService,
	loginLimiter *ratelimit.KeyedLimiter,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		loginLimiter: loginLimiter,
		logger:       logger,
	}
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"auth_token"`
}

// Login verifies credentials and issues an access token. Attempts are rate
// limited per email so a credential-stuffing run against one account cannot
// starve others.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if !s.loginLimiter.Allow(req.Email) {
		s.logger.Warn("login rate limit exceeded", "email", req.Email)
		return nil, domainerrors.InvalidCredentials("too many login attempts, try again later")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same error as a bad password, so the response does not
			// reveal which accounts exist.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("failed login attempt", "user_id", user.ID)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &TokenResponse{AccessToken: token}, nil
}

// Authenticate resolves an access token to the authenticated user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token")
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
