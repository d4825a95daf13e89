package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/domain"
	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/id"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// UserService handles registration, profiles, and password changes.
type UserService struct {
	store     store.Store
	projector *Projector
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, projector *Projector, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		projector: projector,
		logger:    logger,
	}
}

// RegisterRequest contains new account data.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=150,alphanum"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
}

// SetPasswordRequest contains a password change.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// Register creates a new member account.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if !domain.ValidateUsername(req.Username) {
		return nil, domainerrors.ValidationWithDetails("validation failed",
			map[string]string{"username": "this username is reserved"})
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		Role:         domain.RoleMember,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("username or email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", userID, "username", user.Username)

	view := newUserView(user)
	return &view, nil
}

// Get returns a user profile annotated for the viewer. viewerID may be empty.
func (s *UserService) Get(ctx context.Context, viewerID, userID string) (*UserView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.projector.UserView(ctx, viewerID, user)
}

// List returns a page of user profiles annotated for the viewer.
func (s *UserService) List(ctx context.Context, viewerID string, page store.Page) ([]UserView, error) {
	users, err := s.store.ListUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]UserView, 0, len(users))
	for _, user := range users {
		view, err := s.projector.UserView(ctx, viewerID, user)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// SetPassword changes the user's password after verifying the current one.
func (s *UserService) SetPassword(ctx context.Context, userID string, req SetPasswordRequest) error {
	if err := validate.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domainerrors.InvalidCredentials("current password is incorrect")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdateUserPassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
