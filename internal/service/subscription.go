package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// SubscriptionService manages author follows.
type SubscriptionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(store store.Store, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{store: store, logger: logger}
}

// SubscriptionView is a followed author with a truncated recipe listing.
type SubscriptionView struct {
	UserView
	Recipes      []RecipeBrief `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

// Subscribe makes follower follow the author with the given ID.
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, authorID string) (*SubscriptionView, error) {
	if followerID == authorID {
		return nil, domainerrors.Validation("you cannot subscribe to yourself")
	}

	author, err := s.store.GetUser(ctx, authorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.store.AddFollow(ctx, followerID, authorID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("already subscribed to this user")
		}
		return nil, fmt.Errorf("add follow: %w", err)
	}

	s.logger.Info("subscription created", "follower_id", followerID, "author_id", authorID)

	view := newUserView(author)
	view.IsSubscribed = true
	return s.withRecipes(ctx, view, 0)
}

// Unsubscribe removes a follow.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, authorID string) error {
	if err := s.store.RemoveFollow(ctx, followerID, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("not subscribed to this user")
		}
		return fmt.Errorf("remove follow: %w", err)
	}
	return nil
}

// List returns the authors the user follows, each with up to recipesLimit of
// their recipes (0 means all) and their total recipe count.
func (s *SubscriptionService) List(ctx context.Context, followerID string, page store.Page, recipesLimit int) ([]SubscriptionView, error) {
	authors, err := s.store.ListFollowees(ctx, followerID, page)
	if err != nil {
		return nil, fmt.Errorf("list followees: %w", err)
	}

	views := make([]SubscriptionView, 0, len(authors))
	for _, author := range authors {
		view := newUserView(author)
		view.IsSubscribed = true
		sub, err := s.withRecipes(ctx, view, recipesLimit)
		if err != nil {
			return nil, err
		}
		views = append(views, *sub)
	}
	return views, nil
}

func (s *SubscriptionService) withRecipes(ctx context.Context, view UserView, recipesLimit int) (*SubscriptionView, error) {
	recipes, err := s.store.ListRecipesByAuthor(ctx, view.ID, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	count, err := s.store.CountRecipesByAuthor(ctx, view.ID)
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}

	briefs := make([]RecipeBrief, 0, len(recipes))
	for _, r := range recipes {
		briefs = append(briefs, newRecipeBrief(r))
	}
	return &SubscriptionView{
		UserView:     view,
		Recipes:      briefs,
		RecipesCount: count,
	}, nil
}
