// Package service implements the application services on top of the store.
package service

import (
	"context"
	"fmt"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// UserView is a user annotated with viewer-relative state.
type UserView struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeBrief is the compact recipe shape used inside relation responses and
// subscription listings.
type RecipeBrief struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeView is a fully hydrated recipe annotated with viewer-relative state.
type RecipeView struct {
	ID               string                  `json:"id"`
	Tags             []domain.Tag            `json:"tags"`
	Author           UserView                `json:"author"`
	Ingredients      []domain.IngredientLine `json:"ingredients"`
	IsFavorited      bool                    `json:"is_favorited"`
	IsInShoppingCart bool                    `json:"is_in_shopping_cart"`
	Name             string                  `json:"name"`
	Image            string                  `json:"image"`
	Text             string                  `json:"text"`
	CookingTime      int                     `json:"cooking_time"`
}

// Projector annotates entities with viewer-relative state after queries.
// It never mutates stored data; an empty viewerID (anonymous) yields false
// for every flag without touching the relation tables.
type Projector struct {
	store store.Store
}

// NewProjector creates a projector over the store.
func NewProjector(store store.Store) *Projector {
	return &Projector{store: store}
}

// UserView annotates a single user for the viewer.
func (p *Projector) UserView(ctx context.Context, viewerID string, user *domain.User) (*UserView, error) {
	view := newUserView(user)
	if viewerID == "" || viewerID == user.ID {
		return &view, nil
	}

	subscribed, err := p.store.FollowExists(ctx, viewerID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check subscription: %w", err)
	}
	view.IsSubscribed = subscribed
	return &view, nil
}

// RecipeView annotates a single recipe for the viewer.
func (p *Projector) RecipeView(ctx context.Context, viewerID string, recipe *domain.Recipe) (*RecipeView, error) {
	views, err := p.RecipeViews(ctx, viewerID, []*domain.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// RecipeViews annotates a batch of recipes for the viewer. Favorite and cart
// flags are resolved with one query each; authors are resolved once per
// distinct author.
func (p *Projector) RecipeViews(ctx context.Context, viewerID string, recipes []*domain.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(recipes))
	if len(recipes) == 0 {
		return views, nil
	}

	recipeIDs := make([]string, len(recipes))
	for i, r := range recipes {
		recipeIDs[i] = r.ID
	}

	var (
		favorited map[string]bool
		inCart    map[string]bool
		err       error
	)
	if viewerID != "" {
		favorited, err = p.store.FavoritedSet(ctx, viewerID, recipeIDs)
		if err != nil {
			return nil, fmt.Errorf("load favorite flags: %w", err)
		}
		inCart, err = p.store.InCartSet(ctx, viewerID, recipeIDs)
		if err != nil {
			return nil, fmt.Errorf("load cart flags: %w", err)
		}
	}

	authors := make(map[string]UserView)
	for _, r := range recipes {
		if _, ok := authors[r.AuthorID]; ok {
			continue
		}
		author, err := p.store.GetUser(ctx, r.AuthorID)
		if err != nil {
			return nil, fmt.Errorf("load author %s: %w", r.AuthorID, err)
		}
		view, err := p.UserView(ctx, viewerID, author)
		if err != nil {
			return nil, err
		}
		authors[r.AuthorID] = *view
	}

	for _, r := range recipes {
		views = append(views, RecipeView{
			ID:               r.ID,
			Tags:             r.Tags,
			Author:           authors[r.AuthorID],
			Ingredients:      r.Ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

func newUserView(user *domain.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func newRecipeBrief(recipe *domain.Recipe) RecipeBrief {
	return RecipeBrief{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
