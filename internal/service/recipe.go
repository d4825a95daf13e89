package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/id"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// RecipeService owns recipe composition: the recipe row and its tag and
// ingredient associations are validated and written together, so a stored
// recipe always has at least one tag and one ingredient line.
type RecipeService struct {
	store     store.Store
	projector *Projector
	logger    *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store store.Store, projector *Projector, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		projector: projector,
		logger:    logger,
	}
}

// IngredientLineRequest is one (ingredient, amount) pair on a write.
type IngredientLineRequest struct {
	ID     string `json:"id" validate:"required"`
	Amount int    `json:"amount" validate:"required,gte=1,lte=32000"`
}

// CreateRecipeRequest contains a new recipe with its full composition.
type CreateRecipeRequest struct {
	Name        string                  `json:"name" validate:"required,min=1,max=200"`
	Image       string                  `json:"image" validate:"required"`
	Text        string                  `json:"text" validate:"required"`
	CookingTime int                     `json:"cooking_time" validate:"required,gte=1,lte=32000"`
	TagIDs      []string                `json:"tags" validate:"required,min=1,unique"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

// UpdateRecipeRequest patches a recipe. Scalar fields left nil keep their
// stored value; tags and ingredients must be sent in full on every update and
// replace the stored sets entirely.
type UpdateRecipeRequest struct {
	Name        *string                 `json:"name" validate:"omitempty,min=1,max=200"`
	Image       *string                 `json:"image" validate:"omitempty,min=1"`
	Text        *string                 `json:"text" validate:"omitempty,min=1"`
	CookingTime *int                    `json:"cooking_time" validate:"omitempty,gte=1,lte=32000"`
	TagIDs      []string                `json:"tags" validate:"required,min=1,unique"`
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
}

// Create validates and persists a new recipe with its associations.
func (s *RecipeService) Create(ctx context.Context, authorID string, req CreateRecipeRequest) (*RecipeView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	recipeID, err := id.Generate("recipe")
	if err != nil {
		return nil, fmt.Errorf("generate recipe ID: %w", err)
	}

	recipe := &domain.Recipe{
		ID:          recipeID,
		Name:        req.Name,
		AuthorID:    authorID,
		Image:       req.Image,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		CreatedAt:   time.Now(),
		Tags:        tags,
		Ingredients: lines,
	}

	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("a recipe with this name already exists")
		}
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	s.logger.Info("recipe created", "recipe_id", recipeID, "author_id", authorID)
	return s.view(ctx, authorID, recipeID)
}

// Update patches a recipe and fully replaces its association sets. Only the
// author or an admin may update.
func (s *RecipeService) Update(ctx context.Context, viewer *domain.User, recipeID string, req UpdateRecipeRequest) (*RecipeView, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return nil, domainerrors.Forbidden("only the author may edit this recipe")
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}
	lines, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	recipe.Tags = tags
	recipe.Ingredients = lines

	if err := s.store.UpdateRecipe(ctx, recipe); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Conflict("a recipe with this name already exists")
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	s.logger.Info("recipe updated", "recipe_id", recipeID, "user_id", viewer.ID)
	return s.view(ctx, viewer.ID, recipeID)
}

// Delete removes a recipe. Only the author or an admin may delete.
func (s *RecipeService) Delete(ctx context.Context, viewer *domain.User, recipeID string) error {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("get recipe: %w", err)
	}
	if recipe.AuthorID != viewer.ID && !viewer.IsAdmin() {
		return domainerrors.Forbidden("only the author may delete this recipe")
	}

	if err := s.store.DeleteRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe not found")
		}
		return fmt.Errorf("delete recipe: %w", err)
	}

	s.logger.Info("recipe deleted", "recipe_id", recipeID, "user_id", viewer.ID)
	return nil
}

// Get returns one recipe annotated for the viewer. viewerID may be empty.
func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID string) (*RecipeView, error) {
	return s.view(ctx, viewerID, recipeID)
}

// List returns a page of recipes matching the filter, annotated for the
// viewer. Callers must already have scrubbed viewer-scoped filter fields for
// anonymous viewers.
func (s *RecipeService) List(ctx context.Context, viewerID string, filter store.RecipeFilter, page store.Page) ([]RecipeView, error) {
	recipes, err := s.store.ListRecipes(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return s.projector.RecipeViews(ctx, viewerID, recipes)
}

// Favorite marks a recipe as a favorite of the user.
func (s *RecipeService) Favorite(ctx context.Context, userID, recipeID string) (*RecipeBrief, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := s.store.AddFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("recipe is already in favorites")
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	brief := newRecipeBrief(recipe)
	return &brief, nil
}

// Unfavorite removes a recipe from the user's favorites.
func (s *RecipeService) Unfavorite(ctx context.Context, userID, recipeID string) error {
	if err := s.store.RemoveFavorite(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe is not in favorites")
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// AddToCart puts a recipe in the user's shopping cart.
func (s *RecipeService) AddToCart(ctx context.Context, userID, recipeID string) (*RecipeBrief, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	if err := s.store.AddCartItem(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("recipe is already in the shopping cart")
		}
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	brief := newRecipeBrief(recipe)
	return &brief, nil
}

// RemoveFromCart takes a recipe out of the user's shopping cart.
func (s *RecipeService) RemoveFromCart(ctx context.Context, userID, recipeID string) error {
	if err := s.store.RemoveCartItem(ctx, userID, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("recipe is not in the shopping cart")
		}
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (s *RecipeService) view(ctx context.Context, viewerID, recipeID string) (*RecipeView, error) {
	recipe, err := s.store.GetRecipe(ctx, recipeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return s.projector.RecipeView(ctx, viewerID, recipe)
}

// resolveTags loads the referenced tags and rejects unknown IDs.
func (s *RecipeService) resolveTags(ctx context.Context, tagIDs []string) ([]domain.Tag, error) {
	tags, err := s.store.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("get tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		found := make(map[string]bool, len(tags))
		for _, t := range tags {
			found[t.ID] = true
		}
		for _, tagID := range tagIDs {
			if !found[tagID] {
				return nil, domainerrors.Validationf("unknown tag %q", tagID)
			}
		}
	}
	return tags, nil
}

// resolveIngredients loads the referenced ingredients, rejects unknown IDs,
// and returns the lines in canonical order: collated display name, then id.
// Storing lines in that order makes reads deterministic without re-sorting.
func (s *RecipeService) resolveIngredients(ctx context.Context, reqs []IngredientLineRequest) ([]domain.IngredientLine, error) {
	ids := make([]string, len(reqs))
	for i, line := range reqs {
		ids[i] = line.ID
	}

	ingredients, err := s.store.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	byID := make(map[string]domain.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	lines := make([]domain.IngredientLine, 0, len(reqs))
	for _, req := range reqs {
		ing, ok := byID[req.ID]
		if !ok {
			return nil, domainerrors.Validationf("unknown ingredient %q", req.ID)
		}
		lines = append(lines, domain.IngredientLine{
			IngredientID:    ing.ID,
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
			Amount:          req.Amount,
		})
	}

	// Collators are not safe for concurrent use, so each call gets its own.
	c := collate.New(language.Und, collate.Loose)
	slices.SortStableFunc(lines, func(a, b domain.IngredientLine) int {
		if cmp := c.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp
		}
		return strings.Compare(a.IngredientID, b.IngredientID)
	})
	return lines, nil
}
