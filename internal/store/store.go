// Package store defines the persistence interface for the recipe service.
package store

import (
	"context"
	"errors"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
)

// Sentinel errors returned by store implementations. Services translate them
// into domain errors with context-specific messages.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a uniqueness constraint would be
	// violated. Constraints live in the schema, so two racing writers get
	// exactly one success and one ErrAlreadyExists.
	ErrAlreadyExists = errors.New("already exists")
)

// Page holds offset pagination parameters.
type Page struct {
	Number int // 1-based page number
	Limit  int
}

// DefaultPage returns the default pagination window.
func DefaultPage() Page {
	return Page{Number: 1, Limit: 10}
}

// Normalize clamps the page parameters to sane bounds.
func (p *Page) Normalize() {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// RecipeFilter restricts a recipe listing. Zero values mean "don't filter".
// The viewer-scoped fields (FavoritedBy, InCartOf) are only ever set for
// authenticated viewers; the request layer drops the corresponding query
// flags for anonymous requests.
type RecipeFilter struct {
	// TagSlugs matches recipes carrying at least one tag whose slug is in
	// the set (OR within the set, AND with the other predicates).
	TagSlugs []string
	// AuthorID matches recipes owned by the user.
	AuthorID string
	// FavoritedBy matches recipes favorited by the user.
	FavoritedBy string
	// InCartOf matches recipes in the user's shopping cart.
	InCartOf string
}

// Store is the persistence interface for all entities.
type Store interface {
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
	ListUsers(ctx context.Context, page Page) ([]*domain.User, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]domain.Tag, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)

	// Ingredients
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	GetIngredientsByIDs(ctx context.Context, ids []string) ([]domain.Ingredient, error)
	ListIngredients(ctx context.Context, namePrefix string) ([]domain.Ingredient, error)

	// Recipes. Create and Update persist the row and its association tables
	// in a single transaction; Update fully replaces both association sets.
	CreateRecipe(ctx context.Context, recipe *domain.Recipe) error
	UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, filter RecipeFilter, page Page) ([]*domain.Recipe, error)
	ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error)
	CountRecipesByAuthor(ctx context.Context, authorID string) (int, error)

	// Favorites
	AddFavorite(ctx context.Context, userID, recipeID string) error
	RemoveFavorite(ctx context.Context, userID, recipeID string) error
	FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error)
	FavoritedSet(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)

	// Shopping cart
	AddCartItem(ctx context.Context, userID, recipeID string) error
	RemoveCartItem(ctx context.Context, userID, recipeID string) error
	CartItemExists(ctx context.Context, userID, recipeID string) (bool, error)
	InCartSet(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error)

	// Follows
	AddFollow(ctx context.Context, followerID, followeeID string) error
	RemoveFollow(ctx context.Context, followerID, followeeID string) error
	FollowExists(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowees(ctx context.Context, followerID string, page Page) ([]*domain.User, error)

	// Shopping list aggregation: every ingredient line reachable through the
	// user's cart, grouped by ingredient identity, amounts summed, ordered by
	// ingredient name then id.
	ShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
}
