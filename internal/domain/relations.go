package domain

import "time"

// Favorite marks a recipe as favorited by a user. One row per (user, recipe)
// pair, enforced by the store. Created and destroyed only through the
// favorite endpoints, never exposed for independent CRUD.
type Favorite struct {
	UserID    string
	RecipeID  string
	CreatedAt time.Time
}

// CartItem marks a recipe's ingredients as pending purchase for a user.
// One row per (user, recipe) pair.
type CartItem struct {
	UserID    string
	RecipeID  string
	CreatedAt time.Time
}

// Follow is a subscription from one user to another's recipes.
// Self-follows are rejected before persistence and additionally blocked by a
// storage constraint.
type Follow struct {
	FollowerID string
	FolloweeID string
	CreatedAt  time.Time
}

// Valid reports whether the follow relation is well formed.
func (f *Follow) Valid() bool {
	return f.FollowerID != "" && f.FolloweeID != "" && f.FollowerID != f.FolloweeID
}
