package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// The favorites and cart_items tables are shape-identical user/recipe pairs,
// so the methods share the insert/delete/exists helpers below.

func (s *Store) addPair(ctx context.Context, table, userID, recipeID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO `+table+` (user_id, recipe_id, created_at)
		VALUES (?, ?, ?)`,
		userID, recipeID, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (s *Store) removePair(ctx context.Context, table, userID, recipeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM `+table+` WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) pairExists(ctx context.Context, table, userID, recipeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM `+table+` WHERE user_id = ? AND recipe_id = ?
		)`, userID, recipeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query %s: %w", table, err)
	}
	return exists, nil
}

// pairSet returns which of the given recipe IDs the user has a pair row for.
// Missing IDs are simply absent from the map.
func (s *Store) pairSet(ctx context.Context, table, userID string, recipeIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	args := append([]any{userID}, toAnySlice(recipeIDs)...)
	rows, err := s.db.QueryContext(ctx, `
		SELECT recipe_id FROM `+table+`
		WHERE user_id = ? AND recipe_id IN (`+placeholders(len(recipeIDs))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query %s set: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID string
		if err := rows.Scan(&recipeID); err != nil {
			return nil, err
		}
		result[recipeID] = true
	}
	return result, rows.Err()
}

// AddFavorite marks a recipe as favorited by the user.
// Returns store.ErrAlreadyExists if it already is.
func (s *Store) AddFavorite(ctx context.Context, userID, recipeID string) error {
	return s.addPair(ctx, "favorites", userID, recipeID)
}

// RemoveFavorite unmarks a favorite.
// Returns store.ErrNotFound if the favorite does not exist.
func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	return s.removePair(ctx, "favorites", userID, recipeID)
}

// FavoriteExists reports whether the user has favorited the recipe.
func (s *Store) FavoriteExists(ctx context.Context, userID, recipeID string) (bool, error) {
	return s.pairExists(ctx, "favorites", userID, recipeID)
}

// FavoritedSet reports which of the given recipes the user has favorited.
func (s *Store) FavoritedSet(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	return s.pairSet(ctx, "favorites", userID, recipeIDs)
}

// AddCartItem puts a recipe in the user's shopping cart.
// Returns store.ErrAlreadyExists if it already is there.
func (s *Store) AddCartItem(ctx context.Context, userID, recipeID string) error {
	return s.addPair(ctx, "cart_items", userID, recipeID)
}

// RemoveCartItem takes a recipe out of the user's shopping cart.
// Returns store.ErrNotFound if it is not there.
func (s *Store) RemoveCartItem(ctx context.Context, userID, recipeID string) error {
	return s.removePair(ctx, "cart_items", userID, recipeID)
}

// CartItemExists reports whether the recipe is in the user's cart.
func (s *Store) CartItemExists(ctx context.Context, userID, recipeID string) (bool, error) {
	return s.pairExists(ctx, "cart_items", userID, recipeID)
}

// InCartSet reports which of the given recipes are in the user's cart.
func (s *Store) InCartSet(ctx context.Context, userID string, recipeIDs []string) (map[string]bool, error) {
	return s.pairSet(ctx, "cart_items", userID, recipeIDs)
}

// AddFollow subscribes follower to followee.
// Returns store.ErrAlreadyExists on a duplicate subscription. Self-follows
// are rejected at the schema level too, but the service validates first.
func (s *Store) AddFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES (?, ?, ?)`,
		followerID, followeeID, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert follow: %w", err)
	}
	return nil
}

// RemoveFollow removes a subscription.
// Returns store.ErrNotFound if the subscription does not exist.
func (s *Store) RemoveFollow(ctx context.Context, followerID, followeeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// FollowExists reports whether follower is subscribed to followee.
func (s *Store) FollowExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?
		)`, followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query follow: %w", err)
	}
	return exists, nil
}

// ListFollowees returns the users the follower is subscribed to, most
// recently followed first.
func (s *Store) ListFollowees(ctx context.Context, followerID string, page store.Page) ([]*domain.User, error) {
	page.Normalize()

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name,
		       u.password_hash, u.role, u.is_superuser, u.created_at
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT ? OFFSET ?`,
		followerID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("query followees: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
