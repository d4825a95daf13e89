package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

const recipeColumns = `id, name, author_id, image, text, cooking_time, created_at`

func scanRecipe(scanner interface{ Scan(dest ...any) error }) (*domain.Recipe, error) {
	var (
		r         domain.Recipe
		createdAt string
	)

	err := scanner.Scan(
		&r.ID,
		&r.Name,
		&r.AuthorID,
		&r.Image,
		&r.Text,
		&r.CookingTime,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateRecipe inserts the recipe row together with its tag and ingredient
// associations in one transaction, so a concurrent reader never sees a
// recipe without its composition.
// Returns store.ErrAlreadyExists on duplicate recipe name.
func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		recipe.ID,
		recipe.Name,
		recipe.AuthorID,
		recipe.Image,
		recipe.Text,
		recipe.CookingTime,
		formatTime(recipe.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("insert recipe: %w", err)
	}

	if err := insertAssociations(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateRecipe rewrites the recipe row and fully replaces both association
// sets in one transaction. The associations are never merged: the stored
// sets afterwards are exactly the sets on the passed recipe.
// Returns store.ErrAlreadyExists on duplicate recipe name and
// store.ErrNotFound if the recipe row is gone.
func (s *Store) UpdateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE recipes
		SET name = ?, image = ?, text = ?, cooking_time = ?
		WHERE id = ?`,
		recipe.Name,
		recipe.Image,
		recipe.Text,
		recipe.CookingTime,
		recipe.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("update recipe: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	// Clear-then-recreate: stale associations must never survive an update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_tags WHERE recipe_id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe_tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe_ingredients: %w", err)
	}

	if err := insertAssociations(ctx, tx, recipe); err != nil {
		return err
	}

	return tx.Commit()
}

// insertAssociations writes the recipe's tag and ingredient join rows inside
// the caller's transaction. Ingredient lines keep their slice order via the
// position column.
func insertAssociations(ctx context.Context, tx *sql.Tx, recipe *domain.Recipe) error {
	for _, tag := range recipe.Tags {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_tags (recipe_id, tag_id)
			VALUES (?, ?)`,
			recipe.ID, tag.ID)
		if err != nil {
			return fmt.Errorf("insert recipe_tag: %w", err)
		}
	}

	for i, line := range recipe.Ingredients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, position)
			VALUES (?, ?, ?, ?)`,
			recipe.ID, line.IngredientID, line.Amount, i)
		if err != nil {
			return fmt.Errorf("insert recipe_ingredient: %w", err)
		}
	}

	return nil
}

// DeleteRecipe removes a recipe; join rows cascade.
// Returns store.ErrNotFound if the recipe does not exist.
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
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

// GetRecipe retrieves a recipe by ID with its tags and ingredient lines
// hydrated.
// Returns store.ErrNotFound if the recipe does not exist.
func (s *Store) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.hydrateRecipes(ctx, []*domain.Recipe{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRecipes returns recipes matching the filter, newest first, hydrated.
func (s *Store) ListRecipes(ctx context.Context, filter store.RecipeFilter, page store.Page) ([]*domain.Recipe, error) {
	page.Normalize()

	query := `SELECT ` + recipeColumns + ` FROM recipes r`
	var (
		where []string
		args  []any
	)

	if len(filter.TagSlugs) > 0 {
		where = append(where, `EXISTS (
			SELECT 1 FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN (`+placeholders(len(filter.TagSlugs))+`))`)
		args = append(args, toAnySlice(filter.TagSlugs)...)
	}
	if filter.AuthorID != "" {
		where = append(where, `r.author_id = ?`)
		args = append(args, filter.AuthorID)
	}
	if filter.FavoritedBy != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM favorites f
			WHERE f.recipe_id = r.id AND f.user_id = ?)`)
		args = append(args, filter.FavoritedBy)
	}
	if filter.InCartOf != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM cart_items c
			WHERE c.recipe_id = r.id AND c.user_id = ?)`)
		args = append(args, filter.InCartOf)
	}

	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}

	query += ` ORDER BY r.created_at DESC, r.id DESC LIMIT ? OFFSET ?`
	args = append(args, page.Limit, page.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateRecipes(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListRecipesByAuthor returns the author's recipes, newest first, hydrated.
// limit <= 0 means no limit.
func (s *Store) ListRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*domain.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE author_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{authorID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query author recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.hydrateRecipes(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountRecipesByAuthor counts the recipes owned by a user.
func (s *Store) CountRecipesByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes WHERE author_id = ?`, authorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}

// hydrateRecipes loads tags and ingredient lines for a batch of recipes with
// two queries total.
func (s *Store) hydrateRecipes(ctx context.Context, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Recipe, len(recipes))
	ids := make([]string, len(recipes))
	for i, r := range recipes {
		byID[r.ID] = r
		ids[i] = r.ID
	}

	tagRows, err := s.db.QueryContext(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (`+placeholders(len(ids))+`)
		ORDER BY t.name ASC`,
		toAnySlice(ids)...)
	if err != nil {
		return fmt.Errorf("query recipe tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			recipeID string
			tag      domain.Tag
		)
		if err := tagRows.Scan(&recipeID, &tag.ID, &tag.Name, &tag.Color, &tag.Slug); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.Tags = append(r.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	lineRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (`+placeholders(len(ids))+`)
		ORDER BY ri.recipe_id, ri.position ASC`,
		toAnySlice(ids)...)
	if err != nil {
		return fmt.Errorf("query recipe ingredients: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			recipeID string
			line     domain.IngredientLine
		)
		if err := lineRows.Scan(&recipeID, &line.IngredientID, &line.Name, &line.MeasurementUnit, &line.Amount); err != nil {
			return err
		}
		if r, ok := byID[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, line)
		}
	}
	return lineRows.Err()
}
