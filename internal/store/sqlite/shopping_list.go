package sqlite

import (
	"context"
	"fmt"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
)

// ShoppingList aggregates every ingredient line reachable through the user's
// cart. Lines for the same ingredient are merged by summing amounts; the
// measurement unit rides along from the catalog. Ordering is by ingredient
// name then id so two exports of the same cart are byte-identical.
func (s *Store) ShoppingList(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.measurement_unit, SUM(ri.amount) AS total
		FROM cart_items c
		JOIN recipe_ingredients ri ON ri.recipe_id = c.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE c.user_id = ?
		GROUP BY i.id
		ORDER BY i.name ASC, i.id ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query shopping list: %w", err)
	}
	defer rows.Close()

	var items []domain.ShoppingListItem
	for rows.Next() {
		var item domain.ShoppingListItem
		if err := rows.Scan(&item.IngredientID, &item.Name, &item.MeasurementUnit, &item.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
