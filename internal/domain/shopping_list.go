package domain

// ShoppingListItem is one aggregated line of a user's shopping list: the
// summed amount of a single ingredient across every recipe in the cart.
// Grouping is by ingredient identity, so two same-named ingredients with
// different units stay separate lines.
type ShoppingListItem struct {
	IngredientID    string `json:"-"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"amount"`
}
