package domain

// Tag is reference data used to classify recipes. Tags are seeded or
// admin-managed and read-only through the public API.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Ingredient is reference data: a purchasable item with its measurement unit.
// The same name may appear with different units ("milk"/"ml" and "milk"/"g"),
// so identity is the ID, never the name.
type Ingredient struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}
