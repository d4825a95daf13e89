package domain

import "time"

// Bounds on user-supplied recipe numbers. Both mirror the storage column
// range for small integers.
const (
	MinCookingTime = 1
	MaxCookingTime = 32000

	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

// Recipe is the central aggregate: a named dish owned by an author, composed
// of at least one tag and at least one ingredient line. A stored recipe is
// always fully composed; the composition service rejects writes that would
// leave it without tags or ingredients.
type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AuthorID    string    `json:"-"`
	Image       string    `json:"image"` // opaque reference supplied by the upload collaborator
	Text        string    `json:"text"`
	CookingTime int       `json:"cooking_time"` // minutes
	CreatedAt   time.Time `json:"-"`

	// Hydrated associations. Populated on reads; ignored on writes, where
	// the composition service drives the association tables directly.
	Tags        []Tag            `json:"tags,omitempty"`
	Ingredients []IngredientLine `json:"ingredients,omitempty"`
}

// IngredientLine is one (ingredient, amount) pair inside a recipe.
type IngredientLine struct {
	IngredientID    string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// TagIDs returns the IDs of the hydrated tag set.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// HasTagSlug reports whether the hydrated tag set contains the given slug.
func (r *Recipe) HasTagSlug(slug string) bool {
	for _, t := range r.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}
