package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	domainerrors "github.com/iurelen/delicious-project-with-react/internal/errors"
	"github.com/iurelen/delicious-project-with-react/internal/store"
	"github.com/iurelen/delicious-project-with-react/internal/store/sqlite"
)

func newRecipeService(t *testing.T) (*RecipeService, *Projector, *sqlite.Store) {
	t.Helper()
	s := newTestStore(t)
	projector := NewProjector(s)
	return NewRecipeService(s, projector, testLogger()), projector, s
}

func TestRecipeService_Create(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	req := validCreateRequest("Pancakes")
	req.TagIDs = []string{"tag-1", "tag-2"}
	req.Ingredients = []IngredientLineRequest{
		{ID: "ing-2", Amount: 300},
		{ID: "ing-1", Amount: 200},
	}

	view, err := svc.Create(ctx, "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, "Pancakes", view.Name)
	assert.Equal(t, "user-1", view.Author.ID)
	assert.Len(t, view.Tags, 2)
	require.Len(t, view.Ingredients, 2)
	// Lines come back in canonical name order regardless of request order.
	assert.Equal(t, "flour", view.Ingredients[0].Name)
	assert.Equal(t, 200, view.Ingredients[0].Amount)
	assert.Equal(t, "milk", view.Ingredients[1].Name)
	// The author's own fresh recipe carries false flags.
	assert.False(t, view.IsFavorited)
	assert.False(t, view.IsInShoppingCart)
}

func TestRecipeService_Create_ValidationFailures(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	tests := []struct {
		name   string
		mutate func(*CreateRecipeRequest)
	}{
		{"empty name", func(r *CreateRecipeRequest) { r.Name = "" }},
		{"no tags", func(r *CreateRecipeRequest) { r.TagIDs = nil }},
		{"no ingredients", func(r *CreateRecipeRequest) { r.Ingredients = nil }},
		{"duplicate tags", func(r *CreateRecipeRequest) { r.TagIDs = []string{"tag-1", "tag-1"} }},
		{"duplicate ingredients", func(r *CreateRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: "ing-1", Amount: 10}, {ID: "ing-1", Amount: 20}}
		}},
		{"zero cooking time", func(r *CreateRecipeRequest) { r.CookingTime = 0 }},
		{"cooking time above bound", func(r *CreateRecipeRequest) { r.CookingTime = 32001 }},
		{"zero amount", func(r *CreateRecipeRequest) {
			r.Ingredients = []IngredientLineRequest{{ID: "ing-1", Amount: 0}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest("Dish " + tt.name)
			tt.mutate(&req)

			_, err := svc.Create(ctx, "user-1", req)
			require.Error(t, err)
			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
		})
	}
}

func TestRecipeService_Create_UnknownReferences(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	req := validCreateRequest("Pancakes")
	req.TagIDs = []string{"tag-missing"}
	_, err := svc.Create(ctx, "user-1", req)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	req = validCreateRequest("Pancakes")
	req.Ingredients = []IngredientLineRequest{{ID: "ing-missing", Amount: 10}}
	_, err = svc.Create(ctx, "user-1", req)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestRecipeService_Create_NameConflict(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	_, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestRecipeService_Update_ReplacesComposition(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	author := createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	newName := "Thick Pancakes"
	view, err := svc.Update(ctx, author, created.ID, UpdateRecipeRequest{
		Name:   &newName,
		TagIDs: []string{"tag-2"},
		Ingredients: []IngredientLineRequest{
			{ID: "ing-2", Amount: 100},
			{ID: "ing-3", Amount: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Thick Pancakes", view.Name)
	// Untouched scalar fields keep their stored values.
	assert.Equal(t, created.Text, view.Text)
	assert.Equal(t, created.CookingTime, view.CookingTime)
	require.Len(t, view.Tags, 1)
	assert.Equal(t, "tag-2", view.Tags[0].ID)
	require.Len(t, view.Ingredients, 2)
	assert.Equal(t, "egg", view.Ingredients[0].Name)
	assert.Equal(t, "milk", view.Ingredients[1].Name)
}

func TestRecipeService_Update_RequiresComposition(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	author := createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	newName := "Renamed"
	// A name-only patch is rejected: tags and ingredients must be resent.
	_, err = svc.Update(ctx, author, created.ID, UpdateRecipeRequest{Name: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// The failed update left the recipe untouched.
	got, err := svc.Get(ctx, "", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Len(t, got.Tags, 1)
	assert.Len(t, got.Ingredients, 1)
}

func TestRecipeService_Update_Authorization(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	stranger := createTestUser(t, s, "user-2", "bob")
	admin := createTestUser(t, s, "user-3", "carol")
	admin.Role = domain.RoleAdmin
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	req := UpdateRecipeRequest{
		TagIDs:      []string{"tag-1"},
		Ingredients: []IngredientLineRequest{{ID: "ing-1", Amount: 50}},
	}

	_, err = svc.Update(ctx, stranger, created.ID, req)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.Update(ctx, admin, created.ID, req)
	assert.NoError(t, err)
}

func TestRecipeService_Delete_Authorization(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	author := createTestUser(t, s, "user-1", "alice")
	stranger := createTestUser(t, s, "user-2", "bob")
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	err = svc.Delete(ctx, stranger, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = svc.Delete(ctx, author, created.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, author, created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRecipeService_FavoriteLifecycle(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestUser(t, s, "user-2", "bob")
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	brief, err := svc.Favorite(ctx, "user-2", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, brief.ID)
	assert.Equal(t, "Pancakes", brief.Name)

	_, err = svc.Favorite(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	// The flag is viewer-relative.
	asBob, err := svc.Get(ctx, "user-2", created.ID)
	require.NoError(t, err)
	assert.True(t, asBob.IsFavorited)

	asAnonymous, err := svc.Get(ctx, "", created.ID)
	require.NoError(t, err)
	assert.False(t, asAnonymous.IsFavorited)

	require.NoError(t, svc.Unfavorite(ctx, "user-2", created.ID))
	err = svc.Unfavorite(ctx, "user-2", created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRecipeService_CartLifecycle(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestCatalog(t, s)

	created, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "user-1", created.ID)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	view, err := svc.Get(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, view.IsInShoppingCart)

	require.NoError(t, svc.RemoveFromCart(ctx, "user-1", created.ID))
	err = svc.RemoveFromCart(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.AddToCart(ctx, "user-1", "recipe-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRecipeService_List_Flags(t *testing.T) {
	svc, _, s := newRecipeService(t)
	ctx := context.Background()
	createTestUser(t, s, "user-1", "alice")
	createTestUser(t, s, "user-2", "bob")
	createTestCatalog(t, s)

	first, err := svc.Create(ctx, "user-1", validCreateRequest("Pancakes"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "user-1", validCreateRequest("Bread"))
	require.NoError(t, err)

	_, err = svc.Favorite(ctx, "user-2", first.ID)
	require.NoError(t, err)

	views, err := svc.List(ctx, "user-2", store.RecipeFilter{}, store.DefaultPage())
	require.NoError(t, err)
	require.Len(t, views, 2)

	flagged := map[string]bool{}
	for _, v := range views {
		flagged[v.ID] = v.IsFavorited
	}
	assert.True(t, flagged[first.ID])

	// Anonymous listing carries false flags everywhere.
	anon, err := svc.List(ctx, "", store.RecipeFilter{}, store.DefaultPage())
	require.NoError(t, err)
	for _, v := range anon {
		assert.False(t, v.IsFavorited)
		assert.False(t, v.IsInShoppingCart)
	}
}
