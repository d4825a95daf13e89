package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestUser(t *testing.T, s *sqlite.Store, id, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@test.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         domain.RoleMember,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestCatalog(t *testing.T, s *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	tags := []*domain.Tag{
		{ID: "tag-1", Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{ID: "tag-2", Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	}
	for _, tag := range tags {
		require.NoError(t, s.CreateTag(ctx, tag))
	}

	ingredients := []*domain.Ingredient{
		{ID: "ing-1", Name: "flour", MeasurementUnit: "g"},
		{ID: "ing-2", Name: "milk", MeasurementUnit: "ml"},
		{ID: "ing-3", Name: "egg", MeasurementUnit: "pcs"},
	}
	for _, ing := range ingredients {
		require.NoError(t, s.CreateIngredient(ctx, ing))
	}
}

func validCreateRequest(name string) CreateRecipeRequest {
	return CreateRecipeRequest{
		Name:        name,
		Image:       "data/images/test.png",
		Text:        "Mix everything and cook.",
		CookingTime: 15,
		TagIDs:      []string{"tag-1"},
		Ingredients: []IngredientLineRequest{
			{ID: "ing-1", Amount: 200},
		},
	}
}
