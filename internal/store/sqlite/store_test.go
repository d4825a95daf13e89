package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeTestUser(id, username string) *domain.User {
	return &domain.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:      domain.RoleMember,
		CreatedAt: time.Now(),
	}
}

func makeTestTag(id, name, slug string) *domain.Tag {
	return &domain.Tag{ID: id, Name: name, Color: "#49B64E", Slug: slug}
}

func makeTestIngredient(id, name, unit string) *domain.Ingredient {
	return &domain.Ingredient{ID: id, Name: name, MeasurementUnit: unit}
}

// seedCatalog inserts a user, two tags, and three ingredients most recipe
// tests need.
func seedCatalog(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	for _, tag := range []*domain.Tag{
		makeTestTag("tag-1", "Breakfast", "breakfast"),
		makeTestTag("tag-2", "Dinner", "dinner"),
	} {
		if err := s.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag %s: %v", tag.ID, err)
		}
	}
	for _, ing := range []*domain.Ingredient{
		makeTestIngredient("ing-1", "flour", "g"),
		makeTestIngredient("ing-2", "milk", "ml"),
		makeTestIngredient("ing-3", "egg", "pcs"),
	} {
		if err := s.CreateIngredient(ctx, ing); err != nil {
			t.Fatalf("CreateIngredient %s: %v", ing.ID, err)
		}
	}
}

func makeTestRecipe(id, name, authorID string) *domain.Recipe {
	return &domain.Recipe{
		ID:          id,
		Name:        name,
		AuthorID:    authorID,
		Image:       "data/images/" + id + ".png",
		Text:        "Mix and cook.",
		CookingTime: 20,
		CreatedAt:   time.Now(),
		Tags:        []domain.Tag{{ID: "tag-1"}},
		Ingredients: []domain.IngredientLine{
			{IngredientID: "ing-1", Amount: 200},
		},
	}
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	// Verify WAL mode is set.
	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode: got %q, want %q", journalMode, "wal")
	}

	// Foreign keys must be enforced for the cascades to work.
	var foreignKeys int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("foreign_keys: got %d, want 1", foreignKeys)
	}
}

func TestOpenIdempotentSchema(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Opening an existing database must not fail on re-applying the schema.
	s, err = Open(dbPath, logger)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	s.Close()
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "?"},
		{3, "?,?,?"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			if got := placeholders(tt.n); got != tt.want {
				t.Errorf("placeholders(%d): got %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}
