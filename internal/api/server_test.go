package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
	"github.com/iurelen/delicious-project-with-react/internal/service"
	"github.com/iurelen/delicious-project-with-react/internal/store/sqlite"
)

// setupTestServer creates a test server backed by a temp-dir store.
func setupTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := []byte("test-secret-key-for-testing-32b!")
	tokenService, err := auth.NewTokenService(key, 15*time.Minute)
	require.NoError(t, err)

	projector := service.NewProjector(s)
	authService := service.NewAuthService(s, tokenService, ratelimit.New(100, 100), logger)
	userService := service.NewUserService(s, projector, logger)
	recipeService := service.NewRecipeService(s, projector, logger)
	subscriptionService := service.NewSubscriptionService(s, logger)
	shoppingListService := service.NewShoppingListService(s, logger)

	server := NewServer(s, authService, userService, recipeService, subscriptionService, shoppingListService, []string{"*"}, logger)
	return server, s
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, server *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data half of a response envelope.
func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var envelope struct {
		Data    T    `json:"data"`
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}

// errorCode extracts the error code from a response envelope.
func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

// registerAndLogin creates an account over the API and returns its ID and an
// access token.
func registerAndLogin(t *testing.T, server *Server, username string) (userID, token string) {
	t.Helper()

	w := doJSON(t, server, http.MethodPost, "/api/v1/users", "", service.RegisterRequest{
		Username:  username,
		Email:     username + "@test.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decodeData[service.UserView](t, w.Body.Bytes())

	w = doJSON(t, server, http.MethodPost, "/api/v1/auth/token", "", service.LoginRequest{
		Email:    username + "@test.com",
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeData[service.TokenResponse](t, w.Body.Bytes())

	return user.ID, resp.AccessToken
}

// seedCatalog inserts tags and ingredients directly; the catalog is
// read-only over the API.
func seedCatalog(t *testing.T, s *sqlite.Store) {
	t.Helper()
	ctx := context.Background()

	for _, tag := range []*domain.Tag{
		{ID: "tag-1", Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{ID: "tag-2", Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
	} {
		require.NoError(t, s.CreateTag(ctx, tag))
	}
	for _, ing := range []*domain.Ingredient{
		{ID: "ing-1", Name: "flour", MeasurementUnit: "g"},
		{ID: "ing-2", Name: "milk", MeasurementUnit: "ml"},
	} {
		require.NoError(t, s.CreateIngredient(ctx, ing))
	}
}

func validRecipeBody(name string) service.CreateRecipeRequest {
	return service.CreateRecipeRequest{
		Name:        name,
		Image:       "data/images/test.png",
		Text:        "Mix and cook.",
		CookingTime: 15,
		TagIDs:      []string{"tag-1"},
		Ingredients: []service.IngredientLineRequest{
			{ID: "ing-1", Amount: 200},
		},
	}
}

func TestHealthCheck(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeData[map[string]string](t, w.Body.Bytes())
	assert.Equal(t, "healthy", data["status"])
}

func TestRegisterLoginAndMe(t *testing.T) {
	server, _ := setupTestServer(t)

	userID, token := registerAndLogin(t, server, "alice")

	w := doJSON(t, server, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	me := decodeData[service.UserView](t, w.Body.Bytes())
	assert.Equal(t, userID, me.ID)
	assert.Equal(t, "alice", me.Username)
}

func TestMe_RequiresAuth(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, server, http.MethodGet, "/api/v1/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_ReservedUsername(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/users", "", service.RegisterRequest{
		Username:  "me",
		Email:     "me@test.com",
		FirstName: "A",
		LastName:  "B",
		Password:  "long enough password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION", errorCode(t, w.Body.Bytes()))
}

func TestLogout(t *testing.T) {
	server, _ := setupTestServer(t)

	w := doJSON(t, server, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
