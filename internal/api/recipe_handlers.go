package api

import (
	"bytes"
	"github.com/go-json-experiment/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iurelen/delicious-project-with-react/internal/export"
	"github.com/iurelen/delicious-project-with-react/internal/http/response"
	"github.com/iurelen/delicious-project-with-react/internal/service"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// recipeFilter translates recipe listing query parameters. The boolean
// viewer-scoped flags (is_favorited, is_in_shopping_cart) are honored only
// for value "1" and an authenticated viewer; anonymous requests carry them
// silently ignored rather than erroring.
func recipeFilter(r *http.Request) store.RecipeFilter {
	filter := store.RecipeFilter{
		TagSlugs: r.URL.Query()["tags"],
		AuthorID: r.URL.Query().Get("author"),
	}

	if userID := viewerID(r.Context()); userID != "" {
		if flagQuery(r, "is_favorited") {
			filter.FavoritedBy = userID
		}
		if flagQuery(r, "is_in_shopping_cart") {
			filter.InCartOf = userID
		}
	}
	return filter
}

// handleListRecipes returns a filtered page of recipes.
// GET /api/v1/recipes
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := s.recipeService.List(ctx, viewerID(ctx), recipeFilter(r), parsePage(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, views, s.logger)
}

// handleGetRecipe returns one recipe.
// GET /api/v1/recipes/{id}
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := s.recipeService.Get(ctx, viewerID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleCreateRecipe creates a recipe owned by the viewer.
// POST /api/v1/recipes
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRecipeRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	view, err := s.recipeService.Create(r.Context(), viewerID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, view, s.logger)
}

// handleUpdateRecipe patches a recipe.
// PATCH /api/v1/recipes/{id}
func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRecipeRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	view, err := s.recipeService.Update(r.Context(), currentUser(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleDeleteRecipe removes a recipe.
// DELETE /api/v1/recipes/{id}
func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.recipeService.Delete(ctx, currentUser(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleFavorite adds a recipe to the viewer's favorites.
// POST /api/v1/recipes/{id}/favorite
func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brief, err := s.recipeService.Favorite(ctx, viewerID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, brief, s.logger)
}

// handleUnfavorite removes a recipe from the viewer's favorites.
// DELETE /api/v1/recipes/{id}/favorite
func (s *Server) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.recipeService.Unfavorite(ctx, viewerID(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleAddToCart puts a recipe in the viewer's shopping cart.
// POST /api/v1/recipes/{id}/shopping_cart
func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	brief, err := s.recipeService.AddToCart(ctx, viewerID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, brief, s.logger)
}

// handleRemoveFromCart takes a recipe out of the viewer's shopping cart.
// DELETE /api/v1/recipes/{id}/shopping_cart
func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.recipeService.RemoveFromCart(ctx, viewerID(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleDownloadShoppingCart streams the viewer's aggregated shopping list
// as a PDF attachment.
// GET /api/v1/recipes/download_shopping_cart
func (s *Server) handleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Render to a buffer first so failures can still produce an error
	// response instead of a truncated download.
	var buf bytes.Buffer
	if err := s.shoppingListService.WritePDF(ctx, &buf, viewerID(ctx)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ShoppingListFilename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Error("Failed to write shopping list PDF", "error", err)
	}
}
