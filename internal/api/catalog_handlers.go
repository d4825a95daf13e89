package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iurelen/delicious-project-with-react/internal/http/response"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// The tag and ingredient catalogs are read-only reference data, so their
// handlers go straight to the store.

// handleListTags returns all tags.
// GET /api/v1/tags
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.store.ListTags(r.Context())
	if err != nil {
		s.logger.Error("Failed to list tags", "error", err)
		response.InternalError(w, s.logger)
		return
	}

	response.Success(w, tags, s.logger)
}

// handleGetTag returns one tag.
// GET /api/v1/tags/{id}
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.store.GetTag(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, "tag not found", s.logger)
			return
		}
		s.logger.Error("Failed to get tag", "error", err)
		response.InternalError(w, s.logger)
		return
	}

	response.Success(w, tag, s.logger)
}

// handleListIngredients returns ingredients, optionally filtered by a name
// prefix.
// GET /api/v1/ingredients?name=…
func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.store.ListIngredients(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		s.logger.Error("Failed to list ingredients", "error", err)
		response.InternalError(w, s.logger)
		return
	}

	response.Success(w, ingredients, s.logger)
}

// handleGetIngredient returns one ingredient.
// GET /api/v1/ingredients/{id}
func (s *Server) handleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ing, err := s.store.GetIngredient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, "ingredient not found", s.logger)
			return
		}
		s.logger.Error("Failed to get ingredient", "error", err)
		response.InternalError(w, s.logger)
		return
	}

	response.Success(w, ing, s.logger)
}
