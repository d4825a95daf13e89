package api

import (
	"github.com/go-json-experiment/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iurelen/delicious-project-with-react/internal/http/response"
	"github.com/iurelen/delicious-project-with-react/internal/service"
)

// handleRegister creates a new user account.
// POST /api/v1/users
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	view, err := s.userService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, view, s.logger)
}

// handleListUsers returns a page of user profiles.
// GET /api/v1/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := s.userService.List(ctx, viewerID(ctx), parsePage(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, views, s.logger)
}

// handleGetUser returns one user profile.
// GET /api/v1/users/{id}
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := s.userService.Get(ctx, viewerID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleGetCurrentUser returns the authenticated user's own profile.
// GET /api/v1/users/me
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := viewerID(ctx)

	view, err := s.userService.Get(ctx, userID, userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, view, s.logger)
}

// handleSetPassword changes the authenticated user's password.
// POST /api/v1/users/set_password
func (s *Server) handleSetPassword(w http.ResponseWriter, r *http.Request) {
	var req service.SetPasswordRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	if err := s.userService.SetPassword(r.Context(), viewerID(r.Context()), req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListSubscriptions returns the authors the viewer follows, each with
// a recipes_limit-truncated recipe listing.
// GET /api/v1/users/subscriptions
func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := s.subscriptionService.List(ctx, viewerID(ctx), parsePage(r), intQuery(r, "recipes_limit", 0))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, views, s.logger)
}

// handleSubscribe follows an author.
// POST /api/v1/users/{id}/subscribe
func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, err := s.subscriptionService.Subscribe(ctx, viewerID(ctx), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, view, s.logger)
}

// handleUnsubscribe unfollows an author.
// DELETE /api/v1/users/{id}/subscribe
func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.subscriptionService.Unsubscribe(ctx, viewerID(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
