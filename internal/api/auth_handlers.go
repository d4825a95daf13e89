package api

import (
	"github.com/go-json-experiment/json"
	"net/http"

	"github.com/iurelen/delicious-project-with-react/internal/http/response"
	"github.com/iurelen/delicious-project-with-react/internal/service"
)

// handleLogin exchanges credentials for an access token.
// POST /api/v1/auth/token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}

// handleLogout acknowledges a logout. Tokens are stateless, so the client
// simply discards its copy; the endpoint exists for API symmetry.
// POST /api/v1/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	response.NoContent(w)
}
