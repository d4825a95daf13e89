package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/iurelen/delicious-project-with-react/internal/domain"
	"github.com/iurelen/delicious-project-with-react/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyUser contextKey = "user"

// bearerToken extracts the token from an Authorization header, or "".
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// requireAuth is middleware that validates access tokens and attaches the
// authenticated user to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w, "Missing or malformed authorization header", s.logger)
			return
		}

		user, err := s.authService.Authenticate(r.Context(), token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches the user when a valid token is present and proceeds
// anonymously otherwise. Used on read endpoints whose responses carry
// viewer-relative flags.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if user, err := s.authService.Authenticate(r.Context(), token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), contextKeyUser, user))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// currentUser returns the authenticated user from the request context, or nil.
func currentUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(contextKeyUser).(*domain.User); ok {
		return user
	}
	return nil
}

// viewerID returns the authenticated user's ID, or "" for anonymous requests.
func viewerID(ctx context.Context) string {
	if user := currentUser(ctx); user != nil {
		return user.ID
	}
	return ""
}
