// Package api provides the HTTP API server and handlers for the recipe service.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iurelen/delicious-project-with-react/internal/http/response"
	"github.com/iurelen/delicious-project-with-react/internal/service"
	"github.com/iurelen/delicious-project-with-react/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store               store.Store
	authService         *service.AuthService
	userService         *service.UserService
	recipeService       *service.RecipeService
	subscriptionService *service.SubscriptionService
	shoppingListService *service.ShoppingListService
	allowedOrigins      []string
	router              *chi.Mux
	logger              *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	authService *service.AuthService,
	userService *service.UserService,
	recipeService *service.RecipeService,
	subscriptionService *service.SubscriptionService,
	shoppingListService *service.ShoppingListService,
	allowedOrigins []string,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:               store,
		authService:         authService,
		userService:         userService,
		recipeService:       recipeService,
		subscriptionService: subscriptionService,
		shoppingListService: shoppingListService,
		allowedOrigins:      allowedOrigins,
		router:              chi.NewRouter(),
		logger:              logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", s.handleLogin)
			r.Post("/logout", s.handleLogout)
		})

		// Users. Registration and profile reads are open; the fixed
		// segments (me, set_password, subscriptions) are registered before
		// the {id} wildcard and backed by reserved-username validation.
		r.Route("/users", func(r chi.Router) {
			r.Post("/", s.handleRegister)
			r.With(s.optionalAuth).Get("/", s.handleListUsers)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/me", s.handleGetCurrentUser)
				r.Post("/set_password", s.handleSetPassword)
				r.Get("/subscriptions", s.handleListSubscriptions)
				r.Post("/{id}/subscribe", s.handleSubscribe)
				r.Delete("/{id}/subscribe", s.handleUnsubscribe)
			})

			r.With(s.optionalAuth).Get("/{id}", s.handleGetUser)
		})

		// Catalog (public, read-only).
		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Get("/{id}", s.handleGetTag)
		})
		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", s.handleListIngredients)
			r.Get("/{id}", s.handleGetIngredient)
		})

		// Recipes. Reads are open with optional viewer context; writes and
		// relations require auth.
		r.Route("/recipes", func(r chi.Router) {
			r.With(s.optionalAuth).Get("/", s.handleListRecipes)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateRecipe)
				r.Get("/download_shopping_cart", s.handleDownloadShoppingCart)
				r.Patch("/{id}", s.handleUpdateRecipe)
				r.Delete("/{id}", s.handleDeleteRecipe)
				r.Post("/{id}/favorite", s.handleFavorite)
				r.Delete("/{id}/favorite", s.handleUnfavorite)
				r.Post("/{id}/shopping_cart", s.handleAddToCart)
				r.Delete("/{id}/shopping_cart", s.handleRemoveFromCart)
			})

			r.With(s.optionalAuth).Get("/{id}", s.handleGetRecipe)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
