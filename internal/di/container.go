// Package di provides dependency injection configuration for the recipe API.
package di

import (
	"github.com/samber/do/v2"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/config"
	"github.com/iurelen/delicious-project-with-react/internal/di/providers"
	"github.com/iurelen/delicious-project-with-react/internal/logger"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
	"github.com/iurelen/delicious-project-with-react/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideLoginLimiter)

	// Business services
	do.Provide(injector, providers.ProvideProjector)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideSubscriptionService)
	do.Provide(injector, providers.ProvideShoppingListService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. This triggers lazy initialization in
// dependency order and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*ratelimit.KeyedLimiter](injector)

	_ = do.MustInvoke[*service.Projector](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*service.SubscriptionService](injector)
	_ = do.MustInvoke[*service.ShoppingListService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
