package providers

import (
	"github.com/samber/do/v2"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/logger"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
	"github.com/iurelen/delicious-project-with-react/internal/service"
)

// ProvideProjector provides the viewer-relative view projector.
func ProvideProjector(i do.Injector) (*service.Projector, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewProjector(storeHandle.Store), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	loginLimiter := do.MustInvoke[*ratelimit.KeyedLimiter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, loginLimiter, log.Logger), nil
}

// ProvideUserService provides the user account service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	projector := do.MustInvoke[*service.Projector](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, projector, log.Logger), nil
}

// ProvideRecipeService provides the recipe service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	projector := do.MustInvoke[*service.Projector](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecipeService(storeHandle.Store, projector, log.Logger), nil
}

// ProvideSubscriptionService provides the author follow service.
func ProvideSubscriptionService(i do.Injector) (*service.SubscriptionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSubscriptionService(storeHandle.Store, log.Logger), nil
}

// ProvideShoppingListService provides the shopping list aggregation service.
func ProvideShoppingListService(i do.Injector) (*service.ShoppingListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShoppingListService(storeHandle.Store, log.Logger), nil
}
