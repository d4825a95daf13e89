package providers

import (
	"github.com/samber/do/v2"

	"github.com/iurelen/delicious-project-with-react/internal/auth"
	"github.com/iurelen/delicious-project-with-react/internal/config"
	"github.com/iurelen/delicious-project-with-react/internal/logger"
	"github.com/iurelen/delicious-project-with-react/internal/ratelimit"
)

// AuthKey wraps the token key bytes.
type AuthKey []byte

// ProvideAuthKey loads or generates the token signing key next to the
// database file.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.DataDir())
	if err != nil {
		return nil, err
	}

	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded",
		"access_token_duration", cfg.Auth.AccessTokenDuration,
	)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService([]byte(authKey), cfg.Auth.AccessTokenDuration)
}

// ProvideLoginLimiter provides the per-email login rate limiter.
func ProvideLoginLimiter(i do.Injector) (*ratelimit.KeyedLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return ratelimit.New(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst), nil
}
