package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/swatch-server/internal/config"
	"github.com/listenupapp/swatch-server/internal/logger"
	"github.com/listenupapp/swatch-server/internal/media/avatars"
	"github.com/listenupapp/swatch-server/internal/ratelimit"
	"github.com/listenupapp/swatch-server/internal/service"
)

// RateLimiterHandle wraps the keyed limiter with Shutdownable. The
// limiter is nil when rate limiting is disabled by configuration.
type RateLimiterHandle struct {
	Limiter *ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.Limiter != nil {
		h.Limiter.Stop()
	}
	return nil
}

// ProvideRateLimiter provides the per-client request limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	limiter := ratelimit.New(float64(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	log.Info("Rate limiting enabled",
		"rps", cfg.RateLimit.RPS,
		"burst", cfg.RateLimit.Burst,
	)

	return &RateLimiterHandle{Limiter: limiter}, nil
}

// ProvideAvatarRenderer provides the PNG avatar renderer.
func ProvideAvatarRenderer(i do.Injector) (*avatars.Renderer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return avatars.NewRenderer(cfg.Avatar.MaxSize, log.Logger), nil
}

// ProvideInstanceService provides the server instance service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	cfg := do.MustInvoke[*config.Config](i)

	return service.NewInstanceService(log.Logger, cfg), nil
}

// ProvideSwatchService provides the color derivation service.
func ProvideSwatchService(i do.Injector) (*service.SwatchService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	renderer := do.MustInvoke[*avatars.Renderer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSwatchService(renderer, cfg.Swatch.DefaultSeed, log.Logger), nil
}
