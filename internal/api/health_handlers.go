package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/listenupapp/swatch-server/internal/media/avatars"
	"github.com/listenupapp/swatch-server/pkg/swatch"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// healthProbeID is a fixed UUID used to exercise the derivation and
// rendering paths during health checks.
var healthProbeID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	// Check color derivation
	derivationHealth := s.checkDerivation()
	components["derivation"] = derivationHealth
	if derivationHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	// Check avatar renderer
	rendererHealth := s.checkRenderer()
	components["renderer"] = rendererHealth
	if rendererHealth.Status == "unhealthy" {
		overall = "unhealthy"
	} else if rendererHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	// Check rate limiter
	limiterHealth := s.checkRateLimiter()
	components["ratelimit"] = limiterHealth
	if limiterHealth.Status == "unhealthy" {
		overall = "unhealthy"
	} else if limiterHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDerivation verifies the color pipeline is deterministic and
// produces well-formed colors.
func (s *Server) checkDerivation() ComponentHealth {
	start := time.Now()

	first := swatch.FromUUID(healthProbeID, 1)
	second := swatch.FromUUID(healthProbeID, 1)
	latency := time.Since(start)

	if first != second {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "derivation is not deterministic",
		}
	}

	if hex := first.Hex(); len(hex) != 7 || hex[0] != '#' {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "derivation produced a malformed color",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkRenderer verifies avatar rendering works end to end.
func (s *Server) checkRenderer() ComponentHealth {
	// Handle nil renderer (e.g., in tests)
	if s.renderer == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "renderer not configured",
		}
	}

	start := time.Now()

	// Smallest size keeps the probe cheap.
	_, err := s.renderer.Render(healthProbeID, avatars.Options{Size: avatars.MinSize})
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "avatar rendering failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkRateLimiter reports rate limiter state. A disabled limiter is a
// valid configuration, not a degradation.
func (s *Server) checkRateLimiter() ComponentHealth {
	if s.rateLimiter == nil {
		return ComponentHealth{
			Status:  "healthy",
			Message: "rate limiting disabled",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Message: formatLimiterStatus(s.rateLimiter.Len()),
	}
}

func formatLimiterStatus(count int) string {
	switch count {
	case 0:
		return "no tracked clients"
	case 1:
		return "1 tracked client"
	default:
		return strconv.Itoa(count) + " tracked clients"
	}
}
