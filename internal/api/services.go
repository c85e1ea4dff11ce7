package api

import (
	"github.com/listenupapp/swatch-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Instance *service.InstanceService
	Swatch   *service.SwatchService
}
