package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/listenupapp/swatch-server/internal/config"
	"github.com/listenupapp/swatch-server/internal/domain"
	domainerrors "github.com/listenupapp/swatch-server/internal/errors"
	"github.com/listenupapp/swatch-server/internal/id"
	"github.com/listenupapp/swatch-server/internal/version"
	"github.com/listenupapp/swatch-server/pkg/swatch"
)

// InstanceService owns this server's identity. The instance is not
// persisted anywhere: it exists so clients on the local network can
// tell deployments apart and learn which seed and algorithm this one
// answers with.
type InstanceService struct {
	logger *slog.Logger
	config *config.Config

	mu       sync.RWMutex
	instance *domain.Instance
}

// NewInstanceService creates a new instance service.
func NewInstanceService(logger *slog.Logger, config *config.Config) *InstanceService {
	return &InstanceService{
		logger: logger,
		config: config,
	}
}

// InitializeInstance mints the instance identity on first call and
// returns the same instance afterwards.
func (s *InstanceService) InitializeInstance(_ context.Context) (*domain.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance != nil {
		return s.instance, nil
	}

	instanceID, err := id.Generate("swt")
	if err != nil {
		return nil, fmt.Errorf("failed to mint instance id: %w", err)
	}

	s.instance = &domain.Instance{
		ID:          instanceID,
		Name:        s.config.Server.Name,
		Version:     version.Server,
		LocalURL:    s.config.Server.LocalURL,
		Algorithm:   swatch.Algorithm,
		DefaultSeed: s.config.Swatch.DefaultSeed,
		StartedAt:   time.Now().UTC(),
	}

	s.logger.Info("Instance initialized",
		"instance_id", s.instance.ID,
		"name", s.instance.Name,
		"algorithm", s.instance.Algorithm,
		"default_seed", s.instance.DefaultSeed,
	)

	return s.instance, nil
}

// GetInstance retrieves the instance identity.
func (s *InstanceService) GetInstance(_ context.Context) (*domain.Instance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.instance == nil {
		return nil, domainerrors.NotFound("instance not initialized")
	}

	return s.instance, nil
}
