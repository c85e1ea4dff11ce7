package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainerrors "github.com/listenupapp/swatch-server/internal/errors"
	"github.com/listenupapp/swatch-server/internal/media/avatars"
	"github.com/listenupapp/swatch-server/internal/validation"
	"github.com/listenupapp/swatch-server/pkg/swatch"
)

// MaxBatchIDs caps how many entity IDs a single batch lookup may carry.
// Keep in sync with the validate tag on ResolveBatchRequest.
const MaxBatchIDs = 256

// SwatchService handles business logic around color derivation: seed
// defaulting, entity ID parsing, and placeholder hashes. The derivation
// itself lives in pkg/swatch so clients can embed it directly.
type SwatchService struct {
	renderer    *avatars.Renderer
	logger      *slog.Logger
	validator   *validation.Validator
	defaultSeed int64
}

// ResolvedSwatch is a derived color bundled with everything a client
// needs to cache it correctly.
type ResolvedSwatch struct {
	ID       uuid.UUID
	Seed     int64
	Swatch   swatch.Swatch
	BlurHash string
}

// NewSwatchService creates a new swatch service.
func NewSwatchService(renderer *avatars.Renderer, defaultSeed int64, logger *slog.Logger) *SwatchService {
	return &SwatchService{
		renderer:    renderer,
		logger:      logger,
		validator:   validation.New(),
		defaultSeed: defaultSeed,
	}
}

// EffectiveSeed returns the seed a request resolves to: the override if
// one was sent, otherwise this deployment's default.
func (s *SwatchService) EffectiveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return s.defaultSeed
}

// Resolve derives the swatch for a single entity ID.
func (s *SwatchService) Resolve(_ context.Context, rawID string, seed *int64) (*ResolvedSwatch, error) {
	entityID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, domainerrors.Validationf("invalid entity id %q", rawID).WithCause(err)
	}

	resolved := s.derive(entityID, s.EffectiveSeed(seed))
	return &resolved, nil
}

// ResolveBatchRequest contains fields for a batch swatch lookup.
type ResolveBatchRequest struct {
	IDs  []string `json:"ids" validate:"required,min=1,max=256"`
	Seed *int64   `json:"seed"`
}

// ResolveBatch derives swatches for a list of entity IDs, preserving
// input order. If any ID fails to parse, the whole batch is rejected
// with per-index details so the client can fix its payload in one pass.
func (s *SwatchService) ResolveBatch(_ context.Context, req ResolveBatchRequest) ([]ResolvedSwatch, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.IDs))
	var fieldErrors map[string]string

	for i, raw := range req.IDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			if fieldErrors == nil {
				fieldErrors = make(map[string]string)
			}
			fieldErrors[fmt.Sprintf("ids[%d]", i)] = "must be a valid UUID"
			continue
		}
		ids[i] = parsed
	}

	if len(fieldErrors) > 0 {
		return nil, domainerrors.ValidationWithDetails("batch contains invalid entity ids", fieldErrors)
	}

	effective := s.EffectiveSeed(req.Seed)
	resolved := make([]ResolvedSwatch, len(ids))
	for i, entityID := range ids {
		resolved[i] = s.derive(entityID, effective)
	}

	s.logger.Debug("resolved swatch batch",
		"count", len(resolved),
		"seed", effective,
	)

	return resolved, nil
}

// derive computes the swatch and its placeholder hash. A blurhash
// failure degrades to an empty hash rather than failing the lookup.
func (s *SwatchService) derive(entityID uuid.UUID, seed int64) ResolvedSwatch {
	resolved := ResolvedSwatch{
		ID:     entityID,
		Seed:   seed,
		Swatch: swatch.FromUUID(entityID, seed),
	}

	if s.renderer != nil {
		hash, err := s.renderer.BlurHash(entityID, seed)
		if err != nil {
			s.logger.Warn("blurhash computation failed", "id", entityID, "error", err)
		} else {
			resolved.BlurHash = hash
		}
	}

	return resolved
}
