package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get server instance",
		Description: "Returns instance identity, the derivation algorithm tag, and the default seed",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)
}

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	ID          string    `json:"id" doc:"Instance ID, minted at startup"`
	Name        string    `json:"name" doc:"Server name"`
	Version     string    `json:"version" doc:"Server version"`
	LocalURL    string    `json:"local_url,omitempty" doc:"Local network URL"`
	Algorithm   string    `json:"algorithm" doc:"Color derivation algorithm tag"`
	DefaultSeed int64     `json:"default_seed" doc:"Seed applied when requests carry none"`
	StartedAt   time.Time `json:"started_at" doc:"Instance start timestamp"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         InstanceResponse
}

func (s *Server) handleGetInstance(ctx context.Context, _ *struct{}) (*InstanceOutput, error) {
	instance, err := s.services.Instance.GetInstance(ctx)
	if err != nil {
		s.logger.Error("Failed to get instance", "error", err)
		return nil, err
	}

	return &InstanceOutput{
		CacheControl: CacheNoStore,
		Body: InstanceResponse{
			ID:          instance.ID,
			Name:        instance.Name,
			Version:     instance.Version,
			LocalURL:    instance.LocalURL,
			Algorithm:   instance.Algorithm,
			DefaultSeed: instance.DefaultSeed,
			StartedAt:   instance.StartedAt,
		},
	}, nil
}
