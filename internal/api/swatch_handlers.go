package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/swatch-server/internal/service"
)

func (s *Server) registerSwatchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSwatch",
		Method:      http.MethodGet,
		Path:        "/api/v1/swatches/{id}",
		Summary:     "Get swatch",
		Description: "Derives the display color for a single entity UUID",
		Tags:        []string{"Swatches"},
	}, s.handleGetSwatch)

	huma.Register(s.api, huma.Operation{
		OperationID: "batchSwatches",
		Method:      http.MethodPost,
		Path:        "/api/v1/swatches/batch",
		Summary:     "Batch swatch lookup",
		Description: "Derives display colors for up to 256 entity UUIDs, preserving input order",
		Tags:        []string{"Swatches"},
	}, s.handleBatchSwatches)
}

// === DTOs ===

type GetSwatchInput struct {
	ID   string `path:"id" doc:"Entity UUID"`
	Seed *int64 `query:"seed" doc:"Seed override; omit to use the instance default"`
}

// RGBResponse carries the color as integer channels for clients that
// don't want to parse hex strings.
type RGBResponse struct {
	R uint8 `json:"r" doc:"Red channel (0-255)"`
	G uint8 `json:"g" doc:"Green channel (0-255)"`
	B uint8 `json:"b" doc:"Blue channel (0-255)"`
}

// SwatchResponse contains a derived color in API responses.
type SwatchResponse struct {
	ID       string      `json:"id" doc:"Entity UUID"`
	Hex      string      `json:"hex" doc:"Uppercase hex color, e.g. #FF9A00"`
	RGB      RGBResponse `json:"rgb" doc:"Color as integer channels"`
	IsDark   bool        `json:"is_dark" doc:"Whether the color needs light foreground text"`
	Seed     int64       `json:"seed" doc:"Seed the color was derived with"`
	BlurHash string      `json:"blur_hash,omitempty" doc:"BlurHash placeholder for the solid color"`
}

type SwatchOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         SwatchResponse
}

type BatchSwatchesRequest struct {
	IDs  []string `json:"ids" doc:"Entity UUIDs, at most 256"`
	Seed *int64   `json:"seed,omitempty" doc:"Seed override; omit to use the instance default"`
}

type BatchSwatchesInput struct {
	Body BatchSwatchesRequest
}

type BatchSwatchesResponse struct {
	Swatches []SwatchResponse `json:"swatches" doc:"Derived colors in request order"`
	Seed     int64            `json:"seed" doc:"Seed applied to the whole batch"`
}

type BatchSwatchesOutput struct {
	Body BatchSwatchesResponse
}

// === Handlers ===

func (s *Server) handleGetSwatch(ctx context.Context, input *GetSwatchInput) (*SwatchOutput, error) {
	resolved, err := s.services.Swatch.Resolve(ctx, input.ID, input.Seed)
	if err != nil {
		return nil, err
	}

	// An explicit seed pins the response forever; the default seed can
	// change across deployments.
	cache := CacheOneDay
	if input.Seed != nil {
		cache = CacheImmutable
	}

	return &SwatchOutput{
		CacheControl: cache,
		Body:         mapSwatchResponse(resolved),
	}, nil
}

func (s *Server) handleBatchSwatches(ctx context.Context, input *BatchSwatchesInput) (*BatchSwatchesOutput, error) {
	resolved, err := s.services.Swatch.ResolveBatch(ctx, service.ResolveBatchRequest{
		IDs:  input.Body.IDs,
		Seed: input.Body.Seed,
	})
	if err != nil {
		return nil, err
	}

	swatches := make([]SwatchResponse, len(resolved))
	for i := range resolved {
		swatches[i] = mapSwatchResponse(&resolved[i])
	}

	return &BatchSwatchesOutput{
		Body: BatchSwatchesResponse{
			Swatches: swatches,
			Seed:     s.services.Swatch.EffectiveSeed(input.Body.Seed),
		},
	}, nil
}

func mapSwatchResponse(r *service.ResolvedSwatch) SwatchResponse {
	return SwatchResponse{
		ID:  r.ID.String(),
		Hex: r.Swatch.Hex(),
		RGB: RGBResponse{
			R: r.Swatch.Color.R,
			G: r.Swatch.Color.G,
			B: r.Swatch.Color.B,
		},
		IsDark:   r.Swatch.IsDark,
		Seed:     r.Seed,
		BlurHash: r.BlurHash,
	}
}
