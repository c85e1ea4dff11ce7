package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/swatch-server/internal/http/response"
)

// Envelope shapes for API responses. Client SDKs parse these exact
// structures, so field names here are a wire contract. The version
// field is spelled "v" and must stay that way.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every /api/ response in the versioned
// envelope. Raw endpoints like /health and /avatars keep their natural
// shape so probes and image tags can consume them directly.
func EnvelopeTransformer(ctx huma.Context, _ string, v any) (any, error) {
	if ctx != nil && !strings.HasPrefix(ctx.URL().Path, "/api/") {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		// Errors without a code keep the compact shape.
		if apiErr.Code == "" {
			return &errorEnvelope{
				V:       response.EnvelopeVersion,
				Success: false,
				Error:   apiErr.Message,
			}, nil
		}

		return &detailedErrorEnvelope{
			V:       response.EnvelopeVersion,
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	return &successEnvelope{
		V:       response.EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}
