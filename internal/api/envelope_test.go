package api

import (
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/swatch-server/internal/http/response"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{
			name:   "success response",
			status: "200",
			input:  map[string]string{"key": "value"},
		},
		{
			name:   "success with nil data",
			status: "200",
			input:  nil,
		},
		{
			name:   "simple error",
			status: "404",
			input:  &APIError{Message: "route not found"},
		},
		{
			name:   "detailed error",
			status: "400",
			input: &APIError{
				Code:    "VALIDATION",
				Message: "batch contains invalid entity ids",
				Details: map[string]string{"ids[0]": "must be a valid UUID"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			// Marshal to JSON and parse as generic map to check structure
			jsonBytes, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			err = json.Unmarshal(jsonBytes, &envelope)
			require.NoError(t, err)

			// Verify version field exists and has correct value
			require.Contains(t, envelope, "v", "Envelope must contain version field 'v'")
			assert.Equal(t, float64(response.EnvelopeVersion), envelope["v"])
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"hex": "#FF9A00"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(*successEnvelope)
	require.True(t, ok, "Expected success envelope type")

	assert.Equal(t, response.EnvelopeVersion, envelope.V)
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
}

func TestEnvelopeTransformer_SimpleError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "404", &APIError{Message: "instance not initialized"})
	require.NoError(t, err)

	envelope, ok := result.(*errorEnvelope)
	require.True(t, ok, "Expected error envelope type")

	assert.Equal(t, response.EnvelopeVersion, envelope.V)
	assert.False(t, envelope.Success)
	assert.Equal(t, "instance not initialized", envelope.Error)
}

func TestEnvelopeTransformer_ErrorWithDetails(t *testing.T) {
	apiErr := &APIError{
		Code:    "VALIDATION",
		Message: "batch contains invalid entity ids",
		Details: map[string]string{"ids[1]": "must be a valid UUID"},
	}

	result, err := EnvelopeTransformer(nil, "400", apiErr)
	require.NoError(t, err)

	envelope, ok := result.(*detailedErrorEnvelope)
	require.True(t, ok, "Expected detailed error envelope type")

	assert.Equal(t, response.EnvelopeVersion, envelope.V)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "batch contains invalid entity ids", envelope.Message)
	assert.Equal(t, map[string]string{"ids[1]": "must be a valid UUID"}, envelope.Details)
}
