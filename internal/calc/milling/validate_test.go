package milling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanParameters(t *testing.T) {
	warnings, err := Validate(6366, 637, 2, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name                          string
		rpm, feed, doc, woc, diameter float64
		substr                        string
	}{
		{"zero rpm", 0, 500, 1, 1, 10, "RPM must be greater than 0"},
		{"extreme rpm", 60000, 500, 1, 1, 10, "extremely high"},
		{"zero feed", 5000, 0, 1, 1, 10, "Feed rate must be greater than 0"},
		{"extreme feed", 5000, 20000, 1, 1, 10, "Feed rate extremely high"},
		{"negative doc", 5000, 500, -1, 1, 10, "cannot be negative"},
		{"doc beyond diameter", 5000, 500, 15, 1, 10, "very aggressive"},
		{"doc way beyond diameter", 5000, 500, 25, 1, 10, "deflection risk"},
		{"negative woc", 5000, 500, 1, -1, 10, "cannot be negative"},
		{"woc beyond diameter", 5000, 500, 1, 12, 10, "greater than tool diameter"},
		{"full slot", 5000, 500, 1, 9.6, 10, "Full slot"},
		{"rubbing", 5000, 500, 0.005, 0.005, 10, "rubbing"},
		{"near zero engagement", 5000, 500, 1, 0.1, 10, "Near-zero radial engagement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := Validate(tt.rpm, tt.feed, tt.doc, tt.woc, tt.diameter)
			require.NoError(t, err, "finite input never errors")
			assert.True(t, containsSubstring(warnings, tt.substr), "%v", warnings)
		})
	}
}

func TestValidate_WOCBeyondDiameterWarnsInsteadOfRaising(t *testing.T) {
	warnings, err := Validate(5000, 500, 1, 12, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
}

func TestValidate_NonFiniteInputRejected(t *testing.T) {
	_, err := Validate(math.NaN(), 500, 1, 1, 10)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "rpm", inputErr.Field)

	_, err = Validate(5000, math.Inf(1), 1, 1, 10)
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "feed", inputErr.Field)
}

func TestValidate_Pure(t *testing.T) {
	first, err := Validate(60000, 20000, 25, 12, 10)
	require.NoError(t, err)
	second, err := Validate(60000, 20000, 25, 12, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
