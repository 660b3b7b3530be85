package milling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRPM_Precedence(t *testing.T) {
	// min=1000, preferred=10000, max=20000
	tests := []struct {
		rpm     float64
		status  Status
		message string
	}{
		{500, StatusDanger, "below minimum (1000 RPM)"},
		{25000, StatusDanger, "above maximum (20000 RPM)"},
		{9500, StatusGood, "near preferred (10000 RPM)"},
		{19500, StatusWarning, "approaching maximum"},
		{1050, StatusWarning, "near minimum"},
		{5000, StatusInfo, "within safe range"},
	}
	for _, tt := range tests {
		status, message := ClassifyRPM(tt.rpm, 1000, 10000, 20000)
		assert.Equal(t, tt.status, status, "rpm=%v", tt.rpm)
		assert.Equal(t, tt.message, message, "rpm=%v", tt.rpm)
	}
}

func TestClassifyRPM_PreferredBandWinsOverLimitBands(t *testing.T) {
	// Preferred sits right under the max: 10500 is both within 10% of
	// preferred and above 90% of max. The preferred band must win.
	status, message := ClassifyRPM(10500, 1000, 10000, 11000)
	assert.Equal(t, StatusGood, status)
	assert.Contains(t, message, "near preferred")
}

func TestClassifyRPM_BoundariesAreInclusive(t *testing.T) {
	// Exactly 10% away from preferred still counts as near preferred.
	status, _ := ClassifyRPM(11000, 1000, 10000, 20000)
	assert.Equal(t, StatusGood, status)

	status, _ = ClassifyRPM(9000, 1000, 10000, 20000)
	assert.Equal(t, StatusGood, status)
}
