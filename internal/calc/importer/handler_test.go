package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMillingRow(t *testing.T) {
	req, err := parseMillingRow([]string{"10", "2", "2", "5", "656", "0.05", "800", "aluminum_6061", "router"})
	require.NoError(t, err)
	assert.Equal(t, 10.0, req.DiameterMM)
	assert.Equal(t, 2, req.FluteNum)
	assert.Equal(t, 656.0, req.SFM)
	assert.Equal(t, "aluminum_6061", req.MaterialType)
	assert.Equal(t, "router", req.RigidityLevel)
}

func TestParseMillingRow_OptionalColumns(t *testing.T) {
	req, err := parseMillingRow([]string{"6", "3", "1", "2", "400", "0.03", "2000"})
	require.NoError(t, err)
	assert.Empty(t, req.MaterialType)
	assert.Empty(t, req.RigidityLevel)
}

func TestParseMillingRow_BadRows(t *testing.T) {
	_, err := parseMillingRow([]string{"10", "2", "2"})
	assert.Error(t, err)

	_, err = parseMillingRow([]string{"ten", "2", "2", "5", "656", "0.05", "800"})
	assert.Error(t, err)
}
