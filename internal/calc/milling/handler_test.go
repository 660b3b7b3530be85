package milling

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{
		DiameterMM: 10,
		FluteNum:   2,
		DOCMM:      2,
		WOCMM:      5,
		SFM:        656, // ~200 m/min
		MMPT:       0.05,
		Kc:         800,
	}
}

func TestCalculate_SFMConversion(t *testing.T) {
	res, err := Calculate(baseRequest())
	require.NoError(t, err)
	assert.InDelta(t, 656*0.3048, res.SMM, 1e-9)
	assert.Greater(t, res.RPM, 0.0)
}

func TestCalculate_SMMWinsOverSFM(t *testing.T) {
	req := baseRequest()
	req.SMM = 100
	res, err := Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.SMM)
}

func TestCalculate_MaterialFillsMissingValues(t *testing.T) {
	req := baseRequest()
	req.SFM = 0
	req.MMPT = 0
	req.Kc = 0
	req.MaterialType = "aluminum_6061"

	res, err := Calculate(req)
	require.NoError(t, err)
	assert.Equal(t, 800.0, res.Kc)
	assert.Equal(t, 0.08, res.MMPT)
	assert.InDelta(t, 1200*0.3048, res.SMM, 1e-9)
}

func TestCalculate_HSMBoostsSurfaceSpeed(t *testing.T) {
	req := baseRequest()
	req.MaterialType = "aluminum_6061"
	plain, err := Calculate(req)
	require.NoError(t, err)

	req.HSMEnabled = true
	boosted, err := Calculate(req)
	require.NoError(t, err)
	assert.InDelta(t, plain.SMM*1.25, boosted.SMM, 1e-9)
	assert.Greater(t, boosted.RPM, plain.RPM)
}

func TestCalculate_ClassifiesAgainstMachineLimits(t *testing.T) {
	req := baseRequest()
	req.Limits = MachineLimits{MinRPM: 1000, PreferredRPM: 6000, MaxRPM: 20000}

	res, err := Calculate(req)
	require.NoError(t, err)
	// rpm is ~6366, within 10% of the preferred 6000
	assert.Equal(t, StatusGood, res.RPMStatus)
	assert.Contains(t, res.RPMMessage, "near preferred")
}

func TestCalculate_SpindleCapacityWarning(t *testing.T) {
	req := baseRequest()
	req.DOCMM = 10
	req.WOCMM = 10
	req.Kc = 2600
	req.Limits = MachineLimits{MinRPM: 100, PreferredRPM: 6000, MaxRPM: 20000, SpindlePowerKW: 0.1}

	res, err := Calculate(req)
	require.NoError(t, err)
	assert.True(t, containsSubstring(res.Warnings, "spindle capacity"), "%v", res.Warnings)
}

func TestCalculate_ValidatorWarningsAppended(t *testing.T) {
	req := baseRequest()
	req.WOCMM = 9.8 // near full slot

	res, err := Calculate(req)
	require.NoError(t, err)
	assert.True(t, containsSubstring(res.Warnings, "Full slot"), "%v", res.Warnings)
}

func TestCalcHandler(t *testing.T) {
	h := &Handler{}

	body, err := json.Marshal(baseRequest())
	require.NoError(t, err)
	r := httptest.NewRequest("POST", "/tools/milling/calc", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Calc(w, r)
	require.Equal(t, 200, w.Code)

	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Greater(t, res.RPM, 0.0)
}

func TestCalcHandler_BadInput(t *testing.T) {
	h := &Handler{}

	r := httptest.NewRequest("POST", "/tools/milling/calc", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	h.Calc(w, r)
	assert.Equal(t, 400, w.Code)

	req := baseRequest()
	req.DiameterMM = 0
	body, _ := json.Marshal(req)
	r = httptest.NewRequest("POST", "/tools/milling/calc", bytes.NewReader(body))
	w = httptest.NewRecorder()
	h.Calc(w, r)
	assert.Equal(t, 400, w.Code)

	req = baseRequest()
	req.RigidityLevel = "bench_vise"
	body, _ = json.Marshal(req)
	r = httptest.NewRequest("POST", "/tools/milling/calc", bytes.NewReader(body))
	w = httptest.NewRecorder()
	h.Calc(w, r)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "rigidity")
}
