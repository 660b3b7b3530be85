package milling

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInputs() FeedsAndSpeeds {
	return FeedsAndSpeeds{
		Diameter:     10,
		FluteNum:     2,
		DOC:          2,
		WOC:          5,
		SMM:          200,
		MMPT:         0.05,
		Kc:           800,
		ToolStickout: 15,
	}
}

func TestCompute_SpindleSpeedFormula(t *testing.T) {
	fs := baseInputs()
	_, err := fs.Compute()
	require.NoError(t, err)

	want := 200.0 * 1000 / (math.Pi * 10)
	assert.InEpsilon(t, want, fs.RPM, 1e-9)
}

func TestCompute_FeedIdentity(t *testing.T) {
	fs := baseInputs()
	_, err := fs.Compute()
	require.NoError(t, err)

	assert.Equal(t, fs.RPM*float64(fs.FluteNum)*fs.EffectiveMMPT, fs.Feed)
}

func TestCompute_SecondaryOutputs(t *testing.T) {
	fs := baseInputs()
	_, err := fs.Compute()
	require.NoError(t, err)

	assert.InEpsilon(t, fs.DOC*fs.WOC*fs.Feed/1000, fs.MRR, 1e-12)
	assert.InEpsilon(t, fs.MRR*fs.Kc/60000, fs.PowerKW, 1e-12)
	assert.InEpsilon(t, fs.PowerKW*9549/fs.RPM, fs.TorqueNM, 1e-12)
	assert.Greater(t, fs.CuttingForceN, 0.0)
	assert.Greater(t, fs.DeflectionMM, 0.0)
}

func TestCompute_ChipThinningMatrix(t *testing.T) {
	tests := []struct {
		name        string
		woc         float64
		hsm         bool
		thinning    bool
		compensated bool
	}{
		{"both flags, low engagement", 2, true, true, true},
		{"thinning without hsm", 2, false, true, false},
		{"hsm without thinning", 2, true, false, false},
		{"no flags", 2, false, false, false},
		{"both flags, half engagement", 5, true, true, false},
		{"both flags, full slot", 10, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := baseInputs()
			fs.WOC = tt.woc
			fs.HSMEnabled = tt.hsm
			fs.ChipThinningEnabled = tt.thinning

			warnings, err := fs.Compute()
			require.NoError(t, err)

			if tt.compensated {
				assert.Greater(t, fs.EffectiveMMPT, fs.MMPT, "commanded feed per tooth should increase")
				assert.Greater(t, fs.ThinningFactor, 1.0)
			} else {
				assert.Equal(t, fs.MMPT, fs.EffectiveMMPT, "no silent compensation")
				assert.Equal(t, 1.0, fs.ThinningFactor)
			}
			if tt.woc/fs.Diameter < 0.5 && !tt.compensated {
				assert.Contains(t, warnings[0], "thin chips")
			}
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	fs := baseInputs()
	fs.WOC = 2
	fs.ChipThinningEnabled = true

	first, err := fs.Compute()
	require.NoError(t, err)
	firstRPM, firstFeed := fs.RPM, fs.Feed

	second, err := fs.Compute()
	require.NoError(t, err)

	assert.Equal(t, firstRPM, fs.RPM)
	assert.Equal(t, firstFeed, fs.Feed)
	assert.Equal(t, first, second, "warnings must not accumulate across calls")
}

func TestCompute_InputDoesNotMutate(t *testing.T) {
	fs := baseInputs()
	fs.WOC = 2
	fs.HSMEnabled = true
	fs.ChipThinningEnabled = true

	_, err := fs.Compute()
	require.NoError(t, err)

	assert.Equal(t, 0.05, fs.MMPT, "compensation must not write back into the input")
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FeedsAndSpeeds)
		field  string
	}{
		{"zero diameter", func(fs *FeedsAndSpeeds) { fs.Diameter = 0 }, "diameter"},
		{"negative diameter", func(fs *FeedsAndSpeeds) { fs.Diameter = -5 }, "diameter"},
		{"zero flutes", func(fs *FeedsAndSpeeds) { fs.FluteNum = 0 }, "flute_num"},
		{"zero smm", func(fs *FeedsAndSpeeds) { fs.SMM = 0 }, "smm"},
		{"zero mmpt", func(fs *FeedsAndSpeeds) { fs.MMPT = 0 }, "mmpt"},
		{"zero kc", func(fs *FeedsAndSpeeds) { fs.Kc = 0 }, "kc"},
		{"negative doc", func(fs *FeedsAndSpeeds) { fs.DOC = -1 }, "doc"},
		{"nan smm", func(fs *FeedsAndSpeeds) { fs.SMM = math.NaN() }, "smm"},
		{"inf diameter", func(fs *FeedsAndSpeeds) { fs.Diameter = math.Inf(1) }, "diameter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := baseInputs()
			tt.mutate(&fs)

			_, err := fs.Compute()
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.Zero(t, fs.RPM, "fatal errors must not produce partial results")
			assert.Zero(t, fs.Feed)
		})
	}
}

func TestCompute_WOCBeyondDiameterIsGeometryError(t *testing.T) {
	fs := baseInputs()
	fs.WOC = 12

	_, err := fs.Compute()
	var geomErr *GeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Zero(t, fs.RPM, "never clamps, never computes")
}

func TestCompute_UnknownRigidityIsConfigError(t *testing.T) {
	fs := baseInputs()
	fs.RigidityLevel = "granite_monolith"

	_, err := fs.Compute()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "granite_monolith", cfgErr.Key)
	assert.Greater(t, fs.RPM, 0.0, "outputs are still computed, only the advisory step is skipped")
	assert.Greater(t, fs.Feed, 0.0)
}

func TestCompute_UnknownMaterialIsIgnored(t *testing.T) {
	fs := baseInputs()
	fs.MaterialType = "unobtanium"

	_, err := fs.Compute()
	assert.NoError(t, err, "a material miss falls back to the manual values")
}

func TestCompute_RigidityWarnings(t *testing.T) {
	fs := baseInputs()
	fs.RigidityLevel = "router"
	fs.DOC = 8 // router permits 0.5 * diameter

	warnings, err := fs.Compute()
	require.NoError(t, err)

	assert.True(t, containsSubstring(warnings, "below the recommended minimum"), "RPM 6366 is under the router floor of 8000: %v", warnings)
	assert.True(t, containsSubstring(warnings, "Depth of cut"), "%v", warnings)
}

func TestCompute_RigidityNeverClamps(t *testing.T) {
	strict := baseInputs()
	strict.RigidityLevel = "router"
	loose := baseInputs()
	loose.RigidityLevel = "vmc_industrial"

	_, err := strict.Compute()
	require.NoError(t, err)
	_, err = loose.Compute()
	require.NoError(t, err)

	assert.Equal(t, loose.RPM, strict.RPM)
	assert.Equal(t, loose.Feed, strict.Feed)
}

func TestCompute_SteelOnRouterWarnings(t *testing.T) {
	fs := baseInputs()
	fs.RigidityLevel = "router"
	fs.MaterialType = "steel_1018"
	fs.SMM = 30.48 // 100 SFM, above the router's 60 SFM steel limit

	warnings, err := fs.Compute()
	require.NoError(t, err)

	assert.True(t, containsSubstring(warnings, "struggle with steel"), "%v", warnings)
	assert.True(t, containsSubstring(warnings, "steel capability"), "%v", warnings)
}

func TestCompute_MaterialEnvelopeWarnings(t *testing.T) {
	fs := baseInputs()
	fs.MaterialType = "aluminum_6061"
	fs.SMM = 500 // recommended is ~366 m/min

	warnings, err := fs.Compute()
	require.NoError(t, err)
	assert.True(t, containsSubstring(warnings, "above the recommended range"), "%v", warnings)

	fs.SMM = 100 // well under half the recommendation
	warnings, err = fs.Compute()
	require.NoError(t, err)
	assert.True(t, containsSubstring(warnings, "below the recommended range"), "%v", warnings)
}

func TestCompute_DeflectionWarning(t *testing.T) {
	fs := baseInputs()
	fs.Diameter = 4
	fs.WOC = 2
	fs.DOC = 4
	fs.Kc = 2000
	fs.ToolStickout = 50

	warnings, err := fs.Compute()
	require.NoError(t, err)
	assert.True(t, containsSubstring(warnings, "deflection"), "long skinny tool should warn: %v", warnings)
}

func TestCompute_RigidityChecksUseEffectiveChipLoad(t *testing.T) {
	fs := baseInputs()
	fs.MaterialType = "aluminum_6061"
	fs.MMPT = 0.05
	fs.RigidityLevel = "diy_medium"
	fs.WOC = 1
	fs.HSMEnabled = true
	fs.ChipThinningEnabled = true

	warnings, err := fs.Compute()
	require.NoError(t, err)

	// Nominal 0.05mm is under the 0.8 * 0.08mm limit, but thinning
	// compensation at 10% engagement commands about 0.083mm.
	assert.Greater(t, fs.EffectiveMMPT, 0.064)
	assert.True(t, containsSubstring(warnings, "exceeds the"), "commanded chip load is what the machine sees: %v", warnings)
}

func TestCompute_HobbyChipLoadTiers(t *testing.T) {
	aggressive := baseInputs()
	aggressive.RigidityLevel = "router"
	aggressive.MMPT = 0.15 // ~0.006"

	warnings, err := aggressive.Compute()
	require.NoError(t, err)
	assert.True(t, containsSubstring(warnings, "aggressive for hobby machines"), "%v", warnings)

	moderate := baseInputs()
	moderate.RigidityLevel = "router"
	moderate.MMPT = 0.09 // ~0.0035"

	warnings, err = moderate.Compute()
	require.NoError(t, err)
	assert.True(t, containsSubstring(warnings, "moderately aggressive"), "%v", warnings)

	industrial := baseInputs()
	industrial.RigidityLevel = "vmc_industrial"
	industrial.MMPT = 0.15

	warnings, err = industrial.Compute()
	require.NoError(t, err)
	assert.False(t, containsSubstring(warnings, "hobby machines"), "industrial machines skip the hobby tiers: %v", warnings)
}

func TestErrorsAreDistinguishable(t *testing.T) {
	var err error = &InputError{Field: "kc"}
	assert.EqualError(t, err, "invalid input: kc")

	err = &GeometryError{Reason: "width of cut exceeds tool diameter"}
	assert.EqualError(t, err, "invalid geometry: width of cut exceeds tool diameter")

	err = &ConfigError{Key: "router"}
	var inputErr *InputError
	assert.False(t, errors.As(err, &inputErr))
}

func containsSubstring(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}
