package milling

import (
	"math"
	"strings"
)

// maxThinningFactor caps the chip thinning compensation so a near-zero
// engagement cannot command an unbounded feed.
const maxThinningFactor = 2.5

// ThinningFactor returns the radial chip thinning factor for a given
// width of cut and tool diameter.
//
// RCTF = 1 / sqrt(1 - (1 - 2*ae/D)^2)
//
// 1.0 means no thinning; values above 1.0 are the feed multiplier needed
// to restore the nominal chip load. At or above 50% engagement there is
// no thinning.
func ThinningFactor(woc, diameter float64) float64 {
	if diameter <= 0 {
		return 1.0
	}
	ae := woc / diameter
	if ae >= 0.5 {
		return 1.0
	}
	if ae <= 0.01 {
		// Very small engagement, keep the denominator away from zero.
		d := 1 - (1-2*ae)*(1-2*ae)
		if d < 0.01 {
			d = 0.01
		}
		return math.Min(maxThinningFactor, 1.0/math.Sqrt(d))
	}
	inner := 1 - 2*ae
	denom := 1 - inner*inner
	if denom <= 0 {
		return maxThinningFactor
	}
	return math.Min(maxThinningFactor, 1.0/math.Sqrt(denom))
}

// HSM surface speed multipliers by material family. Low radial
// engagement keeps heat in the chip, so the edge tolerates more speed.
var hsmSpeedBoost = map[string]float64{
	"aluminum":  1.25,
	"steel":     1.15,
	"stainless": 1.10,
	"titanium":  1.05,
	"cast_iron": 1.20,
}

// BoostSurfaceSpeed applies the HSM speed increase for the given
// material key. Unknown materials get the conservative default of 15%.
func BoostSurfaceSpeed(smm float64, materialType string, hsmEnabled bool) float64 {
	if !hsmEnabled {
		return smm
	}
	for family, mult := range hsmSpeedBoost {
		if strings.Contains(materialType, family) {
			return smm * mult
		}
	}
	return smm * 1.15
}
