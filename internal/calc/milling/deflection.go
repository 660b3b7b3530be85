package milling

import "math"

// Young's modulus for solid carbide, Pa.
const carbideYoungsModulus = 600e9

// CuttingForce estimates the tangential cutting force in Newtons from
// the specific cutting force and the chip cross section (DOC x feed per
// tooth).
func CuttingForce(kc, doc, mmpt float64) float64 {
	return kc * doc * mmpt
}

// Deflection returns the tool tip deflection in mm for a cutting force
// applied at the end of an unsupported stickout, treating the tool as a
// cantilever beam: delta = F*L^3 / (3*E*I), I = pi*r^4/4.
func Deflection(forceN, diameter, stickout float64) float64 {
	if diameter <= 0 || stickout <= 0 {
		return 0
	}
	radiusM := diameter / 2 / 1000
	stickoutM := stickout / 1000
	inertia := math.Pi * math.Pow(radiusM, 4) / 4
	deflectionM := forceN * math.Pow(stickoutM, 3) / (3 * carbideYoungsModulus * inertia)
	return deflectionM * 1000
}
