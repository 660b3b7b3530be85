package milling

import "strings"

// Surface speed multipliers by tool coating, relative to an uncoated
// carbide tool. Harder coatings run hotter edges without wear.
var coatingMultipliers = map[string]float64{
	"uncoated": 1.0,
	"tin":      1.2,
	"ticn":     1.3,
	"tialn":    1.4,
	"alcrn":    1.5,
	"diamond":  2.0,
}

// AdjustForCoating scales a base surface speed for the tool coating.
// Empty or unknown coatings leave the speed unchanged.
func AdjustForCoating(smm float64, coating string) float64 {
	mult, ok := coatingMultipliers[strings.ToLower(coating)]
	if !ok {
		return smm
	}
	return smm * mult
}
