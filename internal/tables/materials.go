// Package tables provides the curated material and machine rigidity
// lookup data consumed by the milling calculator. The tables are plain
// keyed records behind small provider interfaces so the calculator can
// be tested against stubs.
package tables

import (
	"sort"

	"Machinist/internal/units"
)

// Material holds the machining properties for one workpiece material.
type Material struct {
	Name     string  `json:"name"`
	Kc       float64 `json:"kc"`        // specific cutting force (N/mm2)
	SFM      float64 `json:"sfm"`       // recommended surface speed (ft/min)
	SMM      float64 `json:"smm"`       // recommended surface speed (m/min)
	ChipLoad float64 `json:"chip_load"` // recommended feed per tooth (mm)
}

// MaterialProvider is the read-only lookup the calculator depends on.
// A miss is not an error: the caller's manual values are used instead.
type MaterialProvider interface {
	Material(key string) (Material, bool)
}

type materialTable map[string]Material

func (t materialTable) Material(key string) (Material, bool) {
	m, ok := t[key]
	return m, ok
}

func mat(name string, kc, sfm, chipLoad float64) Material {
	return Material{Name: name, Kc: kc, SFM: sfm, SMM: sfm * units.SFMToSMM, ChipLoad: chipLoad}
}

// Typical values from manufacturer catalogs (Sandvik, Harvey, Kennametal).
var materials = materialTable{
	"aluminum_6061":  mat("6061 Aluminum", 800, 1200, 0.08),
	"steel_1018":     mat("1018 Mild Steel", 2000, 100, 0.08),
	"stainless_304":  mat("304 Stainless", 2600, 75, 0.05),
	"cast_iron_grey": mat("Grey Cast Iron", 1350, 120, 0.08),
	"titanium_ti64":  mat("Ti-6Al-4V", 2550, 75, 0.04),
	"brass_360":      mat("360 Brass", 700, 600, 0.12),
	"copper_101":     mat("101 Copper", 600, 400, 0.10),
}

// Materials returns the built-in material table.
func Materials() MaterialProvider { return materials }

// MaterialKeys lists the known material identifiers, for API listings.
func MaterialKeys() []string {
	keys := make([]string, 0, len(materials))
	for k := range materials {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
