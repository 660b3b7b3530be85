// Package milling computes recommended CNC milling cutting parameters
// (spindle speed, feed rate, removal rate, power and torque) from tool,
// material and machine inputs, and flags unsafe or suboptimal
// combinations. Formulas follow the usual published machining
// relations; material and rigidity data come from internal/tables.
package milling

import (
	"fmt"
	"math"
	"strings"

	"Machinist/internal/tables"
	"Machinist/internal/units"
)

// FeedsAndSpeeds holds the inputs and computed outputs of one milling
// parameter calculation. The caller sets the input fields, calls
// Compute and reads the outputs; Compute never mutates the inputs and
// rebuilds every output and warning from scratch on each call.
type FeedsAndSpeeds struct {
	// Tool
	Diameter     float64 `json:"diameter"`      // mm
	FluteNum     int     `json:"flute_num"`     // cutting edges
	ToolStickout float64 `json:"tool_stickout"` // unsupported length, mm

	// Cutting
	DOC  float64 `json:"doc"`  // axial depth of cut, mm
	WOC  float64 `json:"woc"`  // radial width of cut, mm
	SMM  float64 `json:"smm"`  // surface speed, m/min
	MMPT float64 `json:"mmpt"` // feed per tooth, mm
	Kc   float64 `json:"kc"`   // specific cutting force, N/mm2

	// Modes
	HSMEnabled          bool `json:"hsm_enabled"`
	ChipThinningEnabled bool `json:"chip_thinning_enabled"`

	// Machine and material context
	RigidityLevel string `json:"rigidity_level"`
	MaterialType  string `json:"material_type"`

	// Lookup tables; nil means the built-in tables.
	Materials  tables.MaterialProvider `json:"-"`
	Rigidities tables.RigidityProvider `json:"-"`

	// Outputs
	RPM            float64  `json:"rpm"`
	Feed           float64  `json:"feed"`            // mm/min
	EffectiveMMPT  float64  `json:"effective_mmpt"`  // mm, after thinning compensation
	ThinningFactor float64  `json:"thinning_factor"` // 1.0 when no compensation
	MRR            float64  `json:"mrr"`             // cm3/min
	PowerKW        float64  `json:"power_kw"`
	TorqueNM       float64  `json:"torque_nm"`
	CuttingForceN  float64  `json:"cutting_force_n"`
	DeflectionMM   float64  `json:"deflection_mm"`
	IsMicroTool    bool     `json:"is_micro_tool"`
	Warnings       []string `json:"warnings"`
}

// Conversion factor from cm3/min * N/mm2 to kW.
const powerFactor = 60000

// Torque constant: T [Nm] = P [kW] * 9549 / rpm.
const torqueFactor = 9549

// Compute derives all outputs from the current inputs and returns the
// advisory warnings. Invalid inputs return an *InputError or
// *GeometryError and leave the outputs zeroed. An unknown rigidity
// level returns a *ConfigError, but the outputs and the remaining
// warnings are still fully computed; only the rigidity advisory step is
// skipped.
func (fs *FeedsAndSpeeds) Compute() ([]string, error) {
	fs.reset()
	if err := fs.checkInputs(); err != nil {
		return nil, err
	}

	fs.RPM = fs.SMM * 1000 / (math.Pi * fs.Diameter)

	if IsMicroTool(fs.Diameter) {
		fs.computeMicro()
	} else {
		fs.computeStandard()
	}

	material, haveMaterial := fs.lookupMaterial()
	if haveMaterial {
		fs.materialWarnings(material)
	}

	var cfgErr error
	if fs.RigidityLevel != "" {
		rigidity, ok := fs.rigidities().Rigidity(fs.RigidityLevel)
		if !ok {
			cfgErr = &ConfigError{Key: fs.RigidityLevel}
		} else {
			fs.rigidityWarnings(rigidity, material, haveMaterial)
		}
	}

	return fs.Warnings, cfgErr
}

// computeStandard is the plain geometry path for tools of 3mm and up,
// where deflection is small enough to report rather than iterate on.
func (fs *FeedsAndSpeeds) computeStandard() {
	// Chip thinning compensation needs an HSM toolpath to be safe; with
	// a conventional path a thin chip is only worth a warning.
	engagement := fs.WOC / fs.Diameter
	fs.EffectiveMMPT = fs.MMPT
	fs.ThinningFactor = 1.0
	if engagement < 0.5 {
		if fs.ChipThinningEnabled && fs.HSMEnabled {
			fs.ThinningFactor = ThinningFactor(fs.WOC, fs.Diameter)
			fs.EffectiveMMPT = fs.MMPT * fs.ThinningFactor
		} else {
			fs.warnf("Radial engagement below 50%% produces thin chips - enable HSM chip thinning or increase chip load")
		}
	}

	fs.Feed = fs.RPM * float64(fs.FluteNum) * fs.EffectiveMMPT
	fs.MRR = fs.DOC * fs.WOC * fs.Feed / 1000
	fs.PowerKW = fs.MRR * fs.Kc / powerFactor
	fs.TorqueNM = fs.PowerKW * torqueFactor / fs.RPM

	fs.CuttingForceN = CuttingForce(fs.Kc, fs.DOC, fs.EffectiveMMPT)
	fs.DeflectionMM = Deflection(fs.CuttingForceN, fs.Diameter, fs.ToolStickout)
	deflectionPct := fs.DeflectionMM / fs.Diameter * 100
	if deflectionPct > 5 {
		fs.warnf("High deflection: %.4fmm (%.1f%% of diameter)", fs.DeflectionMM, deflectionPct)
	} else if deflectionPct > 1 {
		fs.warnf("Monitor surface finish - deflection may affect quality")
	}
}

func (fs *FeedsAndSpeeds) reset() {
	fs.RPM = 0
	fs.Feed = 0
	fs.EffectiveMMPT = 0
	fs.ThinningFactor = 1.0
	fs.MRR = 0
	fs.PowerKW = 0
	fs.TorqueNM = 0
	fs.CuttingForceN = 0
	fs.DeflectionMM = 0
	fs.IsMicroTool = false
	fs.Warnings = nil
}

func (fs *FeedsAndSpeeds) checkInputs() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"diameter", fs.Diameter},
		{"smm", fs.SMM},
		{"mmpt", fs.MMPT},
		{"kc", fs.Kc},
	}
	for _, p := range positives {
		if !finite(p.value) || p.value <= 0 {
			return &InputError{Field: p.name}
		}
	}
	nonNegatives := []struct {
		name  string
		value float64
	}{
		{"doc", fs.DOC},
		{"woc", fs.WOC},
		{"tool_stickout", fs.ToolStickout},
	}
	for _, p := range nonNegatives {
		if !finite(p.value) || p.value < 0 {
			return &InputError{Field: p.name}
		}
	}
	if fs.FluteNum < 1 {
		return &InputError{Field: "flute_num"}
	}
	if fs.WOC > fs.Diameter {
		return &GeometryError{Reason: "width of cut exceeds tool diameter"}
	}
	return nil
}

func (fs *FeedsAndSpeeds) lookupMaterial() (tables.Material, bool) {
	if fs.MaterialType == "" {
		return tables.Material{}, false
	}
	return fs.materials().Material(fs.MaterialType)
}

// materialWarnings checks the commanded speed and chip load against the
// material's recommended envelope.
func (fs *FeedsAndSpeeds) materialWarnings(m tables.Material) {
	if fs.SMM > m.SMM*1.25 {
		fs.warnf("Surface speed %.0f m/min is above the recommended range for %s (%.0f m/min)", fs.SMM, m.Name, m.SMM)
	} else if fs.SMM < m.SMM*0.5 {
		fs.warnf("Surface speed %.0f m/min is well below the recommended range for %s - expect rubbing and poor finish", fs.SMM, m.Name)
	}
	if fs.MMPT > m.ChipLoad*1.5 {
		fs.warnf("Chip load %.3fmm is above the recommended %.3fmm for %s", fs.MMPT, m.ChipLoad, m.Name)
	}
}

// rigidityWarnings compares the unscaled cut against what the machine
// class permits. The rigidity factor never clamps outputs, it only
// produces advice. Chip load checks use the effective per-tooth feed,
// which is what the machine actually commands once thinning
// compensation has run.
func (fs *FeedsAndSpeeds) rigidityWarnings(r tables.Rigidity, m tables.Material, haveMaterial bool) {
	if fs.RPM < r.MinRPM {
		fs.warnf("RPM %.0f is below the recommended minimum for %s (%.0f)", fs.RPM, r.Name, r.MinRPM)
	}
	if fs.DOC > r.Factor*fs.Diameter {
		fs.warnf("Depth of cut %.2fmm exceeds what %s permits (%.2fmm)", fs.DOC, r.Name, r.Factor*fs.Diameter)
	}
	if fs.WOC > r.Factor*fs.Diameter {
		fs.warnf("Width of cut %.2fmm exceeds what %s permits (%.2fmm)", fs.WOC, r.Name, r.Factor*fs.Diameter)
	}
	if haveMaterial && fs.EffectiveMMPT > r.Factor*m.ChipLoad {
		fs.warnf("Chip load %.3fmm exceeds the %s limit of %.3fmm", fs.EffectiveMMPT, r.Name, r.Factor*m.ChipLoad)
	}
	if r.Factor < 1 {
		if fs.EffectiveMMPT > 0.2 {
			fs.warnf("High chip load may cause chatter on %s - reduce if vibration occurs", r.Name)
		}
		chiploadIn := fs.EffectiveMMPT / units.InchToMM
		if chiploadIn > 0.004 {
			fs.warnf("Chip load %.4f\" is aggressive for hobby machines - consider reducing to under 0.003\"", chiploadIn)
		} else if chiploadIn > 0.003 {
			fs.warnf("Chip load %.4f\" is moderately aggressive - watch for tool deflection", chiploadIn)
		}
	}
	if fs.IsMicroTool {
		fs.warnf("Micro tool mode (%.1fmm) - use stub-length tools, check spindle runout (<0.0003\"), keep depth of cut under 25%% of diameter", fs.Diameter)
		if fs.Diameter < 1.5 {
			fs.warnf("Consider air or mist cooling for chip evacuation")
		}
		if r.Factor < 1 {
			fs.warnf("Monitor for tool deflection - reduce feed if finish degrades")
		}
		if strings.Contains(fs.MaterialType, "aluminum") {
			fs.warnf("Ensure adequate coolant to prevent chip welding")
		}
	}
	if strings.Contains(fs.MaterialType, "steel") {
		sfm := units.SFM(fs.SMM)
		if fs.RigidityLevel == tables.RigidityRouter {
			fs.warnf("Router machines may struggle with steel - consider aluminum or brass alternatives")
			if sfm < 80 {
				fs.warnf("Low surface speed for steel on a router - expect poor surface finish")
			}
		}
		if sfm > r.SteelSFMLimit {
			fs.warnf("Surface speed %.0f SFM exceeds the steel capability of %s (%.0f SFM)", sfm, r.Name, r.SteelSFMLimit)
		}
	}
}

func (fs *FeedsAndSpeeds) warnf(format string, args ...any) {
	fs.Warnings = append(fs.Warnings, fmt.Sprintf(format, args...))
}

func (fs *FeedsAndSpeeds) materials() tables.MaterialProvider {
	if fs.Materials != nil {
		return fs.Materials
	}
	return tables.Materials()
}

func (fs *FeedsAndSpeeds) rigidities() tables.RigidityProvider {
	if fs.Rigidities != nil {
		return fs.Rigidities
	}
	return tables.Rigidities()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
