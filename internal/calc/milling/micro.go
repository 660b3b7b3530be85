package milling

import (
	"math"
	"strings"
)

// Tools under 3mm behave differently enough to need their own model:
// deflection eats a meaningful share of the commanded chip load, so the
// chip load has to be derived from the diameter and then corrected for
// deflection until it converges.
const (
	microToolThreshold   = 3.0   // mm, below this the micro model runs
	ultraMicroThreshold  = 1.0   // mm
	minimumChipThickness = 0.001 // mm, floor for the converged chip load
)

const (
	microMaxIterations    = 10
	microConvergenceTolMM = 0.001
)

// IsMicroTool reports whether a diameter falls in the micro range.
func IsMicroTool(diameter float64) bool {
	return diameter < microToolThreshold
}

// microChipLoad picks a chip load for a micro tool as a percentage of
// diameter. Ultra-micro tools get a fixed minimum to keep them from
// snapping; the percentage depends on the material family and the flute
// count stays far more conservative than for standard tools.
func microChipLoad(diameter float64, materialType string, flutes int) float64 {
	var base float64
	if diameter < ultraMicroThreshold {
		base = 0.005
	} else {
		pct := 0.012
		switch {
		case strings.Contains(materialType, "aluminum"):
			pct = 0.015
		case strings.Contains(materialType, "steel"), strings.Contains(materialType, "stainless"):
			pct = 0.01
		}
		base = diameter * pct
	}
	switch {
	case flutes == 1:
		base *= 1.1
	case flutes >= 3:
		base *= 0.8
	}
	return base
}

// microSizeEffect scales the cutting force upward for small tools, where
// the edge radius is large relative to the chip and specific forces
// climb.
func microSizeEffect(diameter float64) float64 {
	switch {
	case diameter < 1.0:
		return 1.5
	case diameter < 2.0:
		return 1.3
	default:
		return 1.1
	}
}

// computeMicro runs the micro model: chip load from diameter, then a
// force/deflection loop. Deflection pushes the tool off the cut and
// thins the chip, which lowers the force, which lowers the deflection;
// iterate until the deflection settles.
func (fs *FeedsAndSpeeds) computeMicro() {
	fs.IsMicroTool = true

	target := microChipLoad(fs.Diameter, fs.MaterialType, fs.FluteNum)

	engagement := fs.WOC / fs.Diameter
	fs.ThinningFactor = 1.0
	if engagement < 0.5 {
		if fs.ChipThinningEnabled && fs.HSMEnabled {
			fs.ThinningFactor = ThinningFactor(fs.WOC, fs.Diameter)
			target *= fs.ThinningFactor
		} else {
			fs.warnf("Radial engagement below 50%% produces thin chips - enable HSM chip thinning or increase chip load")
		}
	}

	sizeEffect := microSizeEffect(fs.Diameter)
	chipload := target
	prevDeflection := 0.0
	converged := false
	for i := 0; i < microMaxIterations; i++ {
		force := fs.Kc * chipload * fs.DOC * sizeEffect
		deflection := Deflection(force, fs.Diameter, fs.ToolStickout)
		fs.CuttingForceN = force
		fs.DeflectionMM = deflection
		if math.Abs(deflection-prevDeflection) < microConvergenceTolMM {
			converged = true
			break
		}
		chipload = math.Max(target-deflection, minimumChipThickness)
		prevDeflection = deflection
	}

	fs.EffectiveMMPT = chipload
	fs.Feed = fs.RPM * float64(fs.FluteNum) * fs.EffectiveMMPT
	fs.MRR = fs.DOC * fs.WOC * fs.Feed / 1000
	fs.PowerKW = fs.MRR * fs.Kc / powerFactor
	fs.TorqueNM = fs.PowerKW * torqueFactor / fs.RPM

	fs.microWarnings(converged)
}

func (fs *FeedsAndSpeeds) microWarnings(converged bool) {
	deflectionPct := fs.DeflectionMM / fs.Diameter * 100
	if deflectionPct > 5 {
		fs.warnf("High deflection: %.4fmm (%.1f%% of diameter)", fs.DeflectionMM, deflectionPct)
	} else if deflectionPct > 2 {
		fs.warnf("Moderate deflection: %.4fmm - monitor surface finish", fs.DeflectionMM)
	}
	if fs.CuttingForceN > 50 {
		fs.warnf("High cutting force: %.1fN - risk of tool breakage", fs.CuttingForceN)
	}
	if !converged {
		fs.warnf("Deflection loop did not fully converge - results may be approximate")
	}
	if fs.Diameter < ultraMicroThreshold {
		fs.warnf("Ultra-micro tool (<1mm) - use minimal stickout, spindle runout under 0.0001\" is essential")
	}
	if strings.Contains(fs.MaterialType, "steel") && fs.Diameter < 2.0 {
		fs.warnf("Micro steel cutting - consider a coated tool for tool life")
	}
}
