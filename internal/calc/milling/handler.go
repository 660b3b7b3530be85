package milling

import (
	"encoding/json"
	"errors"
	"net/http"

	"Machinist/internal/tables"
	"Machinist/internal/units"
)

// MachineLimits are the caller-supplied spindle bounds used for RPM
// classification and the power capacity warning.
type MachineLimits struct {
	MinRPM         float64 `json:"min_rpm"`
	PreferredRPM   float64 `json:"preferred_rpm"`
	MaxRPM         float64 `json:"max_rpm"`
	SpindlePowerKW float64 `json:"spindle_power_kw"`
}

// Request carries one calculation in caller units. Surface speed may be
// given as SFM or SMM; SMM wins when both are set. A known material
// fills in kc, surface speed and chip load for any of them left at
// zero. A coating, if named, scales the surface speed before the HSM
// boost.
type Request struct {
	DiameterMM          float64       `json:"diameter_mm"`
	FluteNum            int           `json:"flute_num"`
	DOCMM               float64       `json:"doc_mm"`
	WOCMM               float64       `json:"woc_mm"`
	SFM                 float64       `json:"sfm"`
	SMM                 float64       `json:"smm"`
	MMPT                float64       `json:"mmpt"`
	Kc                  float64       `json:"kc"`
	Coating             string        `json:"coating"`
	HSMEnabled          bool          `json:"hsm_enabled"`
	ChipThinningEnabled bool          `json:"chip_thinning_enabled"`
	ToolStickoutMM      float64       `json:"tool_stickout_mm"`
	RigidityLevel       string        `json:"rigidity_level"`
	MaterialType        string        `json:"material_type"`
	Limits              MachineLimits `json:"machine_limits"`
}

// Result is the full advisory output for one calculation.
type Result struct {
	FeedsAndSpeeds
	RPMStatus    Status `json:"rpm_status"`
	RPMMessage   string `json:"rpm_message"`
	RigidityName string `json:"rigidity_name,omitempty"`
}

type Handler struct{}

// Calculate runs one request through the engine, the independent
// validator and the RPM classifier, and concatenates their warnings in
// that order, followed by the spindle capacity check.
func Calculate(req Request) (Result, error) {
	smm := req.SMM
	if smm == 0 {
		smm = units.SMM(req.SFM)
	}
	mmpt := req.MMPT
	kc := req.Kc
	if m, ok := tables.Materials().Material(req.MaterialType); ok {
		if kc == 0 {
			kc = m.Kc
		}
		if smm == 0 {
			smm = m.SMM
		}
		if mmpt == 0 {
			mmpt = m.ChipLoad
		}
	}
	smm = AdjustForCoating(smm, req.Coating)
	smm = BoostSurfaceSpeed(smm, req.MaterialType, req.HSMEnabled)

	stickout := req.ToolStickoutMM
	if stickout == 0 {
		stickout = 15
	}

	fs := FeedsAndSpeeds{
		Diameter:            req.DiameterMM,
		FluteNum:            req.FluteNum,
		DOC:                 req.DOCMM,
		WOC:                 req.WOCMM,
		SMM:                 smm,
		MMPT:                mmpt,
		Kc:                  kc,
		HSMEnabled:          req.HSMEnabled,
		ChipThinningEnabled: req.ChipThinningEnabled,
		ToolStickout:        stickout,
		RigidityLevel:       req.RigidityLevel,
		MaterialType:        req.MaterialType,
	}

	computed, err := fs.Compute()
	if err != nil {
		return Result{}, err
	}

	validated, err := Validate(fs.RPM, fs.Feed, fs.DOC, fs.WOC, fs.Diameter)
	if err != nil {
		return Result{}, err
	}
	all := append(computed, validated...)

	res := Result{FeedsAndSpeeds: fs}
	if req.Limits.MaxRPM > 0 {
		res.RPMStatus, res.RPMMessage = ClassifyRPM(fs.RPM, req.Limits.MinRPM, req.Limits.PreferredRPM, req.Limits.MaxRPM)
	}
	if req.Limits.SpindlePowerKW > 0 && fs.PowerKW > req.Limits.SpindlePowerKW {
		all = append(all, "Required power exceeds spindle capacity - reduce depth or width of cut")
	}
	res.Warnings = all

	if rig, ok := tables.Rigidities().Rigidity(req.RigidityLevel); ok {
		res.RigidityName = rig.Name
	}
	return res, nil
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(req)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			http.Error(w, "Unknown rigidity level", http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Materials serves the material table so clients can populate their
// pickers from the same data the calculator uses.
func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key string `json:"key"`
		tables.Material
	}
	var out []entry
	for _, key := range tables.MaterialKeys() {
		m, _ := tables.Materials().Material(key)
		out = append(out, entry{Key: key, Material: m})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
