package tables

// Rigidity describes one machine stiffness class. Factor scales the
// cutting parameters a machine of this class can take relative to an
// industrial VMC; the calculator uses it for advisory checks only and
// never clamps outputs with it.
type Rigidity struct {
	Name          string  `json:"name"`
	Factor        float64 `json:"factor"`
	MinRPM        float64 `json:"min_rpm"`
	SteelSFMLimit float64 `json:"steel_sfm_limit"`
}

// RigidityProvider is the read-only rigidity lookup. A miss at compute
// time is a configuration error, not something to ignore.
type RigidityProvider interface {
	Rigidity(level string) (Rigidity, bool)
}

// Rigidity levels.
const (
	RigidityRouter     = "router"
	RigidityDIYMedium  = "diy_medium"
	RigidityIndustrial = "vmc_industrial"
)

type rigidityTable map[string]Rigidity

func (t rigidityTable) Rigidity(level string) (Rigidity, bool) {
	r, ok := t[level]
	return r, ok
}

var rigidities = rigidityTable{
	RigidityRouter:     {Name: "Router/Light Duty", Factor: 0.5, MinRPM: 8000, SteelSFMLimit: 60},
	RigidityDIYMedium:  {Name: "DIY/Medium Duty (PrintNC)", Factor: 0.8, MinRPM: 1000, SteelSFMLimit: 85},
	RigidityIndustrial: {Name: "VMC/Industrial", Factor: 1.0, MinRPM: 100, SteelSFMLimit: 150},
}

// Rigidities returns the built-in rigidity table.
func Rigidities() RigidityProvider { return rigidities }
