package milling

import "fmt"

// Status classifies a computed RPM against the machine limits.
type Status string

const (
	StatusDanger  Status = "danger"
	StatusWarning Status = "warning"
	StatusGood    Status = "good"
	StatusInfo    Status = "info"
)

// ClassifyRPM maps an RPM onto the machine's envelope. The branch order
// matters: the 10% band around the preferred RPM wins over the
// approaching-limit bands it can overlap with.
func ClassifyRPM(rpm, minRPM, preferredRPM, maxRPM float64) (Status, string) {
	if rpm < minRPM {
		return StatusDanger, fmt.Sprintf("below minimum (%.0f RPM)", minRPM)
	}
	if rpm > maxRPM {
		return StatusDanger, fmt.Sprintf("above maximum (%.0f RPM)", maxRPM)
	}
	tolerance := preferredRPM * 0.1
	if diff := rpm - preferredRPM; diff <= tolerance && diff >= -tolerance {
		return StatusGood, fmt.Sprintf("near preferred (%.0f RPM)", preferredRPM)
	}
	if rpm > maxRPM*0.9 {
		return StatusWarning, "approaching maximum"
	}
	if rpm < minRPM*1.1 {
		return StatusWarning, "near minimum"
	}
	return StatusInfo, "within safe range"
}
