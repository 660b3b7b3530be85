package milling

// Validate cross-checks computed parameters against sanity bounds,
// independently of how the engine derived them. Any finite input is
// checkable and produces warnings rather than errors; only non-finite
// values are rejected.
func Validate(rpm, feed, doc, woc, diameter float64) ([]string, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"rpm", rpm}, {"feed", feed}, {"doc", doc}, {"woc", woc}, {"diameter", diameter},
	} {
		if !finite(p.value) {
			return nil, &InputError{Field: p.name}
		}
	}

	var warnings []string
	warn := func(msg string) { warnings = append(warnings, msg) }

	if rpm <= 0 {
		warn("RPM must be greater than 0")
	} else if rpm > 50000 {
		warn("RPM extremely high (>50,000) - check calculation")
	}

	if feed <= 0 {
		warn("Feed rate must be greater than 0")
	} else if feed > 10000 {
		warn("Feed rate extremely high (>10,000 mm/min)")
	}

	if doc < 0 {
		warn("Depth of cut cannot be negative")
	} else if diameter > 0 && doc > 2*diameter {
		warn("Depth of cut over twice the tool diameter - high deflection risk")
	} else if diameter > 0 && doc > diameter {
		warn("Depth of cut greater than tool diameter - very aggressive")
	}

	if woc < 0 {
		warn("Width of cut cannot be negative")
	} else if diameter > 0 {
		if woc > diameter {
			warn("Width of cut greater than tool diameter")
		} else if woc >= 0.95*diameter {
			warn("Full slot engagement - reduce feed and use good chip evacuation")
		}
	}

	// Extremely light cuts rub instead of cutting.
	if doc > 0 && woc > 0 && doc < 0.01 && woc < 0.01 {
		warn("Very light cut - may cause rubbing instead of cutting")
	} else if woc > 0 && diameter > 0 && woc < 0.02*diameter {
		warn("Near-zero radial engagement - chip thinning compensation strongly recommended")
	}

	return warnings, nil
}
