package milling

import "fmt"

// InputError reports a numeric input that is zero, negative or not
// finite where a positive finite value is required.
type InputError struct {
	Field string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Field)
}

// GeometryError reports a violated geometric relationship, e.g. a width
// of cut wider than the tool.
type GeometryError struct {
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// ConfigError reports a missing external lookup key. The computation
// still completes with the manually supplied values; only the affected
// advisory step is skipped.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unknown configuration key: %s", e.Key)
}
