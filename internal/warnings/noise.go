package warnings

import (
	"fmt"
	"strings"
)

const (
	// NoiseModeDefault keeps all warnings.
	NoiseModeDefault = "default"
	// NoiseModeReduce hides suppressible non-critical warnings.
	NoiseModeReduce = "reduce"
)

// ValidNoiseMode reports whether mode is an accepted warnings.noise_mode value.
func ValidNoiseMode(mode string) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", NoiseModeDefault, NoiseModeReduce:
		return true
	}
	return false
}

// ApplyNoiseControl filters items according to mode.
// An unknown mode keeps every warning and appends a critical warning about the mode itself.
func ApplyNoiseControl(items []Warning, mode string) []Warning {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	switch normalized {
	case "", NoiseModeDefault:
		if len(items) == 0 {
			return nil
		}
		return append([]Warning(nil), items...)
	case NoiseModeReduce:
		filtered := make([]Warning, 0, len(items))
		for _, item := range items {
			if item.NoiseSuppressible && item.severityOrDefault() != SeverityCritical {
				continue
			}
			filtered = append(filtered, item)
		}
		return filtered
	}

	out := append([]Warning(nil), items...)
	return append(out, Warning{
		Code:     CodeNoiseModeInvalid,
		Subject:  "warnings.noise_mode",
		Message:  fmt.Sprintf("unknown noise mode %q (allowed: %s, %s)", mode, NoiseModeDefault, NoiseModeReduce),
		Fix:      "Set warnings.noise_mode to default or reduce.",
		Severity: SeverityCritical,
	})
}
