// Package warnings models non-fatal findings reported while assembling a feed.
package warnings

import "fmt"

// Warning codes.
const (
	CodeComponentNoBuild          = "COMPONENT_NO_BUILD"
	CodeComponentNoPackage        = "COMPONENT_NO_PACKAGE"
	CodeComponentMultiplePackages = "COMPONENT_MULTIPLE_PACKAGES"
	CodeNoiseModeInvalid          = "WARNING_NOISE_MODE_INVALID"
)

// Severity labels whether a warning should be considered critical.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Warning represents a warning message.
type Warning struct {
	Code     string
	Subject  string
	Message  string
	Fix      string
	Details  []string
	Severity string
	// NoiseSuppressible marks warnings hidden when warnings.noise_mode is "reduce".
	NoiseSuppressible bool
}

func (w Warning) String() string {
	s := "WARNING " + w.Code + ": " + w.Message + "\n"
	s += fmt.Sprintf("  severity: %s\n", w.severityOrDefault())
	s += "  subject: " + w.Subject
	if w.Fix != "" {
		s += "\n  fix: " + w.Fix
	}
	for _, d := range w.Details {
		s += "\n  details: " + d
	}
	return s
}

func (w Warning) severityOrDefault() string {
	if w.Severity == "" {
		return SeverityWarning
	}
	return w.Severity
}
