package warnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarningString(t *testing.T) {
	w := Warning{
		Code:    CodeComponentNoPackage,
		Subject: "scope_custom_device",
		Message: "latest build has no installer package",
		Fix:     "Check the installer directory.",
		Details: []string{"/exports/scope_custom_device/export/release/1.0/b2/2019/installer"},
	}
	out := w.String()
	assert.Contains(t, out, "WARNING COMPONENT_NO_PACKAGE: latest build has no installer package")
	assert.Contains(t, out, "severity: warning")
	assert.Contains(t, out, "subject: scope_custom_device")
	assert.Contains(t, out, "fix: Check the installer directory.")
	assert.Contains(t, out, "details: /exports/")
}

func TestApplyNoiseControl(t *testing.T) {
	items := []Warning{
		{Code: CodeComponentNoBuild, NoiseSuppressible: true, Severity: SeverityInfo},
		{Code: CodeComponentMultiplePackages},
		{Code: "CRIT", NoiseSuppressible: true, Severity: SeverityCritical},
	}

	assert.Len(t, ApplyNoiseControl(items, ""), 3)
	assert.Nil(t, ApplyNoiseControl(nil, NoiseModeDefault))

	reduced := ApplyNoiseControl(items, " Reduce ")
	require.Len(t, reduced, 2)
	assert.Equal(t, CodeComponentMultiplePackages, reduced[0].Code)
	assert.Equal(t, "CRIT", reduced[1].Code)

	unknown := ApplyNoiseControl(items, "loud")
	require.Len(t, unknown, 4)
	assert.Equal(t, CodeNoiseModeInvalid, unknown[3].Code)
}

func TestValidNoiseMode(t *testing.T) {
	assert.True(t, ValidNoiseMode(""))
	assert.True(t, ValidNoiseMode("default"))
	assert.True(t, ValidNoiseMode("REDUCE"))
	assert.False(t, ValidNoiseMode("quiet"))
}
