package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %w"
	ConfigExpandPathFmt       = "%s: expand %s: %w"
	ConfigValidationGuidance  = "(run `nifeed init` to write a starter config listing the supported keys)"

	ConfigExtensionInvalidFmt        = "%s: locator.extension %q must start with '.'"
	ConfigExportSubpathInvalidFmt    = "%s: locator.export_subpath %q must be a relative path"
	ConfigExclusionInvalidFmt        = "%s: exclusions.%s contains invalid component name %q"
	ConfigNipkgPathRequiredFmt       = "%s: nipkg.path is required"
	ConfigPhaseRequiredFmt           = "%s: publish.phase is required"
	ConfigPublishFieldRequiredFmt    = "%s: publish.%s is required when publish.enabled is true"
	ConfigLogLevelInvalidFmt         = "%s: log.level %q is invalid (allowed: debug, info, warn, error)"
	ConfigWarningNoiseModeInvalidFmt = "%s: warnings.noise_mode %q is invalid (allowed: default, reduce)"
)
