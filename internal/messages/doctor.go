package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the feed tooling, configuration, and release tracker setup"

	DoctorHealthCheck = "Checking nifeed environment..."

	DoctorCheckNameConfig      = "Config"
	DoctorCheckNameNipkg       = "Nipkg"
	DoctorCheckNamePython      = "Python"
	DoctorCheckNameBuildReport = "BuildReport"
	DoctorCheckNameExclusions  = "Exclusions"

	DoctorConfigLoadedFmt        = "Configuration loaded from %s"
	DoctorConfigDefaults         = "No config file found; using built-in defaults"
	DoctorConfigLoadFailedFmt    = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend    = "Fix the reported key in nifeed.toml or pass --config with a valid file."
	DoctorNipkgFoundFmt          = "nipkg found: %s"
	DoctorNipkgMissingFmt        = "nipkg not found: %s"
	DoctorNipkgMissingRecommend  = "Install NI Package Manager or set nipkg.path in nifeed.toml."
	DoctorPublishDisabled        = "Publishing disabled (publish.enabled = false)"
	DoctorPythonFoundFmt         = "Python found: %s"
	DoctorPythonMissingFmt       = "Python not found: %s"
	DoctorPythonMissingRecommend = "Install Python 2.7 or set publish.python in nifeed.toml."
	DoctorBuildReportFoundFmt    = "Build report script found: %s"
	DoctorBuildReportMissingFmt  = "Build report script not found under %s: %v"
	DoctorBuildReportRecommend   = "Set publish.report_root to a directory containing buildReportAPI/buildReport.py or an export tree of it."
	DoctorExclusionsFmt          = "%s feeds exclude %d component(s): %s"
	DoctorExclusionsNone         = "none"

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-12s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorFailureSummary       = "Some checks failed."
	DoctorSuccessSummary       = "All checks passed."
)
