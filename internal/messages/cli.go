package messages

// CLI messages for user-facing commands and flags.
const (
	// RootUse is the CLI command name.
	RootUse          = "nifeed"
	RootShort        = "Assemble versioned NI Package Manager feeds from component exports"
	RootVersionFlag  = "Print version and exit"
	RootFlagConfig   = "Path to a nifeed.toml config file (default: ./nifeed.toml when present)"
	RootFlagLogLevel = "Log level (debug, info, warn, error); overrides log.level from config"
	RootFlagQuiet    = "Only log warnings and errors"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// BuildUse is the build command name.
	BuildUse   = "build"
	BuildShort = "Create the next feed build from the latest component exports"
	BuildLong  = "Locate the newest installer package of every component, add them to a new versioned feed,\nwrite feed metadata, and optionally publish the feed build to the release tracker."

	// PlanUse is the plan command name.
	PlanUse   = "plan"
	PlanShort = "Show which packages the next feed build would contain without writing anything"

	// ListUse is the list command name.
	ListUse   = "list"
	ListShort = "List the packages in a feed"

	// RemoveUse is the remove command usage.
	RemoveUse   = "remove <package-name>"
	RemoveShort = "Remove a package from a feed by name"

	// PublishUse is the publish command name.
	PublishUse   = "publish"
	PublishShort = "Register an existing feed build with the release tracker"

	// InitUse is the init command name.
	InitUse   = "init"
	InitShort = "Write a starter nifeed.toml with every supported key"

	FlagExportDir   = "Directory containing the per-component exports (required)"
	FlagCompiler    = "Compiler version of the packages to include, e.g. 2019 (required)"
	FlagRelease     = "Release version of the packages to include (required)"
	FlagFeedRoot    = "Root directory under which versioned feeds are created (required)"
	FlagFeedVersion = "Base version label of the feed to create (required)"
	FlagFeedType    = "Feed type selecting the exclusion list (release, all, test)"
	FlagPublish     = "Publish the feed build to the release tracker (default from publish.enabled)"
	FlagNoPublish   = "Never publish, even when publish.enabled is set"
	FlagPool        = "Copy packages into the pool directory before adding them to the feed"
	FlagPoolDir     = "Pool directory used with --pool (default: <feed root>/pool)"
	FlagNoMetadata  = "Skip writing meta-data/metadata.json"
	FlagYes         = "Publish without asking for confirmation"
	FlagFeedPath    = "Path of an existing feed (required)"
	FlagBuildPath   = "Path of the feed build to publish (required)"
	FlagBuildNumber = "Build number of the feed build (required)"
	FlagBaseVersion = "Base version label of the feed build (required)"
	FlagPhase       = "Release phase recorded with the build (default from publish.phase)"
	FlagReportRoot  = "Root of the build report API (default from publish.report_root)"
	FlagSizes       = "Show package sizes (requires the feed to be on local disk)"
	FlagDiffLines   = "Maximum number of metadata diff lines to show"
	FlagForce       = "Replace an existing config file after showing the change"

	BuildFeedCreatedFmt      = "Feed build %s (build %d)\n"
	BuildAddedHeader         = "Added packages:"
	BuildAddedLineFmt        = "  + %s\n"
	BuildNoPackages          = "No packages matched; the feed build is empty."
	BuildFeedPackagesHeader  = "Packages in feed:"
	BuildFeedPackageLineFmt  = "  %s\n"
	BuildMetadataWrittenFmt  = "Metadata written to %s\n"
	BuildPublishedFmt        = "Published %s to the release tracker\n"
	BuildPublishDeclined     = "Publishing skipped."
	BuildSuccessSummary      = "Feed build complete."
	BuildWarningsSummaryFmt  = "Feed build complete with %d warning(s)."
	PlanNextFeedFmt          = "Next feed build: %s (build %d)\n"
	PlanPackagesHeader       = "Packages:"
	PlanPackageLineFmt       = "  %-40s %s\n"
	PlanNoPackages           = "No packages matched."
	PlanPoolHeader           = "Pool copies:"
	PlanPoolLineFmt          = "  %s -> %s\n"
	PlanExcludedFmt          = "Excluded components: %s\n"
	PlanNoPreviousMetadata   = "No previous feed build metadata to compare against."
	PlanMetadataUnchangedFmt = "Metadata unchanged from %s.\n"
	PlanMetadataDiffFmt      = "Metadata changes since %s:\n"
	ListEmptyFmt             = "No packages in %s\n"
	ListHeaderPackage        = "Package"
	ListHeaderSize           = "Size"
	ListSizeUnknown          = "-"
	RemoveDoneFmt            = "Removed %s from %s\n"
	PublishDoneFmt           = "Published %s as %s build %d\n"
	PublishDeclined          = "Publishing cancelled."
	InitWrittenFmt           = "Wrote %s\n"
	InitUpToDateFmt          = "%s already matches the starter config.\n"
	InitExistsFmt            = "%s already exists; rerun with --force to replace it"
	InitReplaceTitleFmt      = "Replace %s?"
	InitReplaceDescription   = "The existing settings will be lost."
	InitDeclined             = "Config left unchanged."
)
