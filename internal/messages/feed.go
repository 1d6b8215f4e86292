package messages

// Feed messages for version resolution, artifact location, and feed management.
const (
	VersionLabelRequired       = "feed version label is required"
	VersionLabelInvalidFmt     = "feed version label %q must be a single path segment"
	VersionBuildNumberRangeFmt = "build number of %s is out of range"

	LocateExportRootNotFound = "export root not found"
	LocateExportRootFmt      = "%w: %s"
	LocateStatExportRootFmt  = "stat export root %s: %w"
	LocateCompilerRequired   = "compiler is required"
	LocateReleaseRequired    = "release version is required"
	LocateFeedTypeInvalidFmt = "invalid feed type %q (allowed: release, all, test)"

	LocateNoBuildMsg          = "no build directories for the requested release"
	LocateNoBuildFixFmt       = "Check that %s contains a build directory."
	LocateNoPackageMsg        = "latest build has no installer package"
	LocateNoPackageFixFmt     = "Check that %s contains a %s file for this compiler."
	LocateMultiplePackagesMsg = "latest build has more than one installer package; using the first in sorted order"
	LocateMultiplePackagesFix = "Remove stale packages from the installer directory."

	NipkgFeedNotFound         = "feed not found"
	NipkgFeedNotFoundFmt      = "%w: %s"
	NipkgInvalidPackage       = "not a valid nipkg file"
	NipkgInvalidPackageFmt    = "%s: %w"
	NipkgPackageNotFound      = "package does not exist"
	NipkgPackageNotFoundFmt   = "%s: %w"
	NipkgNameNotFound         = "package name does not exist in the feed"
	NipkgNameNotFoundFmt      = "%w: %s"
	NipkgDestinationExists    = "destination already exists"
	NipkgDestinationExistsFmt = "%s: %w; set overwrite to replace it"
	NipkgNameRequired         = "package name is required"
	NipkgCreateDirFmt         = "create feed directory %s: %w"
	NipkgReadStampsFmt        = "read %s: %w"
	NipkgCreateDestDirFmt     = "create package destination %s: %w"
	NipkgCreateFeedFmt        = "create feed %s: %w"
	NipkgAddPackageFmt        = "add %s to feed %s: %w"
	NipkgRemovePackageFmt     = "remove %s from feed %s: %w"

	MetadataReadManifestFmt    = "read manifest %s: %w"
	MetadataInvalidManifestFmt = "invalid manifest %s: %w"
	MetadataEncodeFmt          = "encode feed metadata: %w"
	MetadataCreateDirFmt       = "create metadata directory %s: %w"
	MetadataWriteFmt           = "write feed metadata %s: %w"
	MetadataReadPreviousFmt    = "read previous metadata %s: %w"
	MetadataDiffTruncatedFmt   = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"

	PublishBuildReportNotFound    = "build report API not found"
	PublishBuildReportNotFoundFmt = "%w under %s"
	PublishReportRootRequired     = "build report root is required"
	PublishFieldRequiredFmt       = "publisher %s is required"
	PublishBuildNumberInvalidFmt  = "publisher build number must be positive, got %d"
	PublishAddBuildFmt            = "register build %s: %w"
	PublishSetCompleteFmt         = "mark build %d complete: %w"

	PipelineLocateFmt             = "locate packages: %w"
	PipelineResolveFmt            = "resolve feed version: %w"
	PipelineOpenFeedFmt           = "open feed: %w"
	PipelineFeedBuildExists       = "feed build already exists"
	PipelineFeedBuildExistsFmt    = "%s: %w"
	PipelineStatFeedFmt           = "stat feed build %s: %w"
	PipelinePoolFmt               = "pool %s: %w"
	PipelineListFmt               = "list feed packages: %w"
	PipelineMetadataFmt           = "feed metadata: %w"
	PipelinePublishFmt            = "publish feed build: %w"
	PipelineConfirmFmt            = "confirm publish: %w"
	PipelineOptionRequiredFmt     = "%s is required"
	PipelineConfirmTitleFmt       = "Publish feed build %s?"
	PipelineConfirmDescriptionFmt = "Registers %s build %d of %s with the build report service."
)
