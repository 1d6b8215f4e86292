package messages

// System messages for filesystem helpers and external commands.
const (
	CommandNameRequired     = "command name is required"
	CommandStartFailedFmt   = "%s: %v"
	CommandExitCodeFmt      = "%s exited with code %d: %v"
	CommandCanceledFmt      = "%s canceled: %w"
	FsutilCreateTempFmt     = "create temp file for %s: %w"
	FsutilWriteTempFmt      = "write temp file for %s: %w"
	FsutilRenameFmt         = "move %s into place: %w"
	FsutilOpenFmt           = "open %s: %w"
	FsutilCreateFmt         = "create %s: %w"
	FsutilCopyFmt           = "copy %s to %s: %w"
	FsutilReadDirFmt        = "read directory %s: %w"
	FsutilNotDirFmt         = "%s exists but is not a directory"
	FsutilTrailingNumberFmt = "trailing number of %s: %w"
	LoggingInvalidLevelFmt  = "invalid log level %q: %w"
	PromptRequiresTerminal  = "confirmation prompt requires an interactive terminal; re-run with --yes"
)
