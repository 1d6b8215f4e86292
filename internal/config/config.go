// Package config loads nifeed.toml: tool locations, exclusion lists, and
// publisher identity. Command-line flags override what it provides.
package config

// Config is the full nifeed configuration.
type Config struct {
	Nipkg      NipkgConfig      `toml:"nipkg"`
	Locator    LocatorConfig    `toml:"locator"`
	Exclusions ExclusionsConfig `toml:"exclusions"`
	Pool       PoolConfig       `toml:"pool"`
	Metadata   MetadataConfig   `toml:"metadata"`
	Publish    PublishConfig    `toml:"publish"`
	Log        LogConfig        `toml:"log"`
	Warnings   WarningsConfig   `toml:"warnings"`
}

// NipkgConfig locates the NI Package Manager CLI.
type NipkgConfig struct {
	Path string `toml:"path"`
}

// LocatorConfig describes the export tree layout.
type LocatorConfig struct {
	ExportSubpath string `toml:"export_subpath"`
	Extension     string `toml:"extension"`
}

// ExclusionsConfig lists component directory names left out of a feed.
// All applies to every feed type.
type ExclusionsConfig struct {
	All     []string `toml:"all"`
	Release []string `toml:"release"`
	Test    []string `toml:"test"`
}

// PoolConfig controls copying packages into a pool directory before ingest.
type PoolConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir defaults to <feed root>/pool when empty.
	Dir string `toml:"dir"`
}

// MetadataConfig controls metadata generation.
type MetadataConfig struct {
	Enabled bool `toml:"enabled"`
}

// PublishConfig identifies builds to the build report service.
type PublishConfig struct {
	Enabled    bool   `toml:"enabled"`
	Python     string `toml:"python"`
	ReportRoot string `toml:"report_root"`
	Product    string `toml:"product"`
	Platform   string `toml:"platform"`
	Phase      string `toml:"phase"`
}

// LogConfig sets the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// WarningsConfig controls how non-fatal findings are reported.
type WarningsConfig struct {
	NoiseMode string `toml:"noise_mode"`
}

// Defaults applied before the config file is decoded.
const (
	DefaultNipkgPath     = "C:/Program Files/National Instruments/NI Package Manager/nipkg.exe"
	DefaultExportSubpath = "export/release"
	DefaultExtension     = ".nipkg"
	DefaultPython        = "C:/Python27/python.exe"
	DefaultPhase         = "u"
	DefaultLogLevel      = "info"
)

// DefaultReleaseExclusions are components never shipped in a release feed.
var DefaultReleaseExclusions = []string{"ni_system_monitor_custom_device"}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Nipkg: NipkgConfig{Path: DefaultNipkgPath},
		Locator: LocatorConfig{
			ExportSubpath: DefaultExportSubpath,
			Extension:     DefaultExtension,
		},
		Exclusions: ExclusionsConfig{
			Release: append([]string(nil), DefaultReleaseExclusions...),
		},
		Metadata: MetadataConfig{Enabled: true},
		Publish: PublishConfig{
			Python: DefaultPython,
			Phase:  DefaultPhase,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}
