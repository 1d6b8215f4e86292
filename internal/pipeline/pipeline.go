// Package pipeline assembles a versioned feed build from an export tree:
// locate packages, resolve the next feed path, ingest, record metadata, and
// optionally publish.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/conn-castle/nifeed/internal/command"
	"github.com/conn-castle/nifeed/internal/locate"
	"github.com/conn-castle/nifeed/internal/logging"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/metadata"
	"github.com/conn-castle/nifeed/internal/nipkg"
	"github.com/conn-castle/nifeed/internal/prompt"
	"github.com/conn-castle/nifeed/internal/publish"
	"github.com/conn-castle/nifeed/internal/version"
	"github.com/conn-castle/nifeed/internal/warnings"
)

// DefaultPoolDirName is the pool directory under the feed root when none is configured.
const DefaultPoolDirName = "pool"

// ErrFeedBuildExists is returned when the resolved feed build directory is already present.
var ErrFeedBuildExists = errors.New(messages.PipelineFeedBuildExists)

// Options selects the packages and the feed build to produce.
type Options struct {
	ExportRoot     string
	Compiler       string
	ReleaseVersion string
	FeedType       locate.FeedType
	FeedRoot       string
	FeedVersion    string

	// Pool copies each package to <PoolDir>/<component>/ and ingests the copy.
	Pool bool
	// PoolDir defaults to <FeedRoot>/pool.
	PoolDir  string
	Metadata bool
	Publish  bool
	// NoiseMode filters the reported warnings; see warnings.ApplyNoiseControl.
	NoiseMode string
	// DiffMaxLines caps the metadata diff rendered by Plan.
	DiffMaxLines int
}

// Pipeline holds the collaborators a run drives.
type Pipeline struct {
	FS      afero.Fs
	Runner  command.Runner
	Locator locate.Locator
	// NipkgTool is the nipkg executable; empty means nipkg.DefaultToolPath.
	NipkgTool string
	// Publisher carries the build report identity. BaseVersion and BuildNumber are set per run.
	Publisher publish.Publisher
	// Confirmer, when set, is asked before publishing.
	Confirmer prompt.Confirmer
	Logger    *log.Logger
}

// Report describes a completed run.
type Report struct {
	Feed    version.Resolved
	Located locate.Result
	// Added are the package paths handed to nipkg, in ingest order.
	Added []string
	// Packages is the feed content after ingest, relative to the feed directory.
	Packages     []string
	MetadataPath string
	Published    bool
	// PublishDeclined is set when the operator answered no to the publish prompt.
	PublishDeclined bool
	Warnings        []warnings.Warning
}

// Run builds the next feed version. It stops at the first failure and does
// not undo earlier steps.
func (p *Pipeline) Run(ctx context.Context, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}

	located, err := p.locate(opts)
	if err != nil {
		return Report{}, err
	}
	resolved, err := version.Resolve(p.FS, opts.FeedRoot, opts.FeedVersion)
	if err != nil {
		return Report{}, fmt.Errorf(messages.PipelineResolveFmt, err)
	}
	exists, err := afero.Exists(p.FS, resolved.Path)
	if err != nil {
		return Report{}, fmt.Errorf(messages.PipelineStatFeedFmt, resolved.Path, err)
	}
	if exists {
		return Report{Feed: resolved, Located: located}, fmt.Errorf(messages.PipelineFeedBuildExistsFmt, resolved.Path, ErrFeedBuildExists)
	}
	report := Report{
		Feed:     resolved,
		Located:  located,
		Warnings: warnings.ApplyNoiseControl(located.Warnings, opts.NoiseMode),
	}

	publisher := p.publisher(opts, resolved)
	if opts.Publish {
		if err := publisher.Validate(); err != nil {
			return report, fmt.Errorf(messages.PipelinePublishFmt, err)
		}
		if _, err := publisher.Script(); err != nil {
			return report, fmt.Errorf(messages.PipelinePublishFmt, err)
		}
	}

	p.logger().Info("building feed", "path", resolved.Path, "build", resolved.BuildNumber, "packages", len(located.Artifacts))
	feed := &nipkg.Feed{Path: resolved.Path, Tool: p.NipkgTool, Runner: p.Runner, FS: p.FS, Logger: p.Logger}
	if err := feed.Open(ctx, true); err != nil {
		return report, fmt.Errorf(messages.PipelineOpenFeedFmt, err)
	}

	for _, artifact := range located.Artifacts {
		addOpts := nipkg.AddOptions{}
		if opts.Pool {
			addOpts = nipkg.AddOptions{
				Destination:       poolPath(opts, artifact),
				CreateDestination: true,
				Overwrite:         true,
			}
		}
		if err := feed.AddPackage(ctx, artifact.Package, addOpts); err != nil {
			if opts.Pool {
				return report, fmt.Errorf(messages.PipelinePoolFmt, artifact.Component, err)
			}
			return report, err
		}
		added := artifact.Package
		if addOpts.Destination != "" {
			added = addOpts.Destination
		}
		report.Added = append(report.Added, added)
	}

	packages, err := feed.ListPackages()
	if err != nil {
		return report, fmt.Errorf(messages.PipelineListFmt, err)
	}
	report.Packages = packages
	for _, pkg := range packages {
		p.logger().Info("feed package", "path", filepath.FromSlash(strings.ReplaceAll(pkg, `\`, "/")))
	}

	if opts.Metadata {
		manifests, err := metadata.Collect(p.FS, located.InstallerDirs())
		if err != nil {
			return report, fmt.Errorf(messages.PipelineMetadataFmt, err)
		}
		path, err := metadata.Write(p.FS, resolved.Path, manifests)
		if err != nil {
			return report, fmt.Errorf(messages.PipelineMetadataFmt, err)
		}
		report.MetadataPath = path
		p.logger().Info("wrote metadata", "path", path, "manifests", len(manifests))
	}

	if !opts.Publish {
		return report, nil
	}
	if p.Confirmer != nil {
		ok, err := p.Confirmer.Confirm(
			fmt.Sprintf(messages.PipelineConfirmTitleFmt, resolved.Name),
			fmt.Sprintf(messages.PipelineConfirmDescriptionFmt, publisher.Product, resolved.BuildNumber, opts.FeedVersion),
		)
		if err != nil {
			return report, fmt.Errorf(messages.PipelineConfirmFmt, err)
		}
		if !ok {
			report.PublishDeclined = true
			p.logger().Warn("publish declined", "build", resolved.Name)
			return report, nil
		}
	}
	if err := publisher.Publish(ctx, resolved.Path); err != nil {
		return report, fmt.Errorf(messages.PipelinePublishFmt, err)
	}
	report.Published = true
	return report, nil
}

func (p *Pipeline) locate(opts Options) (locate.Result, error) {
	locator := p.Locator
	if locator.FS == nil {
		locator.FS = p.FS
	}
	if locator.Logger == nil {
		locator.Logger = p.Logger
	}
	located, err := locator.Locate(locate.Query{
		ExportRoot:     opts.ExportRoot,
		Compiler:       opts.Compiler,
		ReleaseVersion: opts.ReleaseVersion,
		FeedType:       opts.FeedType,
	})
	if err != nil {
		return locate.Result{}, fmt.Errorf(messages.PipelineLocateFmt, err)
	}
	return located, nil
}

func (p *Pipeline) publisher(opts Options, resolved version.Resolved) publish.Publisher {
	pub := p.Publisher
	pub.BaseVersion = opts.FeedVersion
	pub.BuildNumber = resolved.BuildNumber
	if pub.Runner == nil {
		pub.Runner = p.Runner
	}
	if pub.FS == nil {
		pub.FS = p.FS
	}
	if pub.Logger == nil {
		pub.Logger = p.Logger
	}
	return pub
}

func (p *Pipeline) logger() *log.Logger {
	if p.Logger == nil {
		p.Logger = logging.Discard()
	}
	return p.Logger
}

// poolPath is where artifact is copied before ingest.
func poolPath(opts Options, artifact locate.Artifact) string {
	dir := opts.PoolDir
	if dir == "" {
		dir = filepath.Join(opts.FeedRoot, DefaultPoolDirName)
	}
	return filepath.Join(dir, artifact.Component, filepath.Base(artifact.Package))
}

func (o Options) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"export root", o.ExportRoot},
		{"feed root", o.FeedRoot},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.PipelineOptionRequiredFmt, field.name)
		}
	}
	if err := version.ValidateLabel(o.FeedVersion); err != nil {
		return fmt.Errorf(messages.PipelineResolveFmt, err)
	}
	return nil
}
