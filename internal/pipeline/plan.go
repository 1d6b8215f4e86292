package pipeline

import (
	"fmt"

	"github.com/conn-castle/nifeed/internal/locate"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/metadata"
	"github.com/conn-castle/nifeed/internal/version"
	"github.com/conn-castle/nifeed/internal/warnings"
)

// noPreviousLabel names the empty side of a diff when no earlier build has metadata.
const noPreviousLabel = "(no previous metadata)"

// PoolCopy is one package copy into the pool directory.
type PoolCopy struct {
	Source      string
	Destination string
}

// Preview is what a run would do, computed without side effects.
type Preview struct {
	Feed    version.Resolved
	Located locate.Result
	// PoolCopies lists the copies a run would make when pooling is enabled.
	PoolCopies []PoolCopy
	// Metadata is the document a run would write; nil when metadata is disabled.
	Metadata []byte
	// PreviousMetadata is the metadata file the diff is against, if any.
	PreviousMetadata string
	MetadataDiff     string
	DiffTruncated    bool
	Warnings         []warnings.Warning
}

// Plan locates packages and resolves the next feed build, then renders the
// metadata change against the newest earlier build. It writes nothing.
func (p *Pipeline) Plan(opts Options) (Preview, error) {
	if err := opts.validate(); err != nil {
		return Preview{}, err
	}
	located, err := p.locate(opts)
	if err != nil {
		return Preview{}, err
	}
	resolved, err := version.Resolve(p.FS, opts.FeedRoot, opts.FeedVersion)
	if err != nil {
		return Preview{}, fmt.Errorf(messages.PipelineResolveFmt, err)
	}
	preview := Preview{
		Feed:     resolved,
		Located:  located,
		Warnings: warnings.ApplyNoiseControl(located.Warnings, opts.NoiseMode),
	}

	if opts.Pool {
		for _, artifact := range located.Artifacts {
			preview.PoolCopies = append(preview.PoolCopies, PoolCopy{
				Source:      artifact.Package,
				Destination: poolPath(opts, artifact),
			})
		}
	}

	if !opts.Metadata {
		return preview, nil
	}
	manifests, err := metadata.Collect(p.FS, located.InstallerDirs())
	if err != nil {
		return preview, fmt.Errorf(messages.PipelineMetadataFmt, err)
	}
	doc, err := metadata.Encode(manifests)
	if err != nil {
		return preview, fmt.Errorf(messages.PipelineMetadataFmt, err)
	}
	preview.Metadata = doc

	prevPath, prevDoc, ok, err := metadata.Previous(p.FS, resolved.VersionedPath, resolved.Name)
	if err != nil {
		return preview, fmt.Errorf(messages.PipelineMetadataFmt, err)
	}
	fromName := noPreviousLabel
	if ok {
		preview.PreviousMetadata = prevPath
		fromName = prevPath
	}
	preview.MetadataDiff, preview.DiffTruncated = metadata.Diff(fromName, metadata.Path(resolved.Path), prevDoc, doc, opts.DiffMaxLines)
	return preview, nil
}
