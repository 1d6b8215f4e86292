package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/metadata"
	"github.com/conn-castle/nifeed/internal/pipeline"
)

func newPlanCmd(global *globalFlags) *cobra.Command {
	sel := &selectionFlags{}
	var diffLines int

	cmd := &cobra.Command{
		Use:   messages.PlanUse,
		Short: messages.PlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.open(cmd)
			if err != nil {
				return err
			}
			opts, err := sel.options(cmd, s)
			if err != nil {
				return err
			}
			opts.DiffMaxLines = diffLines
			preview, err := s.pipeline().Plan(opts)
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), preview.Warnings)
			printPreview(cmd, preview)
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().IntVar(&diffLines, "diff-lines", metadata.DefaultDiffMaxLines, messages.FlagDiffLines)
	return cmd
}

func printPreview(cmd *cobra.Command, preview pipeline.Preview) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, messages.PlanNextFeedFmt, preview.Feed.Path, preview.Feed.BuildNumber)

	if len(preview.Located.Artifacts) == 0 {
		_, _ = fmt.Fprintln(out, messages.PlanNoPackages)
	} else {
		_, _ = fmt.Fprintln(out, messages.PlanPackagesHeader)
		for _, artifact := range preview.Located.Artifacts {
			_, _ = fmt.Fprintf(out, messages.PlanPackageLineFmt, artifact.Component, artifact.Package)
		}
	}
	if len(preview.Located.Excluded) > 0 {
		_, _ = fmt.Fprintf(out, messages.PlanExcludedFmt, strings.Join(preview.Located.Excluded, ", "))
	}
	if len(preview.PoolCopies) > 0 {
		_, _ = fmt.Fprintln(out, messages.PlanPoolHeader)
		for _, c := range preview.PoolCopies {
			_, _ = fmt.Fprintf(out, messages.PlanPoolLineFmt, c.Source, c.Destination)
		}
	}

	if preview.Metadata == nil {
		return
	}
	switch {
	case preview.PreviousMetadata == "":
		_, _ = fmt.Fprintln(out, messages.PlanNoPreviousMetadata)
	case preview.MetadataDiff == "":
		_, _ = fmt.Fprintf(out, messages.PlanMetadataUnchangedFmt, preview.PreviousMetadata)
		return
	default:
		_, _ = fmt.Fprintf(out, messages.PlanMetadataDiffFmt, preview.PreviousMetadata)
	}
	_, _ = fmt.Fprint(out, preview.MetadataDiff)
}
