package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/locate"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/pipeline"
)

// selectionFlags are the flags build and plan share.
type selectionFlags struct {
	exportRoot  string
	compiler    string
	release     string
	feedRoot    string
	feedVersion string
	feedType    string
	pool        bool
	poolDir     string
	noMetadata  bool
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.exportRoot, "directory", "d", "", messages.FlagExportDir)
	cmd.Flags().StringVarP(&f.compiler, "compiler", "c", "", messages.FlagCompiler)
	cmd.Flags().StringVarP(&f.release, "release", "r", "", messages.FlagRelease)
	cmd.Flags().StringVarP(&f.feedRoot, "feed-path", "f", "", messages.FlagFeedRoot)
	cmd.Flags().StringVarP(&f.feedVersion, "feed-version", "v", "", messages.FlagFeedVersion)
	cmd.Flags().StringVarP(&f.feedType, "feed-type", "t", string(locate.DefaultFeedType), messages.FlagFeedType)
	cmd.Flags().BoolVar(&f.pool, "pool", false, messages.FlagPool)
	cmd.Flags().StringVar(&f.poolDir, "pool-dir", "", messages.FlagPoolDir)
	cmd.Flags().BoolVar(&f.noMetadata, "no-metadata", false, messages.FlagNoMetadata)
	for _, name := range []string{"directory", "compiler", "release", "feed-path", "feed-version"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// options merges the flags over config into pipeline options.
func (f *selectionFlags) options(cmd *cobra.Command, s *session) (pipeline.Options, error) {
	feedType, err := locate.ParseFeedType(f.feedType)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		ExportRoot:     f.exportRoot,
		Compiler:       f.compiler,
		ReleaseVersion: f.release,
		FeedType:       feedType,
		FeedRoot:       f.feedRoot,
		FeedVersion:    f.feedVersion,
		Pool:           s.cfg.Pool.Enabled,
		PoolDir:        s.cfg.Pool.Dir,
		Metadata:       s.cfg.Metadata.Enabled && !f.noMetadata,
		NoiseMode:      s.cfg.Warnings.NoiseMode,
	}
	if cmd.Flags().Changed("pool") {
		opts.Pool = f.pool
	}
	if f.poolDir != "" {
		opts.PoolDir = f.poolDir
	}
	return opts, nil
}

func newBuildCmd(global *globalFlags) *cobra.Command {
	sel := &selectionFlags{}
	var publishFlag, noPublish, yes bool

	cmd := &cobra.Command{
		Use:   messages.BuildUse,
		Short: messages.BuildShort,
		Long:  messages.BuildLong,
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
			opts.Publish = s.cfg.Publish.Enabled
			if publishFlag {
				opts.Publish = true
			}
			if noPublish {
				opts.Publish = false
			}

			p := s.pipeline()
			if opts.Publish && !yes && isTerminal() {
				p.Confirmer = newConfirmer()
			}
			report, runErr := p.Run(cmd.Context(), opts)
			printBuildReport(cmd, report)
			if runErr != nil {
				return runErr
			}

			printWarnings(cmd.ErrOrStderr(), report.Warnings)
			out := cmd.OutOrStdout()
			if len(report.Warnings) > 0 {
				_, _ = fmt.Fprintln(out, color.YellowString(messages.BuildWarningsSummaryFmt, len(report.Warnings)))
				return nil
			}
			_, _ = fmt.Fprintln(out, color.GreenString(messages.BuildSuccessSummary))
			return nil
		},
	}
	sel.register(cmd)
	cmd.Flags().BoolVar(&publishFlag, "publish", false, messages.FlagPublish)
	cmd.Flags().BoolVar(&noPublish, "no-publish", false, messages.FlagNoPublish)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	cmd.MarkFlagsMutuallyExclusive("publish", "no-publish")
	return cmd
}

// printBuildReport writes whatever part of a run completed.
func printBuildReport(cmd *cobra.Command, report pipeline.Report) {
	out := cmd.OutOrStdout()
	if report.Feed.Path == "" {
		return
	}
	_, _ = fmt.Fprintf(out, messages.BuildFeedCreatedFmt, report.Feed.Path, report.Feed.BuildNumber)
	if len(report.Added) == 0 {
		_, _ = fmt.Fprintln(out, messages.BuildNoPackages)
	} else {
		_, _ = fmt.Fprintln(out, messages.BuildAddedHeader)
		for _, pkg := range report.Added {
			_, _ = fmt.Fprintf(out, messages.BuildAddedLineFmt, pkg)
		}
	}
	if len(report.Packages) > 0 {
		_, _ = fmt.Fprintln(out, messages.BuildFeedPackagesHeader)
		for _, pkg := range report.Packages {
			_, _ = fmt.Fprintf(out, messages.BuildFeedPackageLineFmt, pkg)
		}
	}
	if report.MetadataPath != "" {
		_, _ = fmt.Fprintf(out, messages.BuildMetadataWrittenFmt, report.MetadataPath)
	}
	switch {
	case report.Published:
		_, _ = fmt.Fprintf(out, messages.BuildPublishedFmt, report.Feed.Name)
	case report.PublishDeclined:
		_, _ = fmt.Fprintln(out, messages.BuildPublishDeclined)
	}
}
