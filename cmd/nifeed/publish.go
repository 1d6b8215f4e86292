package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/messages"
)

func newPublishCmd(global *globalFlags) *cobra.Command {
	var (
		buildPath   string
		buildNumber int
		baseVersion string
		phase       string
		reportRoot  string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   messages.PublishUse,
		Short: messages.PublishShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.open(cmd)
			if err != nil {
				return err
			}
			pub := publisher(s)
			pub.BaseVersion = baseVersion
			pub.BuildNumber = buildNumber
			if phase != "" {
				pub.Phase = phase
			}
			if reportRoot != "" {
				pub.ReportRoot = reportRoot
			}
			if err := pub.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes && isTerminal() {
				ok, err := newConfirmer().Confirm(
					fmt.Sprintf(messages.PipelineConfirmTitleFmt, filepath.Base(buildPath)),
					fmt.Sprintf(messages.PipelineConfirmDescriptionFmt, pub.Product, buildNumber, baseVersion),
				)
				if err != nil {
					return fmt.Errorf(messages.PipelineConfirmFmt, err)
				}
				if !ok {
					_, _ = fmt.Fprintln(out, messages.PublishDeclined)
					return nil
				}
			}
			if err := pub.Publish(cmd.Context(), buildPath); err != nil {
				return fmt.Errorf(messages.PipelinePublishFmt, err)
			}
			_, _ = fmt.Fprintf(out, messages.PublishDoneFmt, buildPath, baseVersion, buildNumber)
			return nil
		},
	}
	cmd.Flags().StringVar(&buildPath, "path", "", messages.FlagBuildPath)
	cmd.Flags().IntVar(&buildNumber, "build", 0, messages.FlagBuildNumber)
	cmd.Flags().StringVar(&baseVersion, "version", "", messages.FlagBaseVersion)
	cmd.Flags().StringVar(&phase, "phase", "", messages.FlagPhase)
	cmd.Flags().StringVar(&reportRoot, "report-root", "", messages.FlagReportRoot)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	for _, name := range []string{"path", "build", "version"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
