package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/messages"
)

func newRemoveCmd(global *globalFlags) *cobra.Command {
	var feedPath string

	cmd := &cobra.Command{
		Use:   messages.RemoveUse,
		Short: messages.RemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.open(cmd)
			if err != nil {
				return err
			}
			feed := s.feed(feedPath)
			if err := feed.Open(cmd.Context(), false); err != nil {
				return err
			}
			if err := feed.RemovePackage(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.RemoveDoneFmt, args[0], feedPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&feedPath, "feed", "", messages.FlagFeedPath)
	_ = cmd.MarkFlagRequired("feed")
	return cmd
}
