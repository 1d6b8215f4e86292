package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/messages"
)

func newListCmd(global *globalFlags) *cobra.Command {
	var feedPath string
	var sizes bool

	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := global.open(cmd)
			if err != nil {
				return err
			}
			feed := s.feed(feedPath)
			if err := feed.Open(cmd.Context(), false); err != nil {
				return err
			}
			packages, err := feed.ListPackages()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(packages) == 0 {
				_, _ = fmt.Fprintf(out, messages.ListEmptyFmt, feedPath)
				return nil
			}
			return renderPackageTable(out, s.fs, feedPath, packages, sizes)
		},
	}
	cmd.Flags().StringVar(&feedPath, "feed", "", messages.FlagFeedPath)
	cmd.Flags().BoolVar(&sizes, "sizes", false, messages.FlagSizes)
	_ = cmd.MarkFlagRequired("feed")
	return cmd
}

// renderPackageTable prints packages, with file sizes when sizes is set.
func renderPackageTable(out io.Writer, fsys afero.Fs, feedPath string, packages []string, sizes bool) error {
	tbl := tablewriter.NewTable(out, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
		Borders: tw.BorderNone,
		Settings: tw.Settings{
			Separators: tw.Separators{BetweenColumns: tw.On},
		},
	})))
	header := []string{messages.ListHeaderPackage}
	if sizes {
		header = append(header, messages.ListHeaderSize)
	}
	tbl.Header(header)

	rows := make([][]any, 0, len(packages))
	for _, pkg := range packages {
		row := []any{pkg}
		if sizes {
			row = append(row, packageSize(fsys, feedPath, pkg))
		}
		rows = append(rows, row)
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

// packageSize formats the size of a feed-relative package path, or a
// placeholder when the file cannot be read.
func packageSize(fsys afero.Fs, feedPath string, rel string) string {
	info, err := fsys.Stat(filepath.Join(feedPath, filepath.FromSlash(strings.ReplaceAll(rel, `\`, "/"))))
	if err != nil {
		return messages.ListSizeUnknown
	}
	return units.HumanSize(float64(info.Size()))
}
