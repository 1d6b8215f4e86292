package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/config"
	"github.com/conn-castle/nifeed/internal/fsutil"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/metadata"
	"github.com/conn-castle/nifeed/internal/templates"
)

// newInitCmd seeds the starter config. An existing file is only replaced
// with --force, after its diff against the template is shown.
func newInitCmd(global *globalFlags) *cobra.Command {
	var force, yes bool

	cmd := &cobra.Command{
		Use:   messages.InitUse,
		Short: messages.InitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.configPath
			if path == "" {
				path = config.DefaultFile
			}
			data, err := templates.Read(templates.ConfigFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fsys := newFS()
			existing, err := afero.ReadFile(fsys, path)
			switch {
			case err == nil && bytes.Equal(existing, data):
				_, _ = fmt.Fprintf(out, messages.InitUpToDateFmt, path)
				return nil
			case err == nil && !force:
				return fmt.Errorf(messages.InitExistsFmt, path)
			case err == nil:
				diff, _ := metadata.Diff(path, templates.ConfigFile, existing, data, 0)
				_, _ = fmt.Fprint(out, diff)
				if !yes && isTerminal() {
					ok, err := newConfirmer().Confirm(fmt.Sprintf(messages.InitReplaceTitleFmt, path), messages.InitReplaceDescription)
					if err != nil {
						return err
					}
					if !ok {
						_, _ = fmt.Fprintln(out, messages.InitDeclined)
						return nil
					}
				}
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}

			if err := fsutil.WriteFileAtomic(fsys, path, data, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, messages.InitWrittenFmt, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, messages.FlagForce)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}
