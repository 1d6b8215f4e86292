package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conn-castle/nifeed/internal/command"
	"github.com/conn-castle/nifeed/internal/config"
	"github.com/conn-castle/nifeed/internal/locate"
	"github.com/conn-castle/nifeed/internal/logging"
	"github.com/conn-castle/nifeed/internal/messages"
	"github.com/conn-castle/nifeed/internal/nipkg"
	"github.com/conn-castle/nifeed/internal/pipeline"
	"github.com/conn-castle/nifeed/internal/prompt"
	"github.com/conn-castle/nifeed/internal/publish"
	"github.com/conn-castle/nifeed/internal/terminal"
	"github.com/conn-castle/nifeed/internal/warnings"
)

// Test seams.
var (
	newFS        = afero.NewOsFs
	newRunner    = newExecRunner
	isTerminal   = terminal.IsInteractive
	newConfirmer = func() prompt.Confirmer { return prompt.NewHuhConfirmer() }
)

func newExecRunner(stdout io.Writer, stderr io.Writer, logger *log.Logger) command.Runner {
	return command.ExecRunner{Stdout: stdout, Stderr: stderr, Logger: logger}
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	quiet      bool
}

// session carries what a subcommand needs once flags are parsed.
type session struct {
	cfg    *config.Config
	logger *log.Logger
	fs     afero.Fs
	runner command.Runner
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", messages.RootFlagLogLevel)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.RootFlagQuiet)

	cmd.AddCommand(
		newBuildCmd(flags),
		newPlanCmd(flags),
		newListCmd(flags),
		newRemoveCmd(flags),
		newPublishCmd(flags),
		newDoctorCmd(flags),
		newInitCmd(flags),
	)
	return cmd
}

// open loads config and builds the logger, filesystem, and runner for cmd.
// External tool output goes to stderr so stdout carries only the command's report.
func (g *globalFlags) open(cmd *cobra.Command) (*session, error) {
	cfg, _, err := config.LoadOptional(g.configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, Quiet: g.quiet})
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		logger: logger,
		fs:     newFS(),
		runner: newRunner(cmd.ErrOrStderr(), cmd.ErrOrStderr(), logger),
	}, nil
}

// exclusions converts the configured lists into locator exclusion sets.
func exclusions(cfg *config.Config) locate.Exclusions {
	return locate.Exclusions{
		locate.FeedTypeAll:     locate.NewSet(cfg.Exclusions.All...),
		locate.FeedTypeRelease: locate.NewSet(cfg.Exclusions.Release...),
		locate.FeedTypeTest:    locate.NewSet(cfg.Exclusions.Test...),
	}
}

// publisher builds the release tracker identity from config.
func publisher(s *session) publish.Publisher {
	return publish.Publisher{
		Runner:     s.runner,
		FS:         s.fs,
		Logger:     s.logger,
		Python:     s.cfg.Publish.Python,
		ReportRoot: s.cfg.Publish.ReportRoot,
		Product:    s.cfg.Publish.Product,
		Platform:   s.cfg.Publish.Platform,
		Phase:      s.cfg.Publish.Phase,
	}
}

// pipeline wires a feed pipeline from the session.
func (s *session) pipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		FS:     s.fs,
		Runner: s.runner,
		Locator: locate.Locator{
			FS:            s.fs,
			ExportSubpath: s.cfg.Locator.ExportSubpath,
			Extension:     s.cfg.Locator.Extension,
			Exclusions:    exclusions(s.cfg),
			Logger:        s.logger,
		},
		NipkgTool: s.cfg.Nipkg.Path,
		Publisher: publisher(s),
		Logger:    s.logger,
	}
}

// feed opens the feed at path with the configured nipkg tool.
func (s *session) feed(path string) *nipkg.Feed {
	return &nipkg.Feed{Path: path, Tool: s.cfg.Nipkg.Path, Runner: s.runner, FS: s.fs, Logger: s.logger}
}

// printWarnings writes warnings to out in yellow.
func printWarnings(out io.Writer, items []warnings.Warning) {
	for _, w := range items {
		_, _ = fmt.Fprintln(out, color.YellowString(w.String()))
		_, _ = fmt.Fprintln(out)
	}
}
