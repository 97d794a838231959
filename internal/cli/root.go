// Package cli is the tasklog command line. With no subcommand it starts the
// terminal UI.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sadopc/tasklog/internal/config"
	"github.com/sadopc/tasklog/internal/logging"
	"github.com/sadopc/tasklog/internal/store"
)

// Version is set at build time
var Version = "dev"

// Options carries test seams. The zero value reads configuration from the
// environment and uses the wall clock.
type Options struct {
	Config *config.Config
	Now    func() time.Time
	RunTUI func(s *store.Store, cfg *config.Config, log zerolog.Logger) error
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	opts   Options
	stdout io.Writer
	stderr io.Writer

	file    string
	backend string
	verbose bool

	cfg      *config.Config
	log      zerolog.Logger
	store    *store.Store
	closeLog func() error
}

// Execute runs the CLI with the given arguments and returns the exit code.
func Execute(args []string, stdout, stderr io.Writer, opts Options) int {
	a := &app{opts: opts, stdout: stdout, stderr: stderr, log: zerolog.Nop()}
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if cerr := a.teardown(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasklog",
		Short:         "Track tasks and their deadlines",
		Long:          "tasklog keeps a list of tasks with due dates, shows how long is left on each and moves finished ones to a completed list.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsStore(cmd) {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}

	root.PersistentFlags().StringVarP(&a.file, "file", "f", "", "task store path (overrides TASKLOG_FILE)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: json or sqlite (overrides TASKLOG_BACKEND)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	root.AddCommand(
		newAddCommand(a),
		newListCommand(a),
		newCompletedCommand(a),
		newEditCommand(a),
		newDeleteCommand(a),
		newDoneCommand(a),
		newUndoCommand(a),
		newSearchCommand(a),
		newExportCommand(a),
		newTUICommand(a),
	)
	return root
}

// setup resolves configuration, builds the logger and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	overrides := config.Overrides{Backend: a.backend, StorePath: a.file}
	cfg := a.opts.Config
	if cfg == nil {
		loaded, err := config.Load(overrides)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		copied := *cfg
		cfg = &copied
		cfg.Apply(overrides)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := a.setupLogger(cmd); err != nil {
		return err
	}

	opts := []store.Option{store.WithLogger(a.log)}
	if a.opts.Now != nil {
		opts = append(opts, store.WithClock(a.opts.Now))
	}
	s, err := cfg.OpenStore(opts...)
	if err != nil {
		return err
	}
	a.store = s
	a.log.Debug().
		Str("backend", cfg.Backend).
		Str("path", cfg.StorePath).
		Str("command", cmd.Name()).
		Msg("store opened")
	return nil
}

// setupLogger logs to the log file while the terminal UI owns the screen and
// to stderr otherwise.
func (a *app) setupLogger(cmd *cobra.Command) error {
	if isTUI(cmd) {
		f, err := logging.OpenFile(a.cfg.LogFile)
		if err != nil {
			return err
		}
		log, err := logging.New(a.cfg.LogLevel, f)
		if err != nil {
			f.Close()
			return err
		}
		a.log, a.closeLog = log, f.Close
		return nil
	}

	level := zerolog.LevelWarnValue
	if a.verbose {
		level = a.cfg.LogLevel
	}
	log, err := logging.New(level, logging.Console(a.stderr))
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func (a *app) teardown() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	return err
}

func (a *app) now() time.Time {
	if a.opts.Now != nil {
		return a.opts.Now()
	}
	return time.Now()
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

// needsStore reports whether cmd touches tasks. Help and shell completion
// must work without a readable config or store.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
	}
	return true
}
