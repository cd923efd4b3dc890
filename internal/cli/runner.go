package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Options wire the process streams. Nil fields default to os.Std*.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// exitError carries the exit code a failure maps to (1 runtime, 2 usage).
type exitError struct {
	code int
	msg  string
	hint string
}

func (e *exitError) Error() string { return e.msg }

func usageErr(format string, a ...any) error {
	return &exitError{code: 2, msg: fmt.Sprintf(format, a...)}
}

func failure(format string, a ...any) error {
	return &exitError{code: 1, msg: fmt.Sprintf(format, a...)}
}

// flags holds root flag values; empty strings leave config untouched.
type flags struct {
	config   string
	dir      string
	backend  string
	theme    string
	logLevel string
}

// app is the per-invocation state shared by subcommands.
type app struct {
	opt   Options
	flags flags

	cfg   config.Config
	theme ui.Theme
	log   *logrus.Logger
	store *store.Store

	closers []func() error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}

	a := &app{opt: opt, theme: ui.NewTheme("classic")}
	defer a.close()

	root := a.rootCommand()
	if len(args) == 0 {
		_ = root.Help()
		return 2
	}
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if !errors.As(err, &ee) {
		// cobra's own errors: unknown command, bad flags
		ee = &exitError{code: 2, msg: err.Error(), hint: "run `todo help` for usage"}
	}
	ui.Fail(opt.Stderr, a.theme, ee.msg)
	if ee.hint != "" {
		ui.Hint(opt.Stderr, a.theme, ee.hint)
	}
	return ee.code
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny list manager",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd.Name() == "ui")
		},
		Example: strings.Join([]string{
			`  todo add "Buy milk"`,
			"  todo ls --filter open",
			"  todo done 2",
			"  todo rm 3",
			"  todo ui",
		}, "\n"),
	}
	root.SetIn(a.opt.Stdin)
	root.SetOut(a.opt.Stdout)
	root.SetErr(a.opt.Stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr("%v", err)
	})
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default $TADA_CONFIG or ~/.config/tada/config.toml)")
	pf.StringVar(&a.flags.dir, "dir", "", "data directory")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json or sqlite")
	pf.StringVar(&a.flags.theme, "theme", "", "theme: "+strings.Join(ui.Themes, ", "))
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.addCommand(),
		a.listCommand(),
		a.doneCommand(),
		a.removeCommand(),
		a.editCommand(),
		a.clearDoneCommand(),
		a.clearAllCommand(),
		a.markAllCommand(),
		a.statsCommand(),
		a.uiCommand(),
	)
	return root
}

// setup loads config, builds the logger and opens the store.
func (a *app) setup(interactive bool) error {
	cfg, err := config.Load(a.flags.config)
	if err != nil {
		return failure("config: %v", err)
	}
	if a.flags.dir != "" {
		cfg.Storage.Dir = a.flags.dir
	}
	if a.flags.backend != "" {
		cfg.Storage.Backend = a.flags.backend
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return usageErr("%v", err)
	}
	a.cfg = cfg
	a.theme = ui.NewTheme(cfg.UI.Theme)

	// the TUI owns the terminal, so logs only go to an explicit file
	var fallback io.Writer = a.opt.Stderr
	if interactive {
		fallback = io.Discard
	}
	log, closeLog, err := logging.New(cfg.Log, fallback)
	if err != nil {
		return failure("log: %v", err)
	}
	a.log = log
	a.closers = append(a.closers, closeLog)

	slot, err := a.openSlot(cfg.Storage)
	if err != nil {
		return failure("load: %v", err)
	}
	a.store = store.New(slot, store.Options{
		Key:    cfg.Storage.Key,
		Logger: logging.Component(log, "store"),
	})
	return nil
}

func (a *app) openSlot(sc config.StorageConfig) (store.Slot, error) {
	switch sc.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(filepath.Join(sc.Dir, "tada.db"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	default:
		return jsonstore.New(sc.Dir), nil
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.log != nil {
			a.log.WithError(err).Warn("close failed")
		}
	}
}

// commit reports the outcome of the mutation just applied to the store.
func (a *app) commit(msg string) error {
	if err := a.store.PersistErr(); err != nil {
		return failure("save: %v", err)
	}
	ui.OK(a.opt.Stdout, a.theme, msg)
	return nil
}
