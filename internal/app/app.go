// Package app wires the configuration, the engine, the dispatcher and the
// history store together and runs the selected mode: CLI, worker, TUI or
// HTTP server.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/engine"
	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/logging"
	"github.com/agbru/fibbench/internal/orchestration"
	"github.com/agbru/fibbench/internal/server"
	"github.com/agbru/fibbench/internal/sysmon"
	"github.com/agbru/fibbench/internal/tui"
	"github.com/agbru/fibbench/internal/ui"
)

// Application is one fibbench invocation.
type Application struct {
	Config    config.AppConfig
	In        io.Reader
	ErrWriter io.Writer
	// Computer overrides the engine built from the configuration.
	Computer engine.Computer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithComputer replaces the engine. Used by tests.
func WithComputer(c engine.Computer) AppOption {
	return func(a *Application) { a.Computer = c }
}

// WithInput sets the reader used in worker mode. Defaults to os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New parses args (args[0] is the program name) into an Application.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	logOut := a.ErrWriter
	if a.Config.TUI {
		logOut = io.Discard
	}
	if err := logging.Setup(logging.Options{Level: a.Config.LogLevel, Output: logOut, Console: !a.Config.Worker}); err != nil {
		fmt.Fprintln(a.ErrWriter, "Configuration error:", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.NoColor)

	computer, budget, err := a.computer()
	if err != nil {
		fmt.Fprintln(a.ErrWriter, "Configuration error:", err)
		return apperrors.ExitErrorConfig
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Worker {
		return a.runWorker(ctx, computer, out)
	}

	store := a.openHistory()
	if a.Config.ShowHistory || a.Config.ShowStats || a.Config.ClearHistory {
		return a.runHistory(store, out)
	}

	switch {
	case a.Config.TUI:
		return a.runTUI(ctx, computer, store)
	case a.Config.Server:
		return a.runServer(ctx, computer, store)
	}
	return a.runCalculate(ctx, computer, store, budget, out)
}

// openHistory loads the history file. A file that cannot be read is
// reported and replaced by an empty history.
func (a *Application) openHistory() *history.Store {
	store := history.NewStore(
		history.WithCapacity(a.Config.HistorySize),
		history.WithPath(a.Config.HistoryFile),
	)
	if err := store.Load(a.Config.HistoryFile); err != nil {
		logging.Component("history").Warn("ignoring history file", logging.Err(err))
		if errors.Is(err, history.ErrCorrupt) {
			fmt.Fprintf(a.ErrWriter, "%sWarning: %v; starting with an empty history.%s\n", ui.ColorYellow(), err, ui.ColorReset())
		}
	}
	return store
}

// computer returns the engine and the memory budget it enforces.
func (a *Application) computer() (engine.Computer, uint64, error) {
	budget, err := a.Config.MemoryBudget(sysmon.DefaultMemoryBudget)
	if err != nil {
		return nil, 0, err
	}
	if a.Computer != nil {
		return a.Computer, budget, nil
	}
	return engine.New(
		engine.WithRecursionLimit(a.Config.RecursionLimit),
		engine.WithMemoryLimit(budget),
	), budget, nil
}

func (a *Application) newDispatcher(c engine.Computer, store *history.Store, opts ...orchestration.DispatcherOption) *orchestration.Dispatcher {
	opts = append([]orchestration.DispatcherOption{
		orchestration.WithSink(store),
		orchestration.WithLogger(logging.Component("dispatcher")),
	}, opts...)
	return orchestration.NewDispatcher(c, opts...)
}

// stopDispatcher waits for the worker unless a computation is still
// outstanding, in which case it is abandoned with the process.
func stopDispatcher(d *orchestration.Dispatcher) {
	if d.Busy() {
		logging.Component("dispatcher").Warn("abandoning an outstanding computation")
		return
	}
	if err := d.Wait(); err != nil {
		logging.Component("dispatcher").Error("worker stopped with an error", err)
	}
}

func (a *Application) runTUI(ctx context.Context, c engine.Computer, store *history.Store) int {
	algos, _ := a.Config.Algorithms()
	bridge := tui.NewBridge()
	d := a.newDispatcher(c, store, orchestration.WithObserver(bridge.Observe))
	d.Start(ctx)
	defer stopDispatcher(d)

	return tui.Run(ctx, bridge, tui.Options{
		Runner:     d,
		Store:      store,
		Algorithms: algos,
		N:          a.Config.N,
		Timeout:    a.Config.Timeout,
		ExportDir:  a.Config.ExportFile,
		Version:    Version,
	})
}

func (a *Application) runServer(ctx context.Context, c engine.Computer, store *history.Store) int {
	d := a.newDispatcher(c, store)
	d.Start(ctx)
	defer stopDispatcher(d)

	srv := server.NewServer(d, store, ":"+a.Config.Port,
		server.WithRequestTimeout(a.Config.Timeout),
		server.WithMaxN(a.Config.MaxN),
	)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintln(a.ErrWriter, "Error:", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
