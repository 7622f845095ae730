// Command mashcalc is a batch, strip, proofing and bottling calculator for a small
// distillery.
//
// Usage:
//
//	mashcalc [--config mashcalc.yaml] <command> [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mashcalc/internal/config"
	"github.com/hammamikhairi/mashcalc/internal/definitions"
	"github.com/hammamikhairi/mashcalc/internal/display"
	"github.com/hammamikhairi/mashcalc/internal/domain"
	"github.com/hammamikhairi/mashcalc/internal/engine"
	"github.com/hammamikhairi/mashcalc/internal/logger"
	"github.com/hammamikhairi/mashcalc/internal/rules"
	"github.com/hammamikhairi/mashcalc/internal/scaler"
	"github.com/hammamikhairi/mashcalc/internal/storage"
)

// Version is set via ldflags.
var Version = "dev"

// memoryDB selects the in-memory scenario store instead of a bbolt file.
const memoryDB = ":memory:"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	if cerr := a.teardown(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err in the urgent style. It does not depend on setup
// having run, since config or definition errors happen before the renderer
// exists.
func reportError(w io.Writer, err error) {
	display.New(w).Error(err)
}

// app holds the wired dependencies for one command invocation.
type app struct {
	cfgFile string

	cfg     *config.Config
	log     *logger.Logger
	defs    *definitions.Registry
	rules   rules.Table
	engine  *engine.Engine
	scaler  *scaler.Scaler
	out     *display.Renderer
	store   domain.ScenarioStore
	closers []func() error
}

// setup loads configuration and wires the components. Runs before every
// subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	logOut, err := a.openLogOutput(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	format := logger.FormatConsole
	if cfg.LogFormat == "json" {
		format = logger.FormatJSON
	}
	a.log = logger.New(logger.ParseLevel(cfg.LogLevel), logOut, logger.WithFormat(format))
	if cfg.FileUsed != "" {
		a.log.Debug("using config file %s", cfg.FileUsed)
	}

	a.defs = definitions.NewRegistry(a.log.With("definitions"))
	if cfg.DefinitionsFile != "" {
		if err := a.defs.LoadFile(cfg.DefinitionsFile); err != nil {
			return err
		}
	}

	a.rules = rules.Default()
	a.engine = engine.New(a.defs, a.rules, a.log.With("engine"),
		engine.WithStripDefaults(cfg.ChargeFillPercent, cfg.LowWinesABV),
	)
	a.scaler = scaler.New(a.defs, a.log.With("scaler"),
		scaler.WithSugarDisplacement(cfg.SugarDisplacement),
	)

	out := cmd.OutOrStdout()
	opts := []display.Option{display.WithJSON(cfg.JSONOutput())}
	if f, ok := out.(*os.File); ok && display.IsTerminal(f) {
		opts = append(opts, display.WithWidth(display.TermWidth(f)))
	}
	a.out = display.New(out, opts...)
	return nil
}

// openLogOutput returns stderr, or an append-mode log file.
func (a *app) openLogOutput(stderr io.Writer) (io.Writer, error) {
	path := a.cfg.LogFile
	if path == "" || path == "stderr" {
		return stderr, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	a.closers = append(a.closers, f.Close)
	return f, nil
}

// scenarios opens the configured scenario store on first use.
func (a *app) scenarios() (domain.ScenarioStore, error) {
	if a.store != nil {
		return a.store, nil
	}

	path := a.cfg.ScenarioDB
	if path == memoryDB {
		a.store = storage.NewMemoryStore(a.log.With("storage"))
		return a.store, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating scenario dir: %w", err)
		}
	}
	bs, err := storage.NewBoltStore(path, a.log.With("storage"))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		a.store = nil
		return bs.Close()
	})
	a.store = bs
	return a.store, nil
}

// teardown releases resources in reverse order of acquisition.
func (a *app) teardown() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
