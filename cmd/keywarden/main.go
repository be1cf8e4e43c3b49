// Package main is the entry point for the keywarden input dispatcher.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/dshills/keywarden/internal/config"
	"github.com/dshills/keywarden/internal/dispatch"
	"github.com/dshills/keywarden/internal/event"
	"github.com/dshills/keywarden/internal/handlers"
	"github.com/dshills/keywarden/internal/input/key"
	"github.com/dshills/keywarden/internal/logging"
	"github.com/dshills/keywarden/internal/script"
	"github.com/dshills/keywarden/internal/security"
	"github.com/dshills/keywarden/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath, devMode := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if devMode {
		cfg.BuildMode = security.Development
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logger := logging.New(logCfg)

	bus := event.NewBus()
	secCtx := security.NewContext(cfg.BuildMode, cfg.MaxSession,
		security.WithLogger(logger.WithComponent("security")),
		security.WithBus(bus))
	flags := security.Seed(secCtx, logger.WithComponent("flags"), bus)
	if err := cfg.ApplyFlagOverrides(secCtx, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	registry := dispatch.NewRegistry(
		dispatch.WithLogger(logger.WithComponent("registry")),
		dispatch.WithBus(bus))
	registry.SetDebugLogging(cfg.DebugInput)
	metrics := dispatch.NewMetrics()
	guard := security.NewDispatchGuard(secCtx, flags, logger.WithComponent("guard"))

	err = handlers.Install(registry, guard, handlers.Deps{
		State:    handlers.NewState(),
		Security: secCtx,
		Flags:    flags,
		Metrics:  metrics,
		Logger:   logger.WithComponent("handlers"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.ScriptDir != "" {
		if err := loadScripts(registry, cfg.ScriptDir, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	router := dispatch.NewRouter(registry,
		dispatch.WithGuard(guard),
		dispatch.WithMetrics(metrics),
		dispatch.WithRouterLogger(logger.WithComponent("router")))

	source, err := terminal.NewSource(logger.WithComponent("terminal"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer source.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("keywarden %s started in %s mode", version, cfg.BuildMode)

	err = source.Run(ctx, func(ev key.Event) {
		if ev.Key == key.KeyEscape {
			stop()
			return
		}
		router.Dispatch(ev)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	snap := metrics.Snapshot()
	logger.Info("shutting down: %d dispatches, %d consumed, %d unhandled",
		snap.TotalDispatches, snap.TotalConsumed, snap.TotalUnhandled)
	return 0
}

// loadScripts registers every .lua file in dir as a scripted handler,
// identified by its base name.
func loadScripts(registry *dispatch.Registry, dir string, logger *logging.Logger) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		id := "script_" + filepath.Base(path[:len(path)-len(".lua")])
		h, err := script.LoadFile(id, path, script.WithLogger(logger.WithComponent("script")))
		if err != nil {
			return err
		}
		if err := registry.Register(h); err != nil {
			h.Close()
			return err
		}
	}
	return nil
}

func parseFlags() (configPath string, devMode bool) {
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&devMode, "dev", false, "Run in development mode")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keywarden - input dispatch and debug authorization\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keywarden [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPress Escape to quit. Backtick toggles the admin session\n")
		fmt.Fprintf(os.Stderr, "in development mode; F12 shows security status.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Keywarden %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}
	return configPath, devMode
}
