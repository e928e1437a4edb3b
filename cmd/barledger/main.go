// Package main is the entry point for barledger, a command-line shell over
// the bar's inventory and cash ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prn-tf/barledger/internal/config"
	"github.com/prn-tf/barledger/internal/logging"
	"github.com/prn-tf/barledger/internal/manager"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("barledger", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	dbPath := fs.String("db", "", "path to the SQLite database (overrides database.path)")
	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}

	command := "shell"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}

	switch command {
	case "version":
		fmt.Fprintf(stdout, "barledger\n")
		fmt.Fprintf(stdout, "Version: %s\n", Version)
		fmt.Fprintf(stdout, "Build Time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "Git Commit: %s\n", GitCommit)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "init", "shell":
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr, err := manager.OpenConfig(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Database.Path).Msg("failed to open store")
		fmt.Fprintf(stderr, "error: cannot open %s: %v\n", cfg.Database.Path, err)
		return 1
	}
	defer mgr.Close()

	if cfg.Bootstrap.Enabled {
		created, err := mgr.Bootstrap(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		if created {
			fmt.Fprintf(stdout, "Created first-run account %q.\n", cfg.Bootstrap.Username)
		}
	}

	if command == "init" {
		fmt.Fprintf(stdout, "Store ready at %s\n", cfg.Database.Path)
		return 0
	}

	sh := newShell(mgr, stdin, stdout, cfg.Metrics.Enabled, logger)
	if err := sh.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("shell terminated")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `barledger - bar inventory and cash ledger

Usage:
  barledger [-config file] [-db path] [command]

Commands:
  shell       Log in and manage drinks and transactions (default)
  init        Create the database and the first-run account, then exit
  version     Print version information
  help        Show this help message

Environment Variables:
  BARLEDGER_DATABASE_PATH     SQLite file (default bar_management.db)
  BARLEDGER_LOGGING_LEVEL     trace, debug, info, warn, error
  BARLEDGER_BOOTSTRAP_ENABLED create the first-run account when no user exists

Examples:
  barledger init
  barledger -db /var/lib/bar/bar.db`)
}
