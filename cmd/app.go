// Package cmd implements the CLI application to manage a finbook ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/subcommands"

	"github.com/finbook/finbook"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountAddCmd{}, "accounts")
	c.Register(&accountListCmd{}, "accounts")
	c.Register(&accountRemoveCmd{}, "accounts")

	c.Register(&categoryAddCmd{}, "categories")
	c.Register(&categoryListCmd{}, "categories")
	c.Register(&categoryRemoveCmd{}, "categories")

	c.Register(&txAddCmd{}, "transactions")
	c.Register(&txListCmd{}, "transactions")
	c.Register(&txRemoveCmd{}, "transactions")
	c.Register(&importCmd{}, "transactions")

	c.Register(&budgetAddCmd{}, "budgets")
	c.Register(&budgetListCmd{}, "budgets")
	c.Register(&budgetRemoveCmd{}, "budgets")

	c.Register(&balanceCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&budgetReportCmd{}, "reports")

	c.Register(&fmtCmd{}, "ledger")
	c.Register(&topicCmd{}, "ledger")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the config file (defaults to ~/.finbook.yaml)")
var snapshotFile = flag.String("file", "", "Path to the snapshot file (overrides the config)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// app holds the resolved configuration for this invocation.
var app Config

// Setup resolves configuration and installs the logger. Called by main after
// flag parsing, before command execution.
func Setup() error {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	if *snapshotFile != "" {
		cfg.Snapshot = *snapshotFile
	}
	app = cfg
	return nil
}

// decodeStore loads the snapshot file into a fresh store. A missing file is
// not an error: it yields an empty store, so the first command bootstraps the
// ledger.
func decodeStore() (*finbook.Store, error) {
	store := finbook.NewStore()
	f, err := os.Open(app.Snapshot)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("snapshot does not exist, starting empty", "file", app.Snapshot)
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open snapshot %q: %w", app.Snapshot, err)
	}
	defer f.Close()

	snap, err := finbook.DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot %q: %w", app.Snapshot, err)
	}
	store.Restore(snap)
	return store, nil
}

// encodeStore writes the store back to the snapshot file in canonical form.
func encodeStore(store *finbook.Store) error {
	f, err := os.Create(app.Snapshot)
	if err != nil {
		return fmt.Errorf("cannot write snapshot %q: %w", app.Snapshot, err)
	}
	defer f.Close()
	return finbook.EncodeSnapshot(f, store.Snapshot())
}

// fail prints an engine response's error codes to stderr.
func fail(r finbook.Response) subcommands.ExitStatus {
	for _, code := range r.Errors {
		fmt.Fprintln(os.Stderr, "Error:", code)
	}
	return subcommands.ExitFailure
}
