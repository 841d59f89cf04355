package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite the snapshot file into its canonical form"
}
func (*fmtCmd) Usage() string {
	return `fbk fmt

  Reads the snapshot, recomputes balances and usage counters, drops orphaned
  transactions and writes the file back with stable field and array order.

Usage Examples:
# Rewrites the default snapshot file.
$ fbk fmt

`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %q\n", app.Snapshot)
	return subcommands.ExitSuccess
}
