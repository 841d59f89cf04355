package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finbook/finbook/ofx"
)

type importCmd struct {
	account string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import an OFX/QFX bank statement" }
func (*importCmd) Usage() string {
	return `fbk import -account <account> <statement.ofx>

  Imports a bank statement into one account. Statement entries already
  imported are skipped, matching movements on other accounts are linked as
  transfers, and matching pending transactions are promoted to paid. See
  'fbk topic import'.

Usage Examples:
$ fbk import -account "Main Checking" march.ofx

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account the statement belongs to (name or id).")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one statement file")
		return subcommands.ExitUsageError
	}
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account, err := resolveAccount(store, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening statement %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	stmt, err := ofx.Parse(file, account.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing statement %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	added := 0
	for _, r := range ofx.Import(store, stmt) {
		if r.Success {
			added++
		}
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d of %d statement transactions into %q\n",
		added, len(stmt.Transactions), account.Name)
	return subcommands.ExitSuccess
}
