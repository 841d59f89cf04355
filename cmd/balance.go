package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finbook/finbook"
)

type balanceCmd struct {
	account     string
	date        string
	pending     bool
	pendingOnly bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show an account balance on a date" }
func (*balanceCmd) Usage() string {
	return `fbk balance -account <account> [-d <date>] [-pending | -pending-only]

  Shows the account balance on a date (defaults to today), along with the
  month's in and out totals. By default only paid transactions count;
  -pending adds pending ones, -pending-only shows the anticipated movements
  alone.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name or id.")
	f.StringVar(&c.date, "d", "", "Balance date (defaults to today).")
	f.BoolVar(&c.pending, "pending", false, "Include pending transactions.")
	f.BoolVar(&c.pendingOnly, "pending-only", false, "Count only pending transactions, without the starting balance.")
}

func (c *balanceCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pending && c.pendingOnly {
		fmt.Fprintln(os.Stderr, "Error: -pending and -pending-only cannot be used together.")
		return subcommands.ExitUsageError
	}
	on := finbook.Today()
	if c.date != "" {
		var err error
		on, err = finbook.ParseDate(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
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

	balance := store.AccountBalanceAt(account.ID, on, c.pending, c.pendingOnly)
	in := store.AccountMonthInAt(account.ID, on, c.pending, c.pendingOnly)
	out := store.AccountMonthOutAt(account.ID, on, c.pending, c.pendingOnly)

	fmt.Printf("%s on %s: %s (month in %s, out %s)\n",
		account.Name, on,
		balance.Display(app.Currency),
		in.Display(app.Currency),
		out.Display(app.Currency))
	return subcommands.ExitSuccess
}
