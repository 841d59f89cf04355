package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/finbook/finbook"
)

type accountAddCmd struct {
	name     string
	aType    string
	starting string
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "create a new account" }
func (*accountAddCmd) Usage() string {
	return `fbk account-add -name <name> -type <debit|credit|saving|loan> [-starting <amount>]

  Creates a new account. The starting balance is the balance before the first
  recorded transaction.

Usage Examples:
$ fbk account-add -name "Main Checking" -type debit -starting 1250.00

`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (unique).")
	f.StringVar(&c.aType, "type", "debit", "Account type: debit, credit, saving or loan.")
	f.StringVar(&c.starting, "starting", "0", "Starting balance.")
}

func (c *accountAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := finbook.ParseAccountType(c.aType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	starting, err := finbook.ParseAmount(c.starting)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account := finbook.NewAccount(c.name, starting, at)
	if r := store.AddAccount(account); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created account %q (%s)\n", account.Name, account.ID)
	return subcommands.ExitSuccess
}

type accountListCmd struct{}

func (*accountListCmd) Name() string     { return "account-list" }
func (*accountListCmd) Synopsis() string { return "list all accounts" }
func (*accountListCmd) Usage() string {
	return `fbk account-list

  Lists all accounts with their current balance.
`
}

func (*accountListCmd) SetFlags(*flag.FlagSet) {}

func (*accountListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Accounts\n\n")
	b.WriteString("| Account | Type | Balance | Id |\n|---|---|---:|---|\n")
	for _, a := range store.Accounts() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.Name, a.Type, a.Balance.Display(app.Currency), a.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type accountRemoveCmd struct{}

func (*accountRemoveCmd) Name() string     { return "account-remove" }
func (*accountRemoveCmd) Synopsis() string { return "remove an account and its transactions" }
func (*accountRemoveCmd) Usage() string {
	return `fbk account-remove <account>

  Removes an account by name or id. All of its transactions are removed;
  transfer partners on other accounts are kept and un-linked.
`
}

func (*accountRemoveCmd) SetFlags(*flag.FlagSet) {}

func (*accountRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one account name or id")
		return subcommands.ExitUsageError
	}
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	account, err := resolveAccount(store, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if r := store.RemoveAccount(account.ID); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed account %q\n", account.Name)
	return subcommands.ExitSuccess
}
