package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/renderer"
)

type txAddCmd struct {
	account  string
	desc     string
	category string
	in       string
	out      string
	when     string
	pending  bool
}

func (*txAddCmd) Name() string     { return "tx-add" }
func (*txAddCmd) Synopsis() string { return "record a transaction" }
func (*txAddCmd) Usage() string {
	return `fbk tx-add -account <account> -desc <text> (-in <amount> | -out <amount>) [-when <date>] [-category <category>] [-pending]

  Records a single transaction. Use -in for money entering the account and
  -out for money leaving it.

Usage Examples:
$ fbk tx-add -account "Main Checking" -desc "Supermarket" -out 42.50 -when 2025-03-10
$ fbk tx-add -account "Main Checking" -desc "Salary" -in 2500 -category Income

`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name or id.")
	f.StringVar(&c.desc, "desc", "", "Transaction description.")
	f.StringVar(&c.category, "category", "", "Optional category name or id.")
	f.StringVar(&c.in, "in", "0", "Credit amount.")
	f.StringVar(&c.out, "out", "0", "Debit amount.")
	f.StringVar(&c.when, "when", "", "Transaction date (defaults to today).")
	f.BoolVar(&c.pending, "pending", false, "Record as pending instead of paid.")
}

func (c *txAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := finbook.ParseAmount(c.in)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	out, err := finbook.ParseAmount(c.out)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	when := finbook.Today()
	if c.when != "" {
		when, err = finbook.ParseDate(c.when)
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

	status := finbook.Paid
	if c.pending {
		status = finbook.Pending
	}
	tx := finbook.NewTransaction(account.ID, c.desc, in, out, when, status)
	if c.category != "" {
		category, err := resolveCategory(store, c.category)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		tx.Category = category.ID
	}

	if r := store.AddTransaction(tx); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %q on %s (%s)\n", tx.Desc, account.Name, tx.ID)
	return subcommands.ExitSuccess
}

type txListCmd struct {
	account string
	year    int
	month   int
	day     int
	desc    string
	pending bool
	sortBy  string
	desc2   bool
	page    int
	perPage int
}

func (*txListCmd) Name() string     { return "tx-list" }
func (*txListCmd) Synopsis() string { return "list transactions with filters and pagination" }
func (*txListCmd) Usage() string {
	return `fbk tx-list [-account <account>] [-year <y> [-month <m> [-day <d>]]] [-grep <text>] [-pending] [-sort <column>] [-desc] [-page <n>] [-per-page <n>]

  Lists transactions one page at a time. Pending transactions are hidden
  unless -pending is given.
`
}

func (c *txListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Only transactions of this account.")
	f.IntVar(&c.year, "year", 0, "Only transactions of this year.")
	f.IntVar(&c.month, "month", 0, "Only transactions of this month (needs -year).")
	f.IntVar(&c.day, "day", 0, "Only transactions of this day (needs -month).")
	f.StringVar(&c.desc, "grep", "", "Only transactions whose description contains this text.")
	f.BoolVar(&c.pending, "pending", false, "Include pending transactions.")
	f.StringVar(&c.sortBy, "sort", "", "Sort column: when, desc, account, category, in, out, status.")
	f.BoolVar(&c.desc2, "desc", false, "Sort descending.")
	f.IntVar(&c.page, "page", 1, "Page number (1-based).")
	f.IntVar(&c.perPage, "per-page", 0, "Page size (defaults to the configured page size).")
}

func (c *txListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	perPage := c.perPage
	if perPage <= 0 {
		perPage = app.PageSize
	}
	q := finbook.Query{
		ShowPending: c.pending,
		Page:        c.page,
		PerPage:     perPage,
	}
	if c.account != "" {
		account, err := resolveAccount(store, c.account)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		q.Filters = append(q.Filters, finbook.Filter{Column: "account", By: finbook.OpEq, Value: account.ID.String()})
	}
	if c.desc != "" {
		q.Filters = append(q.Filters, finbook.Filter{Column: "desc", By: finbook.OpIn, Value: c.desc})
	}
	if c.year != 0 {
		q.Day = &finbook.DayFilter{Year: c.year, Month: time.Month(c.month), Day: c.day}
	}
	if c.sortBy != "" {
		direction := finbook.Asc
		if c.desc2 {
			direction = finbook.Desc
		}
		q.Sort = &finbook.Sort{Column: c.sortBy, Direction: direction}
	}

	printMarkdown(renderer.TransactionsMarkdown(renderer.NewTransactionTable(store, q, app.Currency)))
	return subcommands.ExitSuccess
}

type txRemoveCmd struct{}

func (*txRemoveCmd) Name() string     { return "tx-remove" }
func (*txRemoveCmd) Synopsis() string { return "remove a transaction" }
func (*txRemoveCmd) Usage() string {
	return `fbk tx-remove <id>

  Removes a transaction by id. If it was half of a transfer, the other half
  is kept and un-linked.
`
}

func (*txRemoveCmd) SetFlags(*flag.FlagSet) {}

func (*txRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one transaction id")
		return subcommands.ExitUsageError
	}
	id, err := uuid.Parse(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid transaction id %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if r := store.RemoveTransaction(id); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed transaction %s\n", id)
	return subcommands.ExitSuccess
}
