package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/renderer"
)

type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show all account balances and month activity" }
func (*summaryCmd) Usage() string {
	return `fbk summary [-d <date>]

  Shows every account's balance on the date (defaults to today) and the in
  and out totals of that date's month.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Summary date (defaults to today).")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.SummaryMarkdown(renderer.NewSummary(store, on, app.Currency)))
	return subcommands.ExitSuccess
}

type budgetReportCmd struct {
	account string
	month   string
}

func (*budgetReportCmd) Name() string     { return "budget-report" }
func (*budgetReportCmd) Synopsis() string { return "show the budget state of an account for a month" }
func (*budgetReportCmd) Usage() string {
	return `fbk budget-report -account <account> [-month <YYYY-MM>]

  Shows each budget of the account for the month (defaults to the current
  month): cap, spending so far and what remains.
`
}

func (c *budgetReportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name or id.")
	f.StringVar(&c.month, "month", "", "Report month in YYYY-MM form (defaults to the current month).")
}

func (c *budgetReportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month := c.month
	if month == "" {
		month = finbook.Today().MonthKey()
	} else if _, err := finbook.ParseMonth(month); err != nil {
		fmt.Fprintln(os.Stderr, err)
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
	printMarkdown(renderer.BudgetMarkdown(renderer.NewBudgetReport(store, account.ID, month, app.Currency)))
	return subcommands.ExitSuccess
}
