package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

type budgetAddCmd struct {
	account  string
	category string
	month    string
	amount   string
}

func (*budgetAddCmd) Name() string     { return "budget-add" }
func (*budgetAddCmd) Synopsis() string { return "set a monthly spending cap" }
func (*budgetAddCmd) Usage() string {
	return `fbk budget-add -account <account> -category <category> -month <YYYY-MM> -amount <amount>

  Sets a spending cap for one account and category in one month. Spending in
  the category's children counts against the cap too.

Usage Examples:
$ fbk budget-add -account "Main Checking" -category Groceries -month 2025-03 -amount 300

`
}

func (c *budgetAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account name or id.")
	f.StringVar(&c.category, "category", "", "Category name or id.")
	f.StringVar(&c.month, "month", "", "Budget month in YYYY-MM form.")
	f.StringVar(&c.amount, "amount", "", "Cap amount.")
}

func (c *budgetAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	amount, err := finbook.ParseAmount(c.amount)
	if err != nil {
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
	category, err := resolveCategory(store, c.category)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	budget := finbook.NewBudget(category.ID, account.ID, c.month, amount)
	if r := store.AddBudget(budget); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created budget for %q in %s (%s)\n", category.Name, c.month, budget.ID)
	return subcommands.ExitSuccess
}

type budgetListCmd struct {
	month   string
	name    string
	sortBy  string
	reverse bool
	page    int
	perPage int
}

func (*budgetListCmd) Name() string     { return "budget-list" }
func (*budgetListCmd) Synopsis() string { return "list budgets with their spending state" }
func (*budgetListCmd) Usage() string {
	return `fbk budget-list [-month <YYYY-MM>] [-category <text>] [-sort <when|amount|category>] [-desc] [-page <n>] [-per-page <n>]

  Lists budgets one page at a time, with the spending counted against each
  cap and what remains.
`
}

func (c *budgetListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Only budgets of this month.")
	f.StringVar(&c.name, "category", "", "Only budgets whose category name contains this text.")
	f.StringVar(&c.sortBy, "sort", "when", "Sort column: when, amount or category.")
	f.BoolVar(&c.reverse, "desc", false, "Sort descending.")
	f.IntVar(&c.page, "page", 1, "Page number (1-based).")
	f.IntVar(&c.perPage, "per-page", 0, "Page size (defaults to the configured page size).")
}

func (c *budgetListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	perPage := c.perPage
	if perPage <= 0 {
		perPage = app.PageSize
	}
	direction := finbook.Asc
	if c.reverse {
		direction = finbook.Desc
	}
	page := store.PaginatedBudgets(finbook.BudgetQuery{
		Month:     c.month,
		Name:      c.name,
		Column:    c.sortBy,
		Direction: direction,
		Page:      c.page,
		PerPage:   perPage,
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# Budgets (%d matching)\n\n", page.Total)
	b.WriteString("| Month | Category | Account | Cap | Spent | Remaining | Id |\n|---|---|---|---:|---:|---:|---|\n")
	for _, status := range page.Items {
		categoryName := ""
		if cat, okk := store.CategoryByID(status.Budget.Category); okk {
			categoryName = cat.Name
		}
		accountName := ""
		if a, okk := store.AccountByID(status.Budget.Account); okk {
			accountName = a.Name
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			status.Budget.When, categoryName, accountName,
			status.Budget.Amount.Display(app.Currency),
			status.Spent.Display(app.Currency),
			status.Remaining.Display(app.Currency),
			status.Budget.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type budgetRemoveCmd struct{}

func (*budgetRemoveCmd) Name() string     { return "budget-remove" }
func (*budgetRemoveCmd) Synopsis() string { return "remove a budget" }
func (*budgetRemoveCmd) Usage() string {
	return `fbk budget-remove <id>

  Removes a budget by id.
`
}

func (*budgetRemoveCmd) SetFlags(*flag.FlagSet) {}

func (*budgetRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one budget id")
		return subcommands.ExitUsageError
	}
	id, err := uuid.Parse(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid budget id %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if r := store.RemoveBudget(id); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed budget %s\n", id)
	return subcommands.ExitSuccess
}
