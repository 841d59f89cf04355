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

type categoryAddCmd struct {
	name        string
	description string
	parent      string
}

func (*categoryAddCmd) Name() string     { return "category-add" }
func (*categoryAddCmd) Synopsis() string { return "create a new category" }
func (*categoryAddCmd) Usage() string {
	return `fbk category-add -name <name> [-desc <description>] [-parent <category>]

  Creates a category. With -parent, the category hangs under a top-level
  category; the tree is at most two levels deep.

Usage Examples:
$ fbk category-add -name "Food"
$ fbk category-add -name "Groceries" -parent Food

`
}

func (c *categoryAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Category name (unique, at least 3 characters).")
	f.StringVar(&c.description, "desc", "", "Optional description.")
	f.StringVar(&c.parent, "parent", "", "Parent category name or id, for a second-level category.")
}

func (c *categoryAddCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	parent := uuid.Nil
	if c.parent != "" {
		p, err := resolveCategory(store, c.parent)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		parent = p.ID
	}
	category := finbook.NewCategory(c.name, c.description, parent)
	if r := store.AddCategory(category); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created category %q (%s)\n", category.Name, category.ID)
	return subcommands.ExitSuccess
}

type categoryListCmd struct{}

func (*categoryListCmd) Name() string     { return "category-list" }
func (*categoryListCmd) Synopsis() string { return "list all categories" }
func (*categoryListCmd) Usage() string {
	return `fbk category-list

  Lists all categories with their parent and how many transactions use them.
`
}

func (*categoryListCmd) SetFlags(*flag.FlagSet) {}

func (*categoryListCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Categories\n\n")
	b.WriteString("| Category | Parent | Used | Id |\n|---|---|---:|---|\n")
	for _, c := range store.Categories() {
		parent := ""
		if p, okk := store.CategoryByID(c.Parent); okk {
			parent = p.Name
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", c.Name, parent, c.Used, c.ID)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

type categoryRemoveCmd struct{}

func (*categoryRemoveCmd) Name() string     { return "category-remove" }
func (*categoryRemoveCmd) Synopsis() string { return "remove a category and its children" }
func (*categoryRemoveCmd) Usage() string {
	return `fbk category-remove <category>

  Removes a category by name or id, together with its children. Transactions
  that referenced the removed categories become uncategorized.
`
}

func (*categoryRemoveCmd) SetFlags(*flag.FlagSet) {}

func (*categoryRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one category name or id")
		return subcommands.ExitUsageError
	}
	store, err := decodeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	category, err := resolveCategory(store, f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if r := store.RemoveCategory(category.ID); !r.Success {
		return fail(r)
	}
	if err := encodeStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed category %q\n", category.Name)
	return subcommands.ExitSuccess
}
