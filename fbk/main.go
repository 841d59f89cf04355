package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/finbook/finbook/cmd"
)

// completion describes the command tree for shell completion. It runs before
// flag parsing and exits on its own when a completion is requested.
func completion() {
	leaf := func(flags map[string]complete.Predictor) *complete.Command {
		return &complete.Command{Flags: flags}
	}
	name := predict.Something
	fbk := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"file":   predict.Files("*.json"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"account-add":     leaf(map[string]complete.Predictor{"name": name, "type": predict.Set{"debit", "credit", "saving", "loan"}, "starting": name}),
			"account-list":    leaf(nil),
			"account-remove":  leaf(nil),
			"category-add":    leaf(map[string]complete.Predictor{"name": name, "desc": name, "parent": name}),
			"category-list":   leaf(nil),
			"category-remove": leaf(nil),
			"tx-add":          leaf(map[string]complete.Predictor{"account": name, "desc": name, "category": name, "in": name, "out": name, "when": name, "pending": predict.Nothing}),
			"tx-list":         leaf(map[string]complete.Predictor{"account": name, "year": name, "month": name, "day": name, "grep": name, "pending": predict.Nothing, "sort": predict.Set{"when", "desc", "account", "category", "in", "out", "status"}, "desc": predict.Nothing, "page": name, "per-page": name}),
			"tx-remove":       leaf(nil),
			"import":          {Flags: map[string]complete.Predictor{"account": name}, Args: predict.Files("*.ofx")},
			"budget-add":      leaf(map[string]complete.Predictor{"account": name, "category": name, "month": name, "amount": name}),
			"budget-list":     leaf(map[string]complete.Predictor{"month": name, "category": name, "sort": predict.Set{"when", "amount", "category"}, "desc": predict.Nothing, "page": name, "per-page": name}),
			"budget-remove":   leaf(nil),
			"balance":         leaf(map[string]complete.Predictor{"account": name, "d": name, "pending": predict.Nothing, "pending-only": predict.Nothing}),
			"summary":         leaf(map[string]complete.Predictor{"d": name}),
			"budget-report":   leaf(map[string]complete.Predictor{"account": name, "month": name}),
			"fmt":             leaf(nil),
			"topic":           leaf(nil),
		},
	}
	fbk.Complete("fbk")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.Setup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(int(commander.Execute(context.Background())))
}
