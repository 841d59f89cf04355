package renderer

import (
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

// Terminal listing colors: transfers cyan, credits green, debits red.
var (
	transferColor = color.New(color.FgCyan)
	creditColor   = color.New(color.FgGreen)
	debitColor    = color.New(color.FgRed)
)

// ColorAmount formats the signed effect of a transaction for a terminal
// listing. Transfer halves take precedence over the credit/debit colors so a
// movement between own accounts never reads as income or spending.
func ColorAmount(t finbook.Transaction, currency string) string {
	display := t.Effect().Display(currency)
	switch {
	case t.OpID != uuid.Nil:
		return transferColor.Sprint(display)
	case !t.In.IsZero():
		return creditColor.Sprint(display)
	default:
		return debitColor.Sprint(display)
	}
}
