package renderer

import (
	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

// TransactionRow is one pre-formatted line of the transaction table.
type TransactionRow struct {
	When     string
	Desc     string
	Account  string
	Category string
	In       string
	Out      string
	Status   string
	Transfer bool
}

// TransactionTable is a page of transactions ready for rendering.
type TransactionTable struct {
	Rows  []TransactionRow
	Total int // size of the filtered set, not just this page
}

// NewTransactionTable runs the query and resolves account and category names
// for display. An unresolvable reference renders as empty.
func NewTransactionTable(s *finbook.Store, q finbook.Query, currency string) *TransactionTable {
	result := s.FetchTransactions(q)
	table := &TransactionTable{Total: result.Total}
	for _, t := range result.Items {
		row := TransactionRow{
			When:     t.When.String(),
			Desc:     t.Desc,
			Status:   string(t.Status),
			Transfer: t.OpID != uuid.Nil,
		}
		if a, okk := s.AccountByID(t.Account); okk {
			row.Account = a.Name
		}
		if c, okk := s.CategoryByID(t.Category); okk {
			row.Category = c.Name
		}
		if !t.In.IsZero() {
			row.In = t.In.Display(currency)
		}
		if !t.Out.IsZero() {
			row.Out = t.Out.Display(currency)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// TransactionsMarkdown renders the transaction table to a markdown string.
func TransactionsMarkdown(t *TransactionTable) string {
	return renderTemplate("transactions", "transactions.md", nil, t)
}
