package renderer

import (
	"github.com/finbook/finbook"
)

// Summary is the account overview on a given date.
type Summary struct {
	On       string
	Currency string
	Rows     []SummaryRow
	Total    string
}

// SummaryRow is one account line of the overview.
type SummaryRow struct {
	Name     string
	Type     string
	Balance  string
	MonthIn  string
	MonthOut string
}

// NewSummary builds the overview: each account's balance on the date and the
// in/out totals of that date's calendar month. Pending transactions are not
// counted.
func NewSummary(s *finbook.Store, on finbook.Date, currency string) *Summary {
	sum := &Summary{On: on.String(), Currency: currency}
	var total finbook.Amount
	for _, a := range s.Accounts() {
		balance := s.AccountBalanceAt(a.ID, on, false, false)
		total = total.Add(balance)
		sum.Rows = append(sum.Rows, SummaryRow{
			Name:     a.Name,
			Type:     string(a.Type),
			Balance:  balance.Display(currency),
			MonthIn:  s.AccountMonthInAt(a.ID, on, false, false).Display(currency),
			MonthOut: s.AccountMonthOutAt(a.ID, on, false, false).Display(currency),
		})
	}
	sum.Total = total.Display(currency)
	return sum
}

// SummaryMarkdown renders the account overview to a markdown string.
func SummaryMarkdown(s *Summary) string {
	return renderTemplate("summary", "summary.md", nil, s)
}
