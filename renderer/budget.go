package renderer

import (
	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

// BudgetRow is one budget line with its spending state.
type BudgetRow struct {
	Category  string
	Cap       string
	Spent     string
	Remaining string
	Exceeded  bool
}

// BudgetReport is the budget state of one account for one month.
type BudgetReport struct {
	Account string
	Month   string
	Rows    []BudgetRow
}

// NewBudgetReport builds the budget report for an account and month.
func NewBudgetReport(s *finbook.Store, accountID uuid.UUID, month, currency string) *BudgetReport {
	report := &BudgetReport{Month: month}
	if a, okk := s.AccountByID(accountID); okk {
		report.Account = a.Name
	}
	for _, status := range s.BudgetRemainingAt(accountID, month) {
		row := BudgetRow{
			Cap:       status.Budget.Amount.Display(currency),
			Spent:     status.Spent.Display(currency),
			Remaining: status.Remaining.Display(currency),
			Exceeded:  status.Remaining.IsNegative(),
		}
		if c, okk := s.CategoryByID(status.Budget.Category); okk {
			row.Category = c.Name
		}
		report.Rows = append(report.Rows, row)
	}
	return report
}

// BudgetMarkdown renders the budget report to a markdown string.
func BudgetMarkdown(r *BudgetReport) string {
	return renderTemplate("budget", "budget.md", nil, r)
}
