package finbook

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BudgetStatus is a budget together with its spending so far and what is left
// of the cap. Remaining goes negative when the cap is exceeded.
type BudgetStatus struct {
	Budget    Budget `json:"budget"`
	Spent     Amount `json:"spent"`
	Remaining Amount `json:"remaining"`
}

// categorySubtree returns the ids of a category and its children. An unknown
// id yields just itself, so spending queries still count direct references.
func (s *Store) categorySubtree(id uuid.UUID) map[uuid.UUID]struct{} {
	subtree := map[uuid.UUID]struct{}{id: {}}
	for _, c := range s.categories {
		if c.Parent == id {
			subtree[c.ID] = struct{}{}
		}
	}
	return subtree
}

// CategoryMonthSpending sums the debit side of Paid transactions in the given
// month whose category is this one or one of its children.
func (s *Store) CategoryMonthSpending(categoryID uuid.UUID, on Date) Amount {
	subtree := s.categorySubtree(categoryID)
	var total Amount
	end := on.EndOfMonth()
	for _, t := range s.transactions {
		if t.When.After(end) {
			break
		}
		if t.Status != Paid || !t.When.SameMonth(on) {
			continue
		}
		if _, okk := subtree[t.Category]; !okk {
			continue
		}
		total = total.Add(t.Out)
	}
	return total
}

// BudgetSpending computes the spending counted against a budget: Paid debits
// on the budget's account, in the budget's month, in the budget category's
// subtree. A budget with an unparseable period spends nothing.
func (s *Store) BudgetSpending(b Budget) Amount {
	on, err := ParseMonth(b.When)
	if err != nil {
		s.logger.Warn("budget has invalid period", "budget", b.ID, "when", b.When)
		return Amount{}
	}
	subtree := s.categorySubtree(b.Category)
	var total Amount
	end := on.EndOfMonth()
	for _, t := range s.transactions {
		if t.When.After(end) {
			break
		}
		if t.Status != Paid || t.Account != b.Account || !t.When.SameMonth(on) {
			continue
		}
		if _, okk := subtree[t.Category]; !okk {
			continue
		}
		total = total.Add(t.Out)
	}
	return total
}

// BudgetRemainingAt reports the status of every budget scoped to this account
// and month, ordered by budget amount descending so the largest caps lead.
func (s *Store) BudgetRemainingAt(accountID uuid.UUID, month string) []BudgetStatus {
	var statuses []BudgetStatus
	for _, b := range s.Budgets() {
		if b.Account != accountID || b.When != month {
			continue
		}
		spent := s.BudgetSpending(b)
		statuses = append(statuses, BudgetStatus{
			Budget:    b,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
		})
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Budget.Amount.GreaterThan(statuses[j].Budget.Amount)
	})
	return statuses
}

// BudgetQuery is the filter/sort/pagination state for budget listings.
// Month and Name narrow the list; Page is 1-based, PerPage 0 disables paging.
type BudgetQuery struct {
	Month     string
	Name      string
	Column    string // "when", "amount" or "category"
	Direction SortDirection
	Page      int
	PerPage   int
}

// BudgetPage is one page of budget statuses plus the total filtered count.
type BudgetPage struct {
	Items []BudgetStatus `json:"items"`
	Total int            `json:"total"`
}

// PaginatedBudgets filters budgets by month and category name, sorts and
// slices one page, computing spending only for the surviving records.
func (s *Store) PaginatedBudgets(q BudgetQuery) BudgetPage {
	name := strings.ToLower(strings.TrimSpace(q.Name))
	var kept []Budget
	for _, b := range s.Budgets() {
		if q.Month != "" && b.When != q.Month {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(s.categoryName(b.Category)), name) {
			continue
		}
		kept = append(kept, b)
	}

	var less func(a, b Budget) bool
	switch q.Column {
	case "amount":
		less = func(a, b Budget) bool { return a.Amount.LessThan(b.Amount) }
	case "category":
		less = func(a, b Budget) bool { return s.categoryName(a.Category) < s.categoryName(b.Category) }
	default:
		less = func(a, b Budget) bool { return a.When < b.When }
	}
	sort.SliceStable(kept, func(i, j int) bool { return less(kept[i], kept[j]) })
	if q.Direction == Desc {
		for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
			kept[i], kept[j] = kept[j], kept[i]
		}
	}

	total := len(kept)
	if q.PerPage > 0 {
		start := (q.Page - 1) * q.PerPage
		if start < 0 {
			start = 0
		}
		if start > total {
			start = total
		}
		end := start + q.PerPage
		if end > total {
			end = total
		}
		kept = kept[start:end]
	}

	items := make([]BudgetStatus, 0, len(kept))
	for _, b := range kept {
		spent := s.BudgetSpending(b)
		items = append(items, BudgetStatus{Budget: b, Spent: spent, Remaining: b.Amount.Sub(spent)})
	}
	return BudgetPage{Items: items, Total: total}
}

func (s *Store) categoryName(id uuid.UUID) string {
	if c, okk := s.categories[id]; okk {
		return c.Name
	}
	return ""
}
