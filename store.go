package finbook

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Store is the sole authority over the canonical in-memory state of accounts,
// categories, budgets and transactions.
//
// It is a single-writer, non-concurrent model: every mutating operation runs
// to completion and leaves the store fully consistent before returning —
// balances and usage counters are never stale relative to the transaction
// list, except inside an explicit import batch (see AddTransactionBatch).
//
// In a Store transactions are always in chronological order.
type Store struct {
	accounts     map[uuid.UUID]Account
	categories   map[uuid.UUID]Category
	budgets      map[uuid.UUID]Budget
	transactions []Transaction

	logger    *slog.Logger
	observers []func()
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]Account),
		categories: make(map[uuid.UUID]Category),
		budgets:    make(map[uuid.UUID]Budget),
		logger:     slog.Default(),
	}
}

// SetLogger replaces the diagnostics logger. The store logs operator-facing
// events (orphan drops, ambiguous transfer candidates) and never formats
// user-facing text.
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Subscribe registers fn to be called after every successful mutation, so
// callers can refresh derived views. There is no unsubscribe; observers live
// as long as the store.
func (s *Store) Subscribe(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// stableSort sorts transactions by date. The sort is stable, so transactions
// on the same day keep their original relative order.
func (s *Store) stableSort() {
	sort.SliceStable(s.transactions, func(i, j int) bool {
		return s.transactions[i].When.Before(s.transactions[j].When)
	})
}

// --- lookups ---

// AccountByID returns the account with this id, if any.
func (s *Store) AccountByID(id uuid.UUID) (Account, bool) {
	a, okk := s.accounts[id]
	return a, okk
}

// CategoryByID returns the category with this id, if any.
func (s *Store) CategoryByID(id uuid.UUID) (Category, bool) {
	c, okk := s.categories[id]
	return c, okk
}

// BudgetByID returns the budget with this id, if any.
func (s *Store) BudgetByID(id uuid.UUID) (Budget, bool) {
	b, okk := s.budgets[id]
	return b, okk
}

// TransactionByID returns the transaction with this id, if any.
func (s *Store) TransactionByID(id uuid.UUID) (Transaction, bool) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return Transaction{}, false
}

// TopLevelCategory resolves a category to its top-level ancestor. For a child
// category that is its parent; for a top-level one, itself.
func (s *Store) TopLevelCategory(id uuid.UUID) (Category, bool) {
	c, okk := s.categories[id]
	if !okk {
		return Category{}, false
	}
	if c.Parent != uuid.Nil {
		if parent, okp := s.categories[c.Parent]; okp {
			return parent, true
		}
	}
	return c, true
}

// Accounts returns all accounts sorted by name.
func (s *Store) Accounts() []Account {
	accounts := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts
}

// Categories returns all categories sorted by name.
func (s *Store) Categories() []Category {
	categories := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories
}

// Budgets returns all budgets sorted by period.
func (s *Store) Budgets() []Budget {
	budgets := make([]Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		budgets = append(budgets, b)
	}
	sort.SliceStable(budgets, func(i, j int) bool { return budgets[i].When < budgets[j].When })
	return budgets
}

// Transactions returns a copy of the transaction list in its stored
// (chronological) order.
func (s *Store) Transactions() []Transaction {
	txs := make([]Transaction, len(s.transactions))
	copy(txs, s.transactions)
	return txs
}

// --- account mutations ---

// AddAccount validates and inserts a new account, then recomputes balances.
func (s *Store) AddAccount(a Account) Response {
	if codes := ValidateAccount(a); codes != nil {
		return fail(codes...)
	}
	a.Name = capitalize(a.Name)
	for _, existing := range s.accounts {
		if existing.ID == a.ID || existing.Name == a.Name {
			return fail(CodeAccountNameExists)
		}
	}
	s.accounts[a.ID] = a
	s.RecalculateBalances()
	s.notify()
	return ok()
}

// EditAccount replaces an account by id, then recomputes balances.
func (s *Store) EditAccount(a Account) Response {
	if codes := ValidateAccount(a); codes != nil {
		return fail(codes...)
	}
	if _, okk := s.accounts[a.ID]; !okk {
		return fail(CodeAccountNotFound)
	}
	a.Name = capitalize(a.Name)
	for _, existing := range s.accounts {
		if existing.ID != a.ID && existing.Name == a.Name {
			return fail(CodeAccountNameExists)
		}
	}
	s.accounts[a.ID] = a
	s.RecalculateBalances()
	s.notify()
	return ok()
}

// RemoveAccount deletes an account and cascades: all its transactions are
// removed and any transaction linked to one of those as its opposite is
// un-linked.
func (s *Store) RemoveAccount(id uuid.UUID) Response {
	if _, okk := s.accounts[id]; !okk {
		return fail(CodeAccountNotFound)
	}
	delete(s.accounts, id)

	removed := make(map[uuid.UUID]struct{})
	kept := s.transactions[:0]
	for _, t := range s.transactions {
		if t.Account == id {
			removed[t.ID] = struct{}{}
			continue
		}
		kept = append(kept, t)
	}
	s.transactions = kept
	for i, t := range s.transactions {
		if t.OpID != uuid.Nil {
			if _, gone := removed[t.OpID]; gone {
				s.transactions[i].OpID = uuid.Nil
			}
		}
	}

	s.RecalculateCategoryUsage()
	s.RecalculateBalances()
	s.notify()
	return ok()
}

// --- category mutations ---

// checkParent enforces the two-level category tree: a parent must exist and
// must itself be top-level.
func (s *Store) checkParent(c Category) bool {
	if c.Parent == uuid.Nil {
		return true
	}
	if c.Parent == c.ID {
		return false
	}
	parent, okk := s.categories[c.Parent]
	return okk && parent.IsTopLevel()
}

// AddCategory validates and inserts a new category.
func (s *Store) AddCategory(c Category) Response {
	if codes := ValidateCategory(c); codes != nil {
		return fail(codes...)
	}
	c.Name = capitalize(c.Name)
	for _, existing := range s.categories {
		if existing.ID == c.ID || existing.Name == c.Name {
			return fail(CodeCategoryExists)
		}
	}
	if !s.checkParent(c) {
		return fail(CodeCategoryInvalidParent)
	}
	c.Used = 0
	s.categories[c.ID] = c
	s.notify()
	return ok()
}

// EditCategory replaces a category by id. The derived usage counter of the
// stored record is preserved.
func (s *Store) EditCategory(c Category) Response {
	if codes := ValidateCategory(c); codes != nil {
		return fail(codes...)
	}
	existing, okk := s.categories[c.ID]
	if !okk {
		return fail(CodeCategoryNotFound)
	}
	c.Name = capitalize(c.Name)
	for _, other := range s.categories {
		if other.ID != c.ID && other.Name == c.Name {
			return fail(CodeCategoryExists)
		}
	}
	if !s.checkParent(c) {
		return fail(CodeCategoryInvalidParent)
	}
	c.Used = existing.Used
	s.categories[c.ID] = c
	s.notify()
	return ok()
}

// RemoveCategory deletes a category and its children. Transactions that
// referenced the removed subtree become uncategorized; they are not deleted.
func (s *Store) RemoveCategory(id uuid.UUID) Response {
	if _, okk := s.categories[id]; !okk {
		return fail(CodeCategoryNotFound)
	}
	subtree := map[uuid.UUID]struct{}{id: {}}
	for _, c := range s.categories {
		if c.Parent == id {
			subtree[c.ID] = struct{}{}
		}
	}
	for cid := range subtree {
		delete(s.categories, cid)
	}
	for i, t := range s.transactions {
		if _, gone := subtree[t.Category]; gone {
			s.transactions[i].Category = uuid.Nil
		}
	}
	s.RecalculateCategoryUsage()
	s.notify()
	return ok()
}

// --- budget mutations ---

// AddBudget validates and inserts a new budget.
func (s *Store) AddBudget(b Budget) Response {
	if codes := ValidateBudget(b); codes != nil {
		return fail(codes...)
	}
	if _, okk := s.budgets[b.ID]; okk {
		return fail(CodeBudgetExists)
	}
	s.budgets[b.ID] = b
	s.notify()
	return ok()
}

// EditBudget replaces a budget by id.
func (s *Store) EditBudget(b Budget) Response {
	if codes := ValidateBudget(b); codes != nil {
		return fail(codes...)
	}
	if _, okk := s.budgets[b.ID]; !okk {
		return fail(CodeBudgetNotFound)
	}
	s.budgets[b.ID] = b
	s.notify()
	return ok()
}

// RemoveBudget deletes a budget.
func (s *Store) RemoveBudget(id uuid.UUID) Response {
	if _, okk := s.budgets[id]; !okk {
		return fail(CodeBudgetNotFound)
	}
	delete(s.budgets, id)
	s.notify()
	return ok()
}

// --- select lists ---

// SelectItem is the {id, name} projection used by optional-reference form
// fields. The nil UUID entry is the "none" sentinel.
type SelectItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AccountSelectList projects accounts to select items plus the "none" sentinel.
func (s *Store) AccountSelectList() []SelectItem {
	items := make([]SelectItem, 0, len(s.accounts)+1)
	for _, a := range s.Accounts() {
		items = append(items, SelectItem{ID: a.ID, Name: a.Name})
	}
	items = append(items, SelectItem{ID: uuid.Nil, Name: "null"})
	return items
}

// CategorySelectList projects all categories to select items plus the "none" sentinel.
func (s *Store) CategorySelectList() []SelectItem {
	items := make([]SelectItem, 0, len(s.categories)+1)
	for _, c := range s.Categories() {
		items = append(items, SelectItem{ID: c.ID, Name: c.Name})
	}
	items = append(items, SelectItem{ID: uuid.Nil, Name: "null"})
	return items
}

// TopLevelCategorySelectList projects only top-level categories, plus the
// "none" sentinel. Used where a parent category is being picked.
func (s *Store) TopLevelCategorySelectList() []SelectItem {
	items := make([]SelectItem, 0, len(s.categories)+1)
	for _, c := range s.Categories() {
		if c.IsTopLevel() {
			items = append(items, SelectItem{ID: c.ID, Name: c.Name})
		}
	}
	items = append(items, SelectItem{ID: uuid.Nil, Name: "null"})
	return items
}
