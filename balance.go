package finbook

import "github.com/google/uuid"

// RecalculateBalances recomputes every account balance from scratch: each
// account is reset to its starting balance, then every Paid transaction is
// replayed in stored order, applying balance += in - out to its account.
//
// This replay is the canonical source of truth; incremental balance updates
// elsewhere are optimizations that must agree with it.
//
// Transactions referencing a no-longer-existing account are orphans: they are
// dropped from the ledger here (self-healing) and logged rather than treated
// as an error.
func (s *Store) RecalculateBalances() {
	for id, a := range s.accounts {
		a.Balance = a.StartingBalance
		s.accounts[id] = a
	}

	kept := s.transactions[:0]
	dropped := 0
	for _, t := range s.transactions {
		if _, okk := s.accounts[t.Account]; !okk {
			dropped++
			continue
		}
		kept = append(kept, t)
	}
	s.transactions = kept
	if dropped > 0 {
		s.logger.Warn("dropped orphaned transactions during balance recompute", "count", dropped)
	}

	for _, t := range s.transactions {
		if t.Status != Paid {
			continue
		}
		a := s.accounts[t.Account]
		a.Balance = a.Balance.Add(t.Effect())
		s.accounts[t.Account] = a
	}
}

// statusAccepted implements the pending/paid filter shared by all balance
// queries.
func statusAccepted(st Status, includePending, pendingOnly bool) bool {
	if pendingOnly {
		return st == Pending
	}
	if includePending {
		return true
	}
	return st == Paid
}

// AccountBalanceAt returns the account balance on a date (inclusive: same-day
// transactions count). By default only Paid transactions are summed;
// includePending adds Pending ones, pendingOnly restricts to Pending (and
// excludes the starting balance, since nothing has settled).
//
// An unknown account is a non-fatal condition: it is logged and a zero
// balance returned.
func (s *Store) AccountBalanceAt(id uuid.UUID, on Date, includePending, pendingOnly bool) Amount {
	a, okk := s.accounts[id]
	if !okk {
		s.logger.Warn("account not found for balance query", "account", id)
		return Amount{}
	}
	var balance Amount
	if !pendingOnly {
		balance = a.StartingBalance
	}
	for _, t := range s.transactions {
		if t.When.After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		if t.Account != id || !statusAccepted(t.Status, includePending, pendingOnly) {
			continue
		}
		balance = balance.Add(t.Effect())
	}
	return balance
}

// AccountMonthInAt sums the credit side of the account's transactions in the
// calendar month of the given date.
func (s *Store) AccountMonthInAt(id uuid.UUID, on Date, includePending, pendingOnly bool) Amount {
	return s.accountMonthSide(id, on, includePending, pendingOnly, func(t Transaction) Amount { return t.In })
}

// AccountMonthOutAt sums the debit side of the account's transactions in the
// calendar month of the given date.
func (s *Store) AccountMonthOutAt(id uuid.UUID, on Date, includePending, pendingOnly bool) Amount {
	return s.accountMonthSide(id, on, includePending, pendingOnly, func(t Transaction) Amount { return t.Out })
}

func (s *Store) accountMonthSide(id uuid.UUID, on Date, includePending, pendingOnly bool, side func(Transaction) Amount) Amount {
	if _, okk := s.accounts[id]; !okk {
		s.logger.Warn("account not found for balance query", "account", id)
		return Amount{}
	}
	var total Amount
	end := on.EndOfMonth()
	for _, t := range s.transactions {
		if t.When.After(end) {
			break
		}
		if t.Account != id || !t.When.SameMonth(on) {
			continue
		}
		if !statusAccepted(t.Status, includePending, pendingOnly) {
			continue
		}
		total = total.Add(side(t))
	}
	return total
}
