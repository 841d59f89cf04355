package finbook

import (
	"github.com/google/uuid"
)

// AddTransaction validates and inserts a transaction, updates the category
// usage counter, recomputes balances and notifies observers. No transfer
// matching happens here; for import-style matching use AddTransactionBatch.
func (s *Store) AddTransaction(t Transaction) Response {
	return s.addTransaction(t, false)
}

// AddTransactionBatch adds a transaction in batch (import) mode.
//
// Batch mode auto-detects transfer pairs and matches against pre-existing
// pending placeholders instead of requiring the caller to supply both halves:
//
//  1. if exactly one existing transaction on a different account, same date,
//     mirrors the amount and is not yet linked, both records are cross-linked
//     as opposites and given transfer descriptions;
//  2. if exactly one Pending transaction on the same account, same date and
//     amounts has no correlation id, it is promoted to Paid and absorbs the
//     incoming description and correlation id instead of a new row being
//     inserted.
//
// More than one candidate in either search means no match: auto-linking is
// skipped and logged rather than guessed.
//
// Batch mode defers recomputation: the caller must invoke Recalculate once
// the batch completes. Aborting a batch is simply not calling it.
func (s *Store) AddTransactionBatch(t Transaction) Response {
	return s.addTransaction(t, true)
}

func (s *Store) addTransaction(t Transaction, batch bool) Response {
	if codes := ValidateTransaction(t); codes != nil {
		return fail(codes...)
	}
	if _, okk := s.accounts[t.Account]; !okk {
		return fail(CodeTransactionAccountMissing)
	}
	for _, existing := range s.transactions {
		if existing.ID == t.ID {
			return fail(CodeTransactionExists)
		}
		if t.IID != uuid.Nil && existing.IID == t.IID {
			return fail(CodeTransactionExists)
		}
	}
	t.normalize()
	if t.In.IsZero() && t.Out.IsZero() {
		return fail(CodeTransactionNoInOrOut)
	}

	if !batch {
		s.transactions = append(s.transactions, t)
		s.incrementUsage(t.Category, 1)
		s.stableSort()
		s.RecalculateBalances()
		s.notify()
		return ok()
	}

	opIdx := s.findOppositeCandidate(t)

	if dupIdx := s.findPendingDuplicate(t); dupIdx >= 0 {
		// Merge into the pending placeholder instead of inserting a new row.
		dup := s.transactions[dupIdx]
		dup.Status = Paid
		dup.Desc = t.Desc
		dup.IID = t.IID
		s.transactions[dupIdx] = dup
		if opIdx >= 0 {
			s.linkOpposites(dupIdx, opIdx)
		}
		return ok()
	}

	s.transactions = append(s.transactions, t)
	s.incrementUsage(t.Category, 1)
	if opIdx >= 0 {
		s.linkOpposites(len(s.transactions)-1, opIdx)
	}
	return ok()
}

// findOppositeCandidate searches for exactly one unlinked transaction on a
// different account, same date, mirroring t's amount. Returns its index, or
// -1 when there is no match or the match is ambiguous.
func (s *Store) findOppositeCandidate(t Transaction) int {
	found := -1
	count := 0
	for i, c := range s.transactions {
		if c.Account == t.Account || c.When != t.When || c.OpID != uuid.Nil {
			continue
		}
		mirrored := (t.In.IsPositive() && c.Out.Equal(t.In)) ||
			(t.Out.IsPositive() && c.In.Equal(t.Out))
		if !mirrored {
			continue
		}
		found = i
		count++
	}
	if count > 1 {
		s.logger.Warn("ambiguous opposite candidates, skipping transfer link",
			"transaction", t.ID, "candidates", count)
		return -1
	}
	if count == 0 {
		return -1
	}
	return found
}

// findPendingDuplicate searches for exactly one Pending transaction on the
// same account, same date and amounts, with no correlation id. Returns its
// index, or -1 when there is no match or the match is ambiguous.
func (s *Store) findPendingDuplicate(t Transaction) int {
	found := -1
	count := 0
	for i, c := range s.transactions {
		if c.Status != Pending || c.Account != t.Account || c.When != t.When || c.IID != uuid.Nil {
			continue
		}
		if !c.In.Equal(t.In) || !c.Out.Equal(t.Out) {
			continue
		}
		found = i
		count++
	}
	if count > 1 {
		s.logger.Warn("ambiguous pending duplicates, skipping merge",
			"transaction", t.ID, "candidates", count)
		return -1
	}
	if count == 0 {
		return -1
	}
	return found
}

// linkOpposites cross-links two transactions as the halves of a transfer and
// synthesizes their descriptions from each other's account name.
func (s *Store) linkOpposites(i, j int) {
	a, b := s.transactions[i], s.transactions[j]
	a.OpID, b.OpID = b.ID, a.ID

	// The half paying out names the receiving account, and vice versa.
	nameA, nameB := s.accountName(a.Account), s.accountName(b.Account)
	if a.Out.IsPositive() {
		a.Desc = "Transfer to " + nameB
		b.Desc = "Transfer from " + nameA
	} else {
		a.Desc = "Transfer from " + nameB
		b.Desc = "Transfer to " + nameA
	}
	s.transactions[i], s.transactions[j] = a, b
}

func (s *Store) accountName(id uuid.UUID) string {
	if a, okk := s.accounts[id]; okk {
		return a.Name
	}
	return id.String()
}

// EditTransaction replaces a transaction by id (whole-record replace), keeps
// the category usage counters in sync and recomputes balances.
func (s *Store) EditTransaction(t Transaction) Response {
	if codes := ValidateTransaction(t); codes != nil {
		return fail(codes...)
	}
	idx := -1
	for i, existing := range s.transactions {
		if existing.ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(CodeTransactionNotFound)
	}
	if _, okk := s.accounts[t.Account]; !okk {
		return fail(CodeTransactionAccountMissing)
	}
	t.normalize()
	if t.In.IsZero() && t.Out.IsZero() {
		return fail(CodeTransactionNoInOrOut)
	}

	old := s.transactions[idx]
	if old.Category != t.Category {
		s.incrementUsage(old.Category, -1)
		s.incrementUsage(t.Category, 1)
	}
	s.transactions[idx] = t
	s.stableSort()
	s.RecalculateBalances()
	s.notify()
	return ok()
}

// RemoveTransaction deletes a transaction. If it was half of a transfer the
// partner is un-linked, keeping the partner's account history intact.
func (s *Store) RemoveTransaction(id uuid.UUID) Response {
	idx := -1
	for i, t := range s.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fail(CodeTransactionNotFound)
	}
	removed := s.transactions[idx]
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)

	if removed.OpID != uuid.Nil {
		for i, t := range s.transactions {
			if t.ID == removed.OpID {
				s.transactions[i].OpID = uuid.Nil
				break
			}
		}
	}

	s.incrementUsage(removed.Category, -1)
	s.RecalculateBalances()
	s.notify()
	return ok()
}

// Recalculate performs the single full recomputation pass that ends a batch
// import: chronological re-sort, category usage recount, balance replay,
// observer notification. The result equals what per-transaction
// recomputation would have produced.
func (s *Store) Recalculate() {
	s.stableSort()
	s.RecalculateCategoryUsage()
	s.RecalculateBalances()
	s.notify()
}

// incrementUsage adjusts a category usage counter, clamping at zero.
func (s *Store) incrementUsage(id uuid.UUID, delta int) {
	if id == uuid.Nil {
		return
	}
	c, okk := s.categories[id]
	if !okk {
		return
	}
	c.Used += delta
	if c.Used < 0 {
		c.Used = 0
	}
	s.categories[id] = c
}

// RecalculateCategoryUsage recounts every category usage counter from
// scratch. It is idempotent and agrees with the incremental updates applied
// by transaction mutations.
func (s *Store) RecalculateCategoryUsage() {
	for id, c := range s.categories {
		c.Used = 0
		s.categories[id] = c
	}
	for _, t := range s.transactions {
		s.incrementUsage(t.Category, 1)
	}
}
