package finbook

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
)

// Snapshot is the persisted form of a whole store: one JSON document with
// four top-level arrays. Balances and usage counters are stored as-is but
// recomputed on restore, so a hand-edited snapshot heals itself.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
}

// MarshalJSON implements the json.Marshaler interface for Snapshot, keeping
// the top-level keys in a fixed order for canonical output.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("accounts", s.Accounts)
	w.Append("categories", s.Categories)
	w.Append("transactions", s.Transactions)
	w.Append("budgets", s.Budgets)
	return w.MarshalJSON()
}

// Snapshot captures the current store content. Accounts and categories come
// out name-sorted, budgets period-sorted, transactions chronological, so
// encoding the same state twice yields the same bytes.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Accounts:     s.Accounts(),
		Categories:   s.Categories(),
		Transactions: s.Transactions(),
		Budgets:      s.Budgets(),
	}
}

// Restore replaces the store content with the snapshot's and runs one full
// recomputation pass: chronological sort, usage recount, balance replay.
// Orphaned transactions in the snapshot are dropped there, not rejected.
func (s *Store) Restore(snap Snapshot) {
	s.accounts = make(map[uuid.UUID]Account, len(snap.Accounts))
	for _, a := range snap.Accounts {
		s.accounts[a.ID] = a
	}
	s.categories = make(map[uuid.UUID]Category, len(snap.Categories))
	for _, c := range snap.Categories {
		s.categories[c.ID] = c
	}
	s.budgets = make(map[uuid.UUID]Budget, len(snap.Budgets))
	for _, b := range snap.Budgets {
		s.budgets[b.ID] = b
	}
	s.transactions = append([]Transaction(nil), snap.Transactions...)
	s.Recalculate()
}

// EncodeSnapshot writes the snapshot as indented JSON with a stable key and
// element order, suitable for storage in version control.
func EncodeSnapshot(w io.Writer, snap Snapshot) error {
	if snap.Accounts == nil {
		snap.Accounts = []Account{}
	}
	if snap.Categories == nil {
		snap.Categories = []Category{}
	}
	if snap.Transactions == nil {
		snap.Transactions = []Transaction{}
	}
	if snap.Budgets == nil {
		snap.Budgets = []Budget{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot document. The only hard failure is JSON the
// parser cannot read; semantic problems (orphans, stale counters) are healed
// on restore.
//
// Documents written before the account+in/out model are recognized by their
// transaction shape and migrated on the fly, see decodeLegacySnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("error reading snapshot: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot document: %w", err)
	}
	if isLegacySnapshot(jobj) {
		return decodeLegacySnapshot(data)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("invalid snapshot document: %w", err)
	}
	return snap, nil
}

// isLegacySnapshot probes the decoded document for the historic transaction
// shape: "from"/"to"/"amount" fields instead of "account"/"in"/"out".
func isLegacySnapshot(jobj any) bool {
	if _, err := jsonpath.Get("$.transactions[0].account", jobj); err == nil {
		return false
	}
	if _, err := jsonpath.Get("$.transactions[0].amount", jobj); err == nil {
		return true
	}
	return false
}

// legacyTransaction is the historic wire shape: a single record holding both
// sides of a movement as "from" and "to" account references.
type legacyTransaction struct {
	ID       uuid.UUID  `json:"id"`
	Desc     string     `json:"desc"`
	Category *uuid.UUID `json:"category"`
	From     *uuid.UUID `json:"from"`
	To       *uuid.UUID `json:"to"`
	Amount   Amount     `json:"amount"`
	When     Date       `json:"when"`
	Status   Status     `json:"status"`
	Created  time.Time  `json:"created"`
}

// legacyHalfNamespace derives deterministic ids for the synthesized half of a
// migrated transfer, so migrating the same document twice yields the same ids.
var legacyHalfNamespace = uuid.MustParse("2f1a4c60-9f3e-4b47-8a44-0d9f46a8f5f1")

// decodeLegacySnapshot migrates a historic document into the canonical model:
//   - from only: one debit record on the from account;
//   - to only: one credit record on the to account;
//   - both: two records, debit and credit, cross-linked as a transfer pair.
func decodeLegacySnapshot(data []byte) (Snapshot, error) {
	var doc struct {
		Accounts     []Account           `json:"accounts"`
		Categories   []Category          `json:"categories"`
		Transactions []legacyTransaction `json:"transactions"`
		Budgets      []Budget            `json:"budgets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, fmt.Errorf("invalid legacy snapshot document: %w", err)
	}

	snap := Snapshot{
		Accounts:   doc.Accounts,
		Categories: doc.Categories,
		Budgets:    doc.Budgets,
	}
	for _, lt := range doc.Transactions {
		base := Transaction{
			ID:        lt.ID,
			Desc:      lt.Desc,
			Category:  deref(lt.Category),
			When:      lt.When,
			Status:    lt.Status,
			CreatedAt: lt.Created,
		}
		amount := lt.Amount.Abs()
		switch {
		case lt.From != nil && lt.To != nil:
			out := base
			out.Account = *lt.From
			out.Out = amount
			in := base
			in.ID = uuid.NewSHA1(legacyHalfNamespace, lt.ID[:])
			in.Account = *lt.To
			in.In = amount
			out.OpID, in.OpID = in.ID, out.ID
			snap.Transactions = append(snap.Transactions, out, in)
		case lt.From != nil:
			out := base
			out.Account = *lt.From
			out.Out = amount
			snap.Transactions = append(snap.Transactions, out)
		case lt.To != nil:
			in := base
			in.Account = *lt.To
			in.In = amount
			snap.Transactions = append(snap.Transactions, in)
		}
	}
	return snap, nil
}
