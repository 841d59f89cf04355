package finbook

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSnapshotRoundTrip(t *testing.T) {
	s, a := balanceFixture(t)
	c := NewCategory("Food", "", uuid.Nil)
	mustOK(t, s.AddCategory(c))
	mustOK(t, s.AddBudget(NewBudget(c.ID, a.ID, "2025-01", A(400))))

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, s.Snapshot()); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	restored := quietStore()
	restored.Restore(snap)

	if got, want := len(restored.Transactions()), len(s.Transactions()); got != want {
		t.Errorf("restored %d transactions, want %d", got, want)
	}
	orig, _ := s.AccountByID(a.ID)
	back, _ := restored.AccountByID(a.ID)
	if !orig.Balance.Equal(back.Balance) {
		t.Errorf("restored balance = %s, want %s", back.Balance, orig.Balance)
	}
	if len(restored.Budgets()) != 1 {
		t.Errorf("restored %d budgets, want 1", len(restored.Budgets()))
	}
}

// Encoding the same state twice must give the same bytes, so a snapshot under
// version control only shows real changes.
func TestEncodeSnapshotIsDeterministic(t *testing.T) {
	s, _ := balanceFixture(t)

	var first, second bytes.Buffer
	if err := EncodeSnapshot(&first, s.Snapshot()); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	if err := EncodeSnapshot(&second, s.Snapshot()); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two encodings of the same state differ")
	}
}

func TestEncodeSnapshotEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, Snapshot{}); err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"accounts": []`, `"categories": []`, `"transactions": []`, `"budgets": []`} {
		if !strings.Contains(out, key) {
			t.Errorf("empty snapshot misses %s:\n%s", key, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("snapshot should end with a newline")
	}
}

// Restore heals a hand-edited snapshot: stale balances and usage counters are
// recomputed, not trusted.
func TestRestoreHealsDerivedValues(t *testing.T) {
	s, a := balanceFixture(t)
	snap := s.Snapshot()
	snap.Accounts[0].Balance = A(9999)

	restored := quietStore()
	restored.Restore(snap)

	got, _ := restored.AccountByID(a.ID)
	if got.Balance.String() != "124.50" {
		t.Errorf("balance = %s, want recomputed 124.50", got.Balance)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot(strings.NewReader("{not json")); err == nil {
		t.Error("DecodeSnapshot() accepted garbage")
	}
}

// legacyDoc builds a pre-migration document where each transaction holds both
// sides of a movement as "from" and "to" references.
func legacyDoc(checking, savings, transferID uuid.UUID) string {
	return fmt.Sprintf(`{
  "accounts": [
    {"id": %q, "name": "Checking", "balance": 0, "startingBalance": 500, "aType": "debit", "created": "2024-01-01T00:00:00Z"},
    {"id": %q, "name": "Savings", "balance": 0, "startingBalance": 0, "aType": "saving", "created": "2024-01-01T00:00:00Z"}
  ],
  "categories": [],
  "transactions": [
    {"id": %q, "desc": "Move", "category": null, "from": %q, "to": %q, "amount": 100, "when": "2024-02-01", "status": "paid", "created": "2024-02-01T00:00:00Z"},
    {"id": %q, "desc": "Groceries", "category": null, "from": %q, "to": null, "amount": 25.5, "when": "2024-02-02", "status": "paid", "created": "2024-02-02T00:00:00Z"},
    {"id": %q, "desc": "Salary", "category": null, "from": null, "to": %q, "amount": 1000, "when": "2024-02-03", "status": "paid", "created": "2024-02-03T00:00:00Z"}
  ],
  "budgets": []
}`, checking, savings,
		transferID, checking, savings,
		uuid.New(), checking,
		uuid.New(), checking)
}

func TestDecodeLegacySnapshot(t *testing.T) {
	checking, savings, transferID := uuid.New(), uuid.New(), uuid.New()
	doc := legacyDoc(checking, savings, transferID)

	snap, err := DecodeSnapshot(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	// the from+to record splits in two, the single-sided ones stay single
	if len(snap.Transactions) != 4 {
		t.Fatalf("got %d transactions, want 4", len(snap.Transactions))
	}

	var out, in *Transaction
	for i := range snap.Transactions {
		tx := &snap.Transactions[i]
		if tx.ID == transferID {
			out = tx
		}
		if tx.OpID == transferID {
			in = tx
		}
	}
	if out == nil || in == nil {
		t.Fatal("transfer halves not found")
	}
	if out.Account != checking || !out.Out.Equal(A(100)) || !out.In.IsZero() {
		t.Errorf("debit half wrong: %+v", out)
	}
	if in.Account != savings || !in.In.Equal(A(100)) || !in.Out.IsZero() {
		t.Errorf("credit half wrong: %+v", in)
	}
	if out.OpID != in.ID {
		t.Error("halves are not cross-linked")
	}

	restored := quietStore()
	restored.Restore(snap)
	gotChecking, _ := restored.AccountByID(checking)
	gotSavings, _ := restored.AccountByID(savings)
	if gotChecking.Balance.String() != "1374.50" {
		t.Errorf("checking balance = %s, want 1374.50", gotChecking.Balance)
	}
	if gotSavings.Balance.String() != "100.00" {
		t.Errorf("savings balance = %s, want 100.00", gotSavings.Balance)
	}
}

// Migrating the same legacy document twice synthesizes the same ids, so two
// migrations of one backup agree with each other.
func TestDecodeLegacySnapshotIsDeterministic(t *testing.T) {
	checking, savings, transferID := uuid.New(), uuid.New(), uuid.New()
	doc := legacyDoc(checking, savings, transferID)

	first, err := DecodeSnapshot(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	second, err := DecodeSnapshot(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	for i := range first.Transactions {
		if first.Transactions[i].ID != second.Transactions[i].ID {
			t.Errorf("transaction %d id differs between migrations", i)
		}
	}
}
