package finbook

import (
	"testing"

	"github.com/google/uuid"
)

func TestAddTransaction(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))

	tx := NewTransaction(a.ID, "Groceries", Amount{}, A(25.50), MustParse("2025-03-10"), Paid)
	mustOK(t, s.AddTransaction(tx))

	got, _ := s.AccountByID(a.ID)
	if !got.Balance.Equal(A(74.50)) {
		t.Errorf("balance = %s, want 74.50", got.Balance)
	}
	mustFail(t, s.AddTransaction(tx), CodeTransactionExists)
}

func TestAddTransactionRejections(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))
	when := MustParse("2025-03-10")

	t.Run("unknown account", func(t *testing.T) {
		tx := NewTransaction(uuid.New(), "Groceries", Amount{}, A(10), when, Paid)
		mustFail(t, s.AddTransaction(tx), CodeTransactionAccountMissing)
	})
	t.Run("both sides zero", func(t *testing.T) {
		tx := NewTransaction(a.ID, "Nothing", Amount{}, Amount{}, when, Paid)
		mustFail(t, s.AddTransaction(tx), CodeTransactionNoInOrOut)
	})
	t.Run("empty description", func(t *testing.T) {
		tx := NewTransaction(a.ID, "", Amount{}, A(10), when, Paid)
		mustFail(t, s.AddTransaction(tx), "transaction.error.invalid_desc")
	})
	t.Run("unknown status", func(t *testing.T) {
		tx := NewTransaction(a.ID, "Groceries", Amount{}, A(10), when, Status("maybe"))
		mustFail(t, s.AddTransaction(tx), "transaction.error.invalid_status")
	})
	t.Run("duplicate correlation id", func(t *testing.T) {
		iid := uuid.New()
		first := NewTransaction(a.ID, "Statement row", Amount{}, A(10), when, Paid)
		first.IID = iid
		mustOK(t, s.AddTransaction(first))
		second := NewTransaction(a.ID, "Statement row again", Amount{}, A(10), when, Paid)
		second.IID = iid
		mustFail(t, s.AddTransaction(second), CodeTransactionExists)
	})
}

func TestAddTransactionNormalizesSigns(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))

	tx := NewTransaction(a.ID, "Refund entered backwards", A(-20), Amount{}, MustParse("2025-03-10"), Paid)
	mustOK(t, s.AddTransaction(tx))

	got, _ := s.TransactionByID(tx.ID)
	if !got.In.Equal(A(20)) || !got.Out.IsZero() {
		t.Errorf("sides = in %s out %s, want in 20.00 out 0.00", got.In, got.Out)
	}
}

func TestBatchTransferDetection(t *testing.T) {
	s := quietStore()
	checking := NewAccount("Checking", A(500), Debit)
	savings := NewAccount("Savings", A(0), Saving)
	mustOK(t, s.AddAccount(checking))
	mustOK(t, s.AddAccount(savings))
	when := MustParse("2025-01-10")

	out := NewTransaction(checking.ID, "VIREMENT 100", Amount{}, A(100), when, Paid)
	in := NewTransaction(savings.ID, "VIREMENT 100", A(100), Amount{}, when, Paid)
	mustOK(t, s.AddTransactionBatch(out))
	mustOK(t, s.AddTransactionBatch(in))
	s.Recalculate()

	gotOut, _ := s.TransactionByID(out.ID)
	gotIn, _ := s.TransactionByID(in.ID)
	if gotOut.OpID != gotIn.ID || gotIn.OpID != gotOut.ID {
		t.Fatalf("halves not cross-linked: out.OpID=%s in.OpID=%s", gotOut.OpID, gotIn.OpID)
	}
	if gotOut.Desc != "Transfer to Savings" {
		t.Errorf("out desc = %q, want %q", gotOut.Desc, "Transfer to Savings")
	}
	if gotIn.Desc != "Transfer from Checking" {
		t.Errorf("in desc = %q, want %q", gotIn.Desc, "Transfer from Checking")
	}

	c, _ := s.AccountByID(checking.ID)
	v, _ := s.AccountByID(savings.ID)
	if !c.Balance.Equal(A(400)) || !v.Balance.Equal(A(100)) {
		t.Errorf("balances = %s / %s, want 400.00 / 100.00", c.Balance, v.Balance)
	}
}

func TestBatchTransferSkipsAmbiguousCandidates(t *testing.T) {
	s := quietStore()
	checking := NewAccount("Checking", A(500), Debit)
	savings := NewAccount("Savings", A(0), Saving)
	mustOK(t, s.AddAccount(checking))
	mustOK(t, s.AddAccount(savings))
	when := MustParse("2025-01-10")

	// two identical debits could each be the opposite half
	mustOK(t, s.AddTransaction(NewTransaction(checking.ID, "Debit one", Amount{}, A(100), when, Paid)))
	mustOK(t, s.AddTransaction(NewTransaction(checking.ID, "Debit two", Amount{}, A(100), when, Paid)))

	in := NewTransaction(savings.ID, "Credit", A(100), Amount{}, when, Paid)
	mustOK(t, s.AddTransactionBatch(in))
	s.Recalculate()

	for _, tx := range s.Transactions() {
		if tx.OpID != uuid.Nil {
			t.Errorf("transaction %q was linked despite the ambiguity", tx.Desc)
		}
	}
}

func TestBatchPromotesPendingDuplicate(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))
	when := MustParse("2025-01-10")

	placeholder := NewTransaction(a.ID, "Card hold", Amount{}, A(50), when, Pending)
	mustOK(t, s.AddTransaction(placeholder))

	settled := NewTransaction(a.ID, "POS PURCHASE 1234", Amount{}, A(50), when, Paid)
	settled.IID = uuid.New()
	mustOK(t, s.AddTransactionBatch(settled))
	s.Recalculate()

	txs := s.Transactions()
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want the placeholder merged into 1", len(txs))
	}
	got := txs[0]
	if got.ID != placeholder.ID {
		t.Errorf("merged id = %s, want the placeholder's id", got.ID)
	}
	if got.Status != Paid {
		t.Errorf("status = %s, want paid", got.Status)
	}
	if got.Desc != "POS PURCHASE 1234" {
		t.Errorf("desc = %q, want the incoming description", got.Desc)
	}
	if got.IID != settled.IID {
		t.Errorf("iid = %s, want the incoming correlation id", got.IID)
	}
	acc, _ := s.AccountByID(a.ID)
	if !acc.Balance.Equal(A(50)) {
		t.Errorf("balance = %s, want 50.00", acc.Balance)
	}
}

func TestBatchPromotionSkipsAmbiguousPendings(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))
	when := MustParse("2025-01-10")

	mustOK(t, s.AddTransaction(NewTransaction(a.ID, "Hold one", Amount{}, A(50), when, Pending)))
	mustOK(t, s.AddTransaction(NewTransaction(a.ID, "Hold two", Amount{}, A(50), when, Pending)))

	settled := NewTransaction(a.ID, "POS PURCHASE", Amount{}, A(50), when, Paid)
	mustOK(t, s.AddTransactionBatch(settled))
	s.Recalculate()

	// no merge: the settled row is inserted alongside both holds
	if got := len(s.Transactions()); got != 3 {
		t.Errorf("got %d transactions, want 3", got)
	}
}

func TestEditTransaction(t *testing.T) {
	s := quietStore()
	a := NewAccount("Checking", A(100), Debit)
	mustOK(t, s.AddAccount(a))
	food := NewCategory("Food", "", uuid.Nil)
	transport := NewCategory("Transport", "", uuid.Nil)
	mustOK(t, s.AddCategory(food))
	mustOK(t, s.AddCategory(transport))

	tx := NewTransaction(a.ID, "Lunch", Amount{}, A(12), MustParse("2025-03-10"), Paid)
	tx.Category = food.ID
	mustOK(t, s.AddTransaction(tx))

	tx.Category = transport.ID
	tx.Out = A(15)
	mustOK(t, s.EditTransaction(tx))

	f, _ := s.CategoryByID(food.ID)
	tr, _ := s.CategoryByID(transport.ID)
	if f.Used != 0 || tr.Used != 1 {
		t.Errorf("usage = food %d transport %d, want 0 and 1", f.Used, tr.Used)
	}
	acc, _ := s.AccountByID(a.ID)
	if !acc.Balance.Equal(A(85)) {
		t.Errorf("balance = %s, want 85.00", acc.Balance)
	}

	ghost := NewTransaction(a.ID, "Ghost", Amount{}, A(1), MustParse("2025-03-10"), Paid)
	mustFail(t, s.EditTransaction(ghost), CodeTransactionNotFound)
}

func TestRemoveTransactionUnlinksPartner(t *testing.T) {
	s := quietStore()
	checking := NewAccount("Checking", A(500), Debit)
	savings := NewAccount("Savings", A(0), Saving)
	mustOK(t, s.AddAccount(checking))
	mustOK(t, s.AddAccount(savings))
	when := MustParse("2025-01-10")

	out := NewTransaction(checking.ID, "move", Amount{}, A(100), when, Paid)
	in := NewTransaction(savings.ID, "move", A(100), Amount{}, when, Paid)
	mustOK(t, s.AddTransactionBatch(out))
	mustOK(t, s.AddTransactionBatch(in))
	s.Recalculate()

	mustOK(t, s.RemoveTransaction(in.ID))

	partner, found := s.TransactionByID(out.ID)
	if !found {
		t.Fatal("partner transaction removed too")
	}
	if partner.OpID != uuid.Nil {
		t.Errorf("partner OpID = %s, want unlinked", partner.OpID)
	}
	v, _ := s.AccountByID(savings.ID)
	if !v.Balance.IsZero() {
		t.Errorf("savings balance = %s, want 0.00", v.Balance)
	}
	mustFail(t, s.RemoveTransaction(in.ID), CodeTransactionNotFound)
}

// A batch followed by Recalculate must land on the same state as the
// per-transaction path.
func TestRecalculateMatchesIncrementalPath(t *testing.T) {
	build := func(batch bool) *Store {
		s := quietStore()
		a := NewAccount("Checking", A(100), Debit)
		s.AddAccount(a)
		c := NewCategory("Food", "", uuid.Nil)
		s.AddCategory(c)
		for i, day := range []string{"2025-01-03", "2025-01-02", "2025-01-05"} {
			tx := NewTransaction(a.ID, "row", A(10*(i+1)), Amount{}, MustParse(day), Paid)
			tx.Category = c.ID
			if batch {
				s.AddTransactionBatch(tx)
			} else {
				s.AddTransaction(tx)
			}
		}
		if batch {
			s.Recalculate()
		}
		return s
	}

	batched, incremental := build(true), build(false)

	bAcc, iAcc := batched.Accounts()[0], incremental.Accounts()[0]
	if !bAcc.Balance.Equal(iAcc.Balance) {
		t.Errorf("balances diverge: batch %s, incremental %s", bAcc.Balance, iAcc.Balance)
	}
	bCat, iCat := batched.Categories()[0], incremental.Categories()[0]
	if bCat.Used != iCat.Used {
		t.Errorf("usage diverges: batch %d, incremental %d", bCat.Used, iCat.Used)
	}
	bTxs, iTxs := batched.Transactions(), incremental.Transactions()
	for i := range bTxs {
		if bTxs[i].When != iTxs[i].When {
			t.Errorf("order diverges at %d: batch %s, incremental %s", i, bTxs[i].When, iTxs[i].When)
		}
	}
}
