package finbook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status tells whether a transaction has settled.
type Status string

const (
	// Paid transactions affect account balances.
	Paid Status = "paid"
	// Pending transactions are anticipated and do not affect balances yet.
	Pending Status = "pending"
)

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Paid, Pending:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown transaction status: %q", s)
	}
}

// Transaction is a single movement of money on one account. Exactly one of
// In/Out is expected to be non-zero. A transfer between two accounts is two
// transactions, one per account, cross-linked through OpID.
//
// IID is an external correlation id (e.g. a bank statement FITID mapped to a
// UUID) used to deduplicate transactions across re-imports.
type Transaction struct {
	ID        uuid.UUID `validate:"required"`
	Desc      string    `validate:"required,min=1"`
	Category  uuid.UUID // uuid.Nil for uncategorized
	Account   uuid.UUID `validate:"required"`
	In        Amount
	Out       Amount
	When      Date
	Status    Status `validate:"required,oneof=paid pending"`
	OpID      uuid.UUID // linked opposite transaction, uuid.Nil if none
	IID       uuid.UUID // external correlation id, uuid.Nil if none
	CreatedAt time.Time
}

// NewTransaction creates a transaction with a fresh id on the given account.
func NewTransaction(account uuid.UUID, desc string, in, out Amount, when Date, status Status) Transaction {
	return Transaction{
		ID:        uuid.New(),
		Desc:      desc,
		Account:   account,
		In:        in,
		Out:       out,
		When:      when,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

// Effect is the signed balance effect of the transaction: In - Out.
func (t Transaction) Effect() Amount { return t.In.Sub(t.Out) }

// normalize coerces both sides to non-negative cent precision.
func (t *Transaction) normalize() {
	t.In = t.In.Abs()
	t.Out = t.Out.Abs()
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("desc", t.Desc)
	if t.Category == uuid.Nil {
		w.Null("category")
	} else {
		w.Append("category", t.Category)
	}
	w.Append("account", t.Account)
	w.Append("in", t.In)
	w.Append("out", t.Out)
	w.Append("when", t.When)
	w.Append("status", t.Status)
	if t.OpID == uuid.Nil {
		w.Null("opId")
	} else {
		w.Append("opId", t.OpID)
	}
	if t.IID == uuid.Nil {
		w.Null("iId")
	} else {
		w.Append("iId", t.IID)
	}
	w.Append("created", t.CreatedAt.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       uuid.UUID  `json:"id"`
		Desc     string     `json:"desc"`
		Category *uuid.UUID `json:"category"`
		Account  uuid.UUID  `json:"account"`
		In       Amount     `json:"in"`
		Out      Amount     `json:"out"`
		When     Date       `json:"when"`
		Status   Status     `json:"status"`
		OpID     *uuid.UUID `json:"opId"`
		IID      *uuid.UUID `json:"iId"`
		Created  string     `json:"created"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Desc = temp.Desc
	t.Category = deref(temp.Category)
	t.Account = temp.Account
	t.In = temp.In
	t.Out = temp.Out
	t.When = temp.When
	t.Status = temp.Status
	t.OpID = deref(temp.OpID)
	t.IID = deref(temp.IID)
	if temp.Created != "" {
		created, err := time.Parse(time.RFC3339, temp.Created)
		if err != nil {
			return fmt.Errorf("invalid created timestamp for transaction %s: %w", t.ID, err)
		}
		t.CreatedAt = created
	}
	return nil
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
