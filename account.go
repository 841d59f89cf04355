package finbook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AccountType classifies an account.
type AccountType string

const (
	Debit  AccountType = "debit"
	Credit AccountType = "credit"
	Saving AccountType = "saving"
	Loan   AccountType = "loan"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case Debit, Credit, Saving, Loan:
		return AccountType(s), nil
	default:
		return "", fmt.Errorf("unknown account type: %q", s)
	}
}

// Account is a money holder whose balance derives from transaction history.
//
// Balance is recomputed by the balance engine, never hand-edited: after any
// recomputation it equals StartingBalance plus the signed effect of every
// Paid transaction referencing the account.
type Account struct {
	ID              uuid.UUID   `validate:"required"`
	Name            string      `validate:"required,min=1"`
	Balance         Amount      // derived
	StartingBalance Amount
	Type            AccountType `validate:"required,oneof=debit credit saving loan"`
	CreatedAt       time.Time
}

// NewAccount creates an account with a fresh id and the given starting balance.
func NewAccount(name string, starting Amount, at AccountType) Account {
	return Account{
		ID:              uuid.New(),
		Name:            name,
		Balance:         starting,
		StartingBalance: starting,
		Type:            at,
		CreatedAt:       time.Now(),
	}
}

// MarshalJSON implements the json.Marshaler interface for Account.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("name", a.Name)
	w.Append("balance", a.Balance)
	w.Append("startingBalance", a.StartingBalance)
	w.Append("aType", a.Type)
	w.Append("created", a.CreatedAt.UTC().Format(time.RFC3339))
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Account.
func (a *Account) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              uuid.UUID   `json:"id"`
		Name            string      `json:"name"`
		Balance         Amount      `json:"balance"`
		StartingBalance Amount      `json:"startingBalance"`
		Type            AccountType `json:"aType"`
		Created         string      `json:"created"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	a.ID = temp.ID
	a.Name = temp.Name
	a.Balance = temp.Balance
	a.StartingBalance = temp.StartingBalance
	a.Type = temp.Type
	if temp.Created != "" {
		created, err := time.Parse(time.RFC3339, temp.Created)
		if err != nil {
			return fmt.Errorf("invalid created timestamp for account %s: %w", a.ID, err)
		}
		a.CreatedAt = created
	}
	return nil
}
