package finbook

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Budget is a monthly spending cap scoped to a category and an account.
// When is a month-granularity period in "2006-01" form.
type Budget struct {
	ID       uuid.UUID `validate:"required"`
	Category uuid.UUID `validate:"required"`
	Account  uuid.UUID `validate:"required"`
	When     string    `validate:"required,month"`
	Amount   Amount
}

// NewBudget creates a budget with a fresh id.
func NewBudget(category, account uuid.UUID, when string, amount Amount) Budget {
	return Budget{
		ID:       uuid.New(),
		Category: category,
		Account:  account,
		When:     when,
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Budget.
func (b Budget) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", b.ID)
	w.Append("category", b.Category)
	w.Append("account", b.Account)
	w.Append("when", b.When)
	w.Append("amount", b.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Budget.
func (b *Budget) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       uuid.UUID `json:"id"`
		Category uuid.UUID `json:"category"`
		Account  uuid.UUID `json:"account"`
		When     string    `json:"when"`
		Amount   Amount    `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	b.ID = temp.ID
	b.Category = temp.Category
	b.Account = temp.Account
	b.When = temp.When
	b.Amount = temp.Amount
	return nil
}
