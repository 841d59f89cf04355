package finbook

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Category labels transactions. Categories form a two-level tree: a category
// either is top-level (Parent is uuid.Nil) or hangs under a top-level one.
//
// Used is a derived counter equal to the number of transactions referencing
// the category; the reconciliation engine keeps it in sync.
type Category struct {
	ID          uuid.UUID `validate:"required"`
	Name        string    `validate:"required,min=3"`
	Description string
	Parent      uuid.UUID // uuid.Nil for top-level categories
	Used        int       `validate:"min=0"`
}

// NewCategory creates a category with a fresh id. Pass uuid.Nil as parent for
// a top-level category.
func NewCategory(name, description string, parent uuid.UUID) Category {
	return Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Parent:      parent,
	}
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool { return c.Parent == uuid.Nil }

// MarshalJSON implements the json.Marshaler interface for Category.
func (c Category) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", c.ID)
	w.Append("name", c.Name)
	w.Append("description", c.Description)
	if c.Parent == uuid.Nil {
		w.Null("parent")
	} else {
		w.Append("parent", c.Parent)
	}
	w.Append("used", c.Used)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Category.
func (c *Category) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID          uuid.UUID  `json:"id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Parent      *uuid.UUID `json:"parent"`
		Used        int        `json:"used"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	c.ID = temp.ID
	c.Name = temp.Name
	c.Description = temp.Description
	c.Parent = uuid.Nil
	if temp.Parent != nil {
		c.Parent = *temp.Parent
	}
	c.Used = temp.Used
	return nil
}
