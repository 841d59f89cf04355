package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

// resolveAccount finds an account by id or by case-insensitive name.
func resolveAccount(s *finbook.Store, ref string) (finbook.Account, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if a, okk := s.AccountByID(id); okk {
			return a, nil
		}
	}
	for _, a := range s.Accounts() {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return finbook.Account{}, fmt.Errorf("unknown account %q", ref)
}

// resolveCategory finds a category by id or by case-insensitive name.
func resolveCategory(s *finbook.Store, ref string) (finbook.Category, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if c, okk := s.CategoryByID(id); okk {
			return c, nil
		}
	}
	for _, c := range s.Categories() {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return finbook.Category{}, fmt.Errorf("unknown category %q", ref)
}
