package finbook

import (
	"errors"
	"strings"

	"github.com/go-playground/validator"
)

// entityValidator enforces the shape of every entity before it enters the
// store. Callers never receive a partially validated entity: validation
// returns either nil or the full list of field-level error codes.
var entityValidator = newEntityValidator()

func newEntityValidator() *validator.Validate {
	v := validator.New()
	// month validates budget periods ("2006-01").
	if err := v.RegisterValidation("month", func(fl validator.FieldLevel) bool {
		_, err := ParseMonth(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// validateEntity runs struct validation and maps each failing field to a
// machine-readable code like "account.error.invalid_name".
func validateEntity(kind string, entity any) []string {
	err := entityValidator.Struct(entity)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{kind + ".error.not_valid"}
	}
	codes := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		codes = append(codes, kind+".error.invalid_"+strings.ToLower(fe.Field()))
	}
	return codes
}

// ValidateAccount checks an account candidate and returns field-level error codes.
func ValidateAccount(a Account) []string { return validateEntity("account", a) }

// ValidateCategory checks a category candidate and returns field-level error codes.
func ValidateCategory(c Category) []string { return validateEntity("category", c) }

// ValidateTransaction checks a transaction candidate and returns field-level error codes.
func ValidateTransaction(t Transaction) []string { return validateEntity("transaction", t) }

// ValidateBudget checks a budget candidate and returns field-level error codes.
func ValidateBudget(b Budget) []string { return validateEntity("budget", b) }
