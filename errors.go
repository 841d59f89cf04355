package finbook

import "errors"

// Sentinel errors for programmatic call sites.
var (
	// ErrNotFound is returned when an edit or delete target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a uniqueness constraint is violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when input fails schema validation.
	ErrNotValid = errors.New("not valid")
	// ErrAccountNotExist is returned when a transaction references an unknown account.
	ErrAccountNotExist = errors.New("account does not exist")
	// ErrNoInOrOut is returned when a transaction is zero on both sides.
	ErrNoInOrOut = errors.New("transaction has neither in nor out")
)

// Machine-readable error codes returned to callers. The engine never formats
// user-facing text; an external message catalog maps these codes to localized
// strings.
const (
	CodeAccountNotValid   = "account.error.not_valid"
	CodeAccountNameExists = "account.error.account_name_already_exist"
	CodeAccountNotFound   = "account.error.not_found"

	CodeCategoryNotValid      = "category.error.not_valid"
	CodeCategoryExists        = "category.error.already_exist"
	CodeCategoryNotFound      = "category.error.not_found"
	CodeCategoryInvalidParent = "category.error.invalid_parent"

	CodeTransactionNotValid       = "transaction.error.not_valid"
	CodeTransactionExists         = "transaction.error.already_exist"
	CodeTransactionNotFound       = "transaction.error.not_found"
	CodeTransactionAccountMissing = "transaction.error.account_not_exist"
	CodeTransactionNoInOrOut      = "transaction.error.no_in_or_out"

	CodeBudgetNotValid = "budget.error.not_valid"
	CodeBudgetExists   = "budget.error.already_exist"
	CodeBudgetNotFound = "budget.error.not_found"
)

// Response is the result of a mutation call. Errors carries machine-readable
// codes; Success is false whenever Errors is non-empty and the repository
// state is untouched in that case.
type Response struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

func ok() Response { return Response{Success: true, Errors: []string{}} }

func fail(codes ...string) Response { return Response{Success: false, Errors: codes} }
