// Package ofx converts OFX/QFX bank statement files into ledger transactions.
package ofx

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/finbook/finbook"
)

// fitidNamespace derives correlation ids from statement FITIDs. The mapping
// is deterministic so re-importing the same statement is deduplicated by the
// reconciliation engine instead of producing duplicate rows.
var fitidNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// CorrelationID maps a statement FITID to a transaction correlation id.
func CorrelationID(fitid string) uuid.UUID {
	return uuid.NewSHA1(fitidNamespace, []byte(fitid))
}

// CanParse reports whether the file looks like an OFX/QFX statement, based on
// its extension and leading bytes.
func CanParse(path string, header []byte) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".ofx" && ext != ".qfx" {
		return false
	}
	h := strings.ToUpper(string(header))
	return strings.Contains(h, "OFXHEADER") ||
		strings.Contains(h, "<?OFX") ||
		strings.Contains(h, "<OFX>")
}

// Statement is a parsed bank statement: the issuing institution and the
// candidate transactions, already bound to one ledger account.
type Statement struct {
	Institution  string
	Transactions []finbook.Transaction
}

// Parse reads an OFX/QFX document and converts its bank or credit card
// transactions into Paid candidates on the given account. Investment
// statements are not supported.
func Parse(r io.Reader, account uuid.UUID) (*Statement, error) {
	resp, err := ofxgo.ParseResponse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse OFX document: %w", err)
	}

	var list *ofxgo.TransactionList
	switch {
	case len(resp.Bank) > 0:
		stmt, okk := resp.Bank[0].(*ofxgo.StatementResponse)
		if !okk {
			return nil, fmt.Errorf("unexpected bank statement type %T", resp.Bank[0])
		}
		list = stmt.BankTranList
	case len(resp.CreditCard) > 0:
		stmt, okk := resp.CreditCard[0].(*ofxgo.CCStatementResponse)
		if !okk {
			return nil, fmt.Errorf("unexpected credit card statement type %T", resp.CreditCard[0])
		}
		list = stmt.BankTranList
	default:
		return nil, fmt.Errorf("no bank or credit card statement in OFX document")
	}
	if list == nil {
		return nil, fmt.Errorf("statement has no transaction list")
	}

	out := &Statement{Institution: resp.Signon.Org.String()}
	for i, txn := range list.Transactions {
		t, err := convert(txn, account)
		if err != nil {
			return nil, fmt.Errorf("statement transaction %d: %w", i, err)
		}
		out.Transactions = append(out.Transactions, t)
	}
	return out, nil
}

// convert maps one statement entry to a ledger transaction. Negative amounts
// become debits, positive ones credits.
func convert(txn ofxgo.Transaction, account uuid.UUID) (finbook.Transaction, error) {
	fitid := txn.FiTID.String()
	if fitid == "" {
		return finbook.Transaction{}, fmt.Errorf("missing FITID")
	}

	posted := txn.DtPosted.Time
	if posted.IsZero() {
		posted = txn.DtUser.Time
	}
	if posted.IsZero() {
		return finbook.Transaction{}, fmt.Errorf("transaction %s has no date", fitid)
	}

	desc := strings.TrimSpace(txn.Name.String())
	if desc == "" {
		desc = strings.TrimSpace(txn.Memo.String())
	}
	if desc == "" {
		return finbook.Transaction{}, fmt.Errorf("transaction %s has no description", fitid)
	}

	// ofxgo amounts are rationals; going through the decimal string keeps
	// cent precision instead of a float round-trip.
	amount, err := finbook.ParseAmount(txn.TrnAmt.String())
	if err != nil {
		return finbook.Transaction{}, fmt.Errorf("transaction %s has invalid amount: %w", fitid, err)
	}

	t := finbook.Transaction{
		ID:        uuid.New(),
		Desc:      desc,
		Account:   account,
		When:      finbook.NewDate(posted.Date()),
		Status:    finbook.Paid,
		IID:       CorrelationID(fitid),
		CreatedAt: time.Now(),
	}
	if amount.IsNegative() {
		t.Out = amount.Abs()
	} else {
		t.In = amount
	}
	return t, nil
}

// Import batch-adds the statement transactions through the reconciliation
// engine and runs the single end-of-batch recomputation. The returned
// responses are index-aligned with the statement transactions.
func Import(s *finbook.Store, stmt *Statement) []finbook.Response {
	responses := make([]finbook.Response, 0, len(stmt.Transactions))
	for _, t := range stmt.Transactions {
		responses = append(responses, s.AddTransactionBatch(t))
	}
	s.Recalculate()
	return responses
}
