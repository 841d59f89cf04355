package ofx

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook/finbook"
)

const bankStatement = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240101120000
<LANGUAGE>ENG
<FI>
<ORG>TESTBANK
<FID>12345
</FI>
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>EUR
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>9876543210
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101000000
<DTEND>20240131235959
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240105120000
<TRNAMT>-50.00
<FITID>TXN001
<NAME>Coffee Shop
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240115120000
<TRNAMT>1000.00
<FITID>TXN002
<NAME>Paycheck
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>2000.00
<DTASOF>20240131235959
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestCanParse(t *testing.T) {
	assert.True(t, CanParse("january.ofx", []byte("OFXHEADER:100\nDATA:OFXSGML\n")))
	assert.True(t, CanParse("january.QFX", []byte(`<?OFX OFXHEADER="200"?>`)))
	assert.False(t, CanParse("january.csv", []byte("OFXHEADER:100\n")))
	assert.False(t, CanParse("january.ofx", []byte("date,amount\n")))
}

func TestCorrelationIDDeterministic(t *testing.T) {
	a := CorrelationID("TXN001")
	b := CorrelationID("TXN001")
	c := CorrelationID("TXN002")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, uuid.Nil, a)
}

func TestParseBankStatement(t *testing.T) {
	account := uuid.New()
	stmt, err := Parse(strings.NewReader(bankStatement), account)
	require.NoError(t, err)
	assert.Equal(t, "TESTBANK", stmt.Institution)
	require.Len(t, stmt.Transactions, 2)

	debit := stmt.Transactions[0]
	assert.Equal(t, account, debit.Account)
	assert.Equal(t, "Coffee Shop", debit.Desc)
	assert.Equal(t, "50.00", debit.Out.String())
	assert.True(t, debit.In.IsZero())
	assert.Equal(t, "2024-01-05", debit.When.String())
	assert.Equal(t, finbook.Paid, debit.Status)
	assert.Equal(t, CorrelationID("TXN001"), debit.IID)

	credit := stmt.Transactions[1]
	assert.Equal(t, "Paycheck", credit.Desc)
	assert.Equal(t, "1000.00", credit.In.String())
	assert.True(t, credit.Out.IsZero())
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse(strings.NewReader("not an ofx document"), uuid.New())
	assert.Error(t, err)
}

func TestImportIsIdempotent(t *testing.T) {
	store := finbook.NewStore()
	account := finbook.NewAccount("Checking", finbook.Amount{}, finbook.Debit)
	require.True(t, store.AddAccount(account).Success)

	stmt, err := Parse(strings.NewReader(bankStatement), account.ID)
	require.NoError(t, err)

	first := Import(store, stmt)
	require.Len(t, first, 2)
	for _, r := range first {
		assert.True(t, r.Success)
	}
	assert.Equal(t, "950.00", store.AccountBalanceAt(account.ID, finbook.MustParse("2024-01-31"), false, false).String())

	// Importing the same statement again is a no-op: every row is rejected
	// by its correlation id.
	stmt2, err := Parse(strings.NewReader(bankStatement), account.ID)
	require.NoError(t, err)
	second := Import(store, stmt2)
	for _, r := range second {
		assert.False(t, r.Success)
	}
	assert.Len(t, store.Transactions(), 2)
	assert.Equal(t, "950.00", store.AccountBalanceAt(account.ID, finbook.MustParse("2024-01-31"), false, false).String())
}
