package models

import "github.com/shopspring/decimal"

// EntryDetail is a row of entry_details. Amount is signed: positive debits, negative
// credits. AccountCode is read from the joined accounts row.
type EntryDetail struct {
	EntryUUID   string          `db:"entry_uuid"`
	LineNo      int             `db:"line_no"`
	AccountUUID string          `db:"account_uuid"`
	AccountCode string          `db:"code"`
	Amount      decimal.Decimal `db:"amount"`
	Memo        string          `db:"memo"`
}
