package models

// AccountCategory defines the fundamental accounting type of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Account is a row of the accounts table.
// ParentUUID is empty for the root; the column is NULL.
type Account struct {
	AccountUUID string          `db:"account_uuid"`
	Code        string          `db:"code"`
	ParentUUID  string          `db:"parent_uuid"` // Nullable
	Category    AccountCategory `db:"category"`
	Debit       bool            `db:"debit"`
	Credit      bool            `db:"credit"`
	Closed      bool            `db:"closed"`
	Names       []Name          `db:"names"` // JSONB
	Extra       string          `db:"extra"`
	Revision    string          `db:"revision"`
	AuditFields
}
