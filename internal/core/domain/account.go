package domain

import (
	"github.com/SscSPs/chart_ledger/internal/core/revision"
)

// AccountCategory defines the fundamental accounting type of an account.
type AccountCategory string

const (
	Asset     AccountCategory = "ASSET"
	Liability AccountCategory = "LIABILITY"
	Equity    AccountCategory = "EQUITY"
	Revenue   AccountCategory = "REVENUE"
	Expense   AccountCategory = "EXPENSE"
)

// Valid reports whether c is one of the known categories.
func (c AccountCategory) Valid() bool {
	switch c {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormallyDebit reports whether accounts of this category carry a debit balance.
func (c AccountCategory) NormallyDebit() bool {
	return c == Asset || c == Expense
}

// RootCode is the code of the root of the chart of accounts.
const RootCode = ""

// Name is one localized display name.
type Name struct {
	Name     string `json:"name" validate:"required"`
	Language string `json:"language" validate:"required"`
}

// Account is a node of the chart of accounts. The parent is held as a key, never as a
// pointer, so the tree is an arena indexed by UUID.
type Account struct {
	UUID       string          `json:"uuid"`
	Code       string          `json:"code"`
	ParentUUID string          `json:"parentUuid"` // empty for the root
	Category   AccountCategory `json:"category"`
	Debit      bool            `json:"debit"`
	Credit     bool            `json:"credit"`
	Closed     bool            `json:"closed"`
	Names      []Name          `json:"names"`
	Extra      string          `json:"extra"`
	Revision   revision.Token  `json:"revision"`
	AuditFields
}

// IsRoot reports whether a is the root account.
func (a *Account) IsRoot() bool {
	return a.Code == RootCode && a.ParentUUID == ""
}

// NameIn returns the first name in the given language, or the first name when none match.
func (a *Account) NameIn(language string) string {
	for _, n := range a.Names {
		if n.Language == language {
			return n.Name
		}
	}
	if len(a.Names) > 0 {
		return a.Names[0].Name
	}
	return ""
}

// Clone returns a deep copy so callers can mutate without touching stored state.
func (a Account) Clone() Account {
	c := a
	c.Names = append([]Name(nil), a.Names...)
	return c
}

// CreateRootInput carries the fields used to initialise the chart of accounts.
type CreateRootInput struct {
	Names []Name `validate:"required,min=1,dive"`
	Extra string
}

// AddAccountInput carries a new account. Nil polarity flags are inherited from the parent.
type AddAccountInput struct {
	Code       string          `validate:"required,ledger_code"`
	ParentCode string          `validate:"ledger_code"`
	Names      []Name          `validate:"required,min=1,dive"`
	Category   AccountCategory `validate:"required"`
	Debit      *bool
	Credit     *bool
	Closed     bool
	Extra      string
}

// UpdateAccountInput carries an account update. Only non-nil fields are applied; Names
// replaces the whole set.
type UpdateAccountInput struct {
	Ref        EntityRef
	Revision   revision.Token
	Code       *string `validate:"omitempty,min=1,ledger_code"`
	ParentCode *string `validate:"omitempty,ledger_code"`
	Names      *[]Name `validate:"omitempty,min=1,dive"`
	Category   *AccountCategory
	Debit      *bool
	Credit     *bool
	Closed     *bool
	Extra      *string
}

// DeleteAccountInput names the account to delete. A non-empty Revision is checked.
type DeleteAccountInput struct {
	Ref      EntityRef
	Cascade  bool
	Revision revision.Token
}

// AddDomainInput carries a new ledger domain.
type AddDomainInput struct {
	Code         string `validate:"required,ledger_code"`
	Names        []Name `validate:"required,min=1,dive"`
	CurrencyCode string `validate:"omitempty,len=3"`
}

// AddJournalInput carries a new sub-journal.
type AddJournalInput struct {
	Code   string `validate:"required,ledger_code"`
	Domain EntityRef
	Names  []Name `validate:"required,min=1,dive"`
}
