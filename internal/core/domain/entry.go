package domain

import (
	"time"

	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/shopspring/decimal"
)

// EntityRef names an account, domain or journal by code, uuid, or both.
type EntityRef struct {
	Code string `json:"code,omitempty"`
	UUID string `json:"uuid,omitempty"`
}

// Empty reports whether neither identifier was supplied.
func (r EntityRef) Empty() bool {
	return r.Code == "" && r.UUID == ""
}

// String renders whichever identifier is present, for messages.
func (r EntityRef) String() string {
	switch {
	case r.Code != "" && r.UUID != "":
		return r.Code + "/" + r.UUID
	case r.Code != "":
		return r.Code
	default:
		return r.UUID
	}
}

// Detail is one line of an entry. Amount is positive for debits and negative for credits.
type Detail struct {
	AccountUUID string          `json:"accountUuid"`
	AccountCode string          `json:"accountCode"`
	Amount      decimal.Decimal `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

// SignTest is positive for a debit-signed line and non-positive otherwise.
func (d Detail) SignTest() int {
	return d.Amount.Sign()
}

// IsDebit reports whether the line is debit-signed.
func (d Detail) IsDebit() bool {
	return d.SignTest() > 0
}

// Entry is a journal transaction and its detail lines.
type Entry struct {
	ID          string         `json:"id"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Language    string         `json:"language"`
	Arguments   []string       `json:"arguments,omitempty"`
	TransDate   time.Time      `json:"transDate"`
	DomainUUID  string         `json:"domainUuid"`
	JournalUUID string         `json:"journalUuid,omitempty"`
	Posted      bool           `json:"posted"`
	Reviewed    bool           `json:"reviewed"`
	Extra       string         `json:"extra,omitempty"`
	Details     []Detail       `json:"details"`
	Revision    revision.Token `json:"revision"`
	AuditFields
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	c := e
	c.Arguments = append([]string(nil), e.Arguments...)
	c.Details = append([]Detail(nil), e.Details...)
	return c
}

// AddEntryInput carries the fields accepted when an entry is created. Nil pointers take
// configured defaults.
type AddEntryInput struct {
	Currency    string
	Description string
	Language    *string
	Arguments   []string
	TransDate   *time.Time
	Domain      *EntityRef
	Journal     *EntityRef
	Posted      bool
	Reviewed    *bool
	Extra       string
	Details     []DetailInput
}

// UpdateEntryInput carries an entry update. Only non-nil fields overwrite stored values;
// a non-nil Details replaces the whole detail set.
type UpdateEntryInput struct {
	ID          string
	Revision    revision.Token
	Currency    *string
	Description *string
	Language    *string
	Arguments   *[]string
	TransDate   *time.Time
	Domain      *EntityRef
	Journal     *EntityRef
	Posted      *bool
	Reviewed    *bool
	Extra       *string
	Details     *[]DetailInput
}

// DetailInput is a raw detail line. Exactly one of Debit, Credit or Amount is expected;
// amounts are decimal strings.
type DetailInput struct {
	Account EntityRef
	Debit   string
	Credit  string
	Amount  string
	Memo    string
}
