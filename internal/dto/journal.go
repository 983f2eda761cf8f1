package dto

import (
	"time"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/utils/accounting"
)

// DetailRequest is one line of an entry. Supply exactly one of debit, credit or a signed
// amount (positive debits).
type DetailRequest struct {
	Account Ref    `json:"account"`
	Debit   string `json:"debit,omitempty" example:"100.00"`
	Credit  string `json:"credit,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Memo    string `json:"memo,omitempty"`
}

// CreateEntryRequest defines the data needed to record an entry. Omitted language,
// domain, currency and reviewed take the configured defaults.
type CreateEntryRequest struct {
	Currency    string          `json:"currency" example:"USD"`
	Description string          `json:"description" example:"Invoice 42"`
	Language    *string         `json:"language"`
	Arguments   []string        `json:"arguments"`
	TransDate   *time.Time      `json:"transDate"`
	Domain      *Ref            `json:"domain"`
	Journal     *Ref            `json:"journal"`
	Posted      bool            `json:"posted"`
	Reviewed    *bool           `json:"reviewed"`
	Extra       string          `json:"extra"`
	Details     []DetailRequest `json:"details"`
}

// UpdateEntryRequest carries an entry update. Only supplied fields change; supplied
// details replace the whole set. An empty journal ref detaches the entry from its journal.
type UpdateEntryRequest struct {
	Revision    string           `json:"revision"`
	Currency    *string          `json:"currency"`
	Description *string          `json:"description"`
	Language    *string          `json:"language"`
	Arguments   *[]string        `json:"arguments"`
	TransDate   *time.Time       `json:"transDate"`
	Domain      *Ref             `json:"domain"`
	Journal     *Ref             `json:"journal"`
	Posted      *bool            `json:"posted"`
	Reviewed    *bool            `json:"reviewed"`
	Extra       *string          `json:"extra"`
	Details     *[]DetailRequest `json:"details"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Domain    string  `form:"domain"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// DetailResponse is one line of an entry with the amount split into columns.
type DetailResponse struct {
	AccountUUID string `json:"accountUuid"`
	AccountCode string `json:"accountCode"`
	Debit       string `json:"debit,omitempty"`
	Credit      string `json:"credit,omitempty"`
	Memo        string `json:"memo,omitempty"`
}

// EntryResponse defines the data returned for an entry.
type EntryResponse struct {
	ID          string           `json:"id"`
	Currency    string           `json:"currency"`
	Description string           `json:"description"`
	Language    string           `json:"language"`
	Arguments   []string         `json:"arguments,omitempty"`
	TransDate   time.Time        `json:"transDate"`
	DomainUUID  string           `json:"domainUuid"`
	JournalUUID string           `json:"journalUuid,omitempty"`
	Posted      bool             `json:"posted"`
	Reviewed    bool             `json:"reviewed"`
	Extra       string           `json:"extra,omitempty"`
	Details     []DetailResponse `json:"details"`
	Revision    string           `json:"revision"`
	AuditResponse
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

func toDetailInputs(details []DetailRequest) []domain.DetailInput {
	if details == nil {
		return nil
	}
	out := make([]domain.DetailInput, len(details))
	for i, d := range details {
		out[i] = domain.DetailInput{
			Account: d.Account.ToEntityRef(),
			Debit:   d.Debit,
			Credit:  d.Credit,
			Amount:  d.Amount,
			Memo:    d.Memo,
		}
	}
	return out
}

// ToAddEntryInput converts the request to the core input.
func (r CreateEntryRequest) ToAddEntryInput() domain.AddEntryInput {
	return domain.AddEntryInput{
		Currency:    r.Currency,
		Description: r.Description,
		Language:    r.Language,
		Arguments:   r.Arguments,
		TransDate:   r.TransDate,
		Domain:      optionalRef(r.Domain),
		Journal:     optionalRef(r.Journal),
		Posted:      r.Posted,
		Reviewed:    r.Reviewed,
		Extra:       r.Extra,
		Details:     toDetailInputs(r.Details),
	}
}

// ToUpdateEntryInput converts the request to the core input for entry id.
func (r UpdateEntryRequest) ToUpdateEntryInput(id string) domain.UpdateEntryInput {
	in := domain.UpdateEntryInput{
		ID:          id,
		Revision:    revision.Token(r.Revision),
		Currency:    r.Currency,
		Description: r.Description,
		Language:    r.Language,
		Arguments:   r.Arguments,
		TransDate:   r.TransDate,
		Domain:      optionalRef(r.Domain),
		Journal:     optionalRef(r.Journal),
		Posted:      r.Posted,
		Reviewed:    r.Reviewed,
		Extra:       r.Extra,
	}
	if r.Details != nil {
		details := toDetailInputs(*r.Details)
		in.Details = &details
	}
	return in
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO
func ToEntryResponse(e *domain.Entry) EntryResponse {
	details := make([]DetailResponse, len(e.Details))
	for i, d := range e.Details {
		debit, credit := accounting.Split(d)
		details[i] = DetailResponse{
			AccountUUID: d.AccountUUID,
			AccountCode: d.AccountCode,
			Debit:       debit,
			Credit:      credit,
			Memo:        d.Memo,
		}
	}
	return EntryResponse{
		ID:            e.ID,
		Currency:      e.Currency,
		Description:   e.Description,
		Language:      e.Language,
		Arguments:     e.Arguments,
		TransDate:     e.TransDate,
		DomainUUID:    e.DomainUUID,
		JournalUUID:   e.JournalUUID,
		Posted:        e.Posted,
		Reviewed:      e.Reviewed,
		Extra:         e.Extra,
		Details:       details,
		Revision:      e.Revision.String(),
		AuditResponse: toAuditResponse(e.AuditFields),
	}
}

// ToListEntriesResponse converts a page of entries.
func ToListEntriesResponse(entries []domain.Entry, nextToken *string) ListEntriesResponse {
	res := ListEntriesResponse{Entries: make([]EntryResponse, len(entries)), NextToken: nextToken}
	for i := range entries {
		res.Entries[i] = ToEntryResponse(&entries[i])
	}
	return res
}
