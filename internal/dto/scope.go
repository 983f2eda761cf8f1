package dto

import "github.com/SscSPs/chart_ledger/internal/core/domain"

// CreateDomainRequest defines the data needed to create a ledger domain.
type CreateDomainRequest struct {
	Code     string `json:"code" example:"GJ"`
	Names    []Name `json:"names"`
	Currency string `json:"currency" example:"USD"` // Optional, defaults to the configured currency
}

// DomainResponse defines the data returned for a ledger domain.
type DomainResponse struct {
	UUID     string `json:"uuid"`
	Code     string `json:"code"`
	Names    []Name `json:"names"`
	Currency string `json:"currency"`
	Revision string `json:"revision"`
	AuditResponse
}

// CreateJournalRequest defines the data needed to create a sub-journal.
type CreateJournalRequest struct {
	Code   string `json:"code" example:"SALES"`
	Domain Ref    `json:"domain"`
	Names  []Name `json:"names"`
}

// JournalResponse defines the data returned for a sub-journal.
type JournalResponse struct {
	UUID       string `json:"uuid"`
	Code       string `json:"code"`
	DomainUUID string `json:"domainUuid"`
	Names      []Name `json:"names"`
	Revision   string `json:"revision"`
	AuditResponse
}

// ToAddDomainInput converts the request to the core input.
func (r CreateDomainRequest) ToAddDomainInput() domain.AddDomainInput {
	return domain.AddDomainInput{Code: r.Code, Names: toDomainNames(r.Names), CurrencyCode: r.Currency}
}

// ToAddJournalInput converts the request to the core input.
func (r CreateJournalRequest) ToAddJournalInput() domain.AddJournalInput {
	return domain.AddJournalInput{Code: r.Code, Domain: r.Domain.ToEntityRef(), Names: toDomainNames(r.Names)}
}

// ToDomainResponse converts a domain.LedgerDomain to DomainResponse DTO
func ToDomainResponse(d *domain.LedgerDomain) DomainResponse {
	return DomainResponse{
		UUID:          d.UUID,
		Code:          d.Code,
		Names:         toNames(d.Names),
		Currency:      d.CurrencyCode,
		Revision:      d.Revision.String(),
		AuditResponse: toAuditResponse(d.AuditFields),
	}
}

// ToJournalResponse converts a domain.SubJournal to JournalResponse DTO
func ToJournalResponse(j *domain.SubJournal) JournalResponse {
	return JournalResponse{
		UUID:          j.UUID,
		Code:          j.Code,
		DomainUUID:    j.DomainUUID,
		Names:         toNames(j.Names),
		Revision:      j.Revision.String(),
		AuditResponse: toAuditResponse(j.AuditFields),
	}
}
