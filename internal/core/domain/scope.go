package domain

import "github.com/SscSPs/chart_ledger/internal/core/revision"

// LedgerDomain partitions entries beyond the account hierarchy; each carries the
// currency used when an entry omits one.
type LedgerDomain struct {
	UUID         string         `json:"uuid"`
	Code         string         `json:"code"`
	Names        []Name         `json:"names"`
	CurrencyCode string         `json:"currency"`
	Revision     revision.Token `json:"revision"`
	AuditFields
}

// SubJournal is an optional sub-ledger within a domain.
type SubJournal struct {
	UUID       string         `json:"uuid"`
	Code       string         `json:"code"`
	DomainUUID string         `json:"domainUuid"`
	Names      []Name         `json:"names"`
	Revision   revision.Token `json:"revision"`
	AuditFields
}
