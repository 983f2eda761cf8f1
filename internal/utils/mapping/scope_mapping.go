package mapping

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/models"
)

// ToModelLedgerDomain converts a domain LedgerDomain to a model LedgerDomain
func ToModelLedgerDomain(d domain.LedgerDomain) models.LedgerDomain {
	return models.LedgerDomain{
		DomainUUID:   d.UUID,
		Code:         d.Code,
		Names:        ToModelNames(d.Names),
		CurrencyCode: d.CurrencyCode,
		Revision:     d.Revision.String(),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerDomain converts a model LedgerDomain to a domain LedgerDomain
func ToDomainLedgerDomain(m models.LedgerDomain) domain.LedgerDomain {
	return domain.LedgerDomain{
		UUID:         m.DomainUUID,
		Code:         m.Code,
		Names:        ToDomainNames(m.Names),
		CurrencyCode: m.CurrencyCode,
		Revision:     revision.Token(m.Revision),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSubJournal converts a domain SubJournal to a model SubJournal
func ToModelSubJournal(d domain.SubJournal) models.SubJournal {
	return models.SubJournal{
		JournalUUID: d.UUID,
		Code:        d.Code,
		DomainUUID:  d.DomainUUID,
		Names:       ToModelNames(d.Names),
		Revision:    d.Revision.String(),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubJournal converts a model SubJournal to a domain SubJournal
func ToDomainSubJournal(m models.SubJournal) domain.SubJournal {
	return domain.SubJournal{
		UUID:        m.JournalUUID,
		Code:        m.Code,
		DomainUUID:  m.DomainUUID,
		Names:       ToDomainNames(m.Names),
		Revision:    revision.Token(m.Revision),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
