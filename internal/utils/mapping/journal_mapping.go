package mapping

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/models"
)

// ToModelEntry converts a domain Entry and its details to model rows. Line numbers
// start at 1 and follow the detail order.
func ToModelEntry(d domain.Entry) models.Entry {
	m := models.Entry{
		EntryUUID:   d.ID,
		Currency:    d.Currency,
		Description: d.Description,
		Language:    d.Language,
		Arguments:   d.Arguments,
		TransDate:   d.TransDate,
		DomainUUID:  d.DomainUUID,
		JournalUUID: d.JournalUUID,
		Posted:      d.Posted,
		Reviewed:    d.Reviewed,
		Extra:       d.Extra,
		Revision:    d.Revision.String(),
		AuditFields: ToModelAuditFields(d.AuditFields),
		Details:     make([]models.EntryDetail, len(d.Details)),
	}
	if m.Arguments == nil {
		m.Arguments = []string{}
	}
	for i, detail := range d.Details {
		m.Details[i] = models.EntryDetail{
			EntryUUID:   d.ID,
			LineNo:      i + 1,
			AccountUUID: detail.AccountUUID,
			AccountCode: detail.AccountCode,
			Amount:      detail.Amount,
			Memo:        detail.Memo,
		}
	}
	return m
}

// ToDomainEntry converts model rows to a domain Entry. Details are expected in line order.
func ToDomainEntry(m models.Entry) domain.Entry {
	d := domain.Entry{
		ID:          m.EntryUUID,
		Currency:    m.Currency,
		Description: m.Description,
		Language:    m.Language,
		TransDate:   m.TransDate.UTC(),
		DomainUUID:  m.DomainUUID,
		JournalUUID: m.JournalUUID,
		Posted:      m.Posted,
		Reviewed:    m.Reviewed,
		Extra:       m.Extra,
		Revision:    revision.Token(m.Revision),
		AuditFields: ToDomainAuditFields(m.AuditFields),
		Details:     make([]domain.Detail, len(m.Details)),
	}
	if len(m.Arguments) > 0 {
		d.Arguments = append([]string(nil), m.Arguments...)
	}
	for i, detail := range m.Details {
		d.Details[i] = domain.Detail{
			AccountUUID: detail.AccountUUID,
			AccountCode: detail.AccountCode,
			Amount:      detail.Amount,
			Memo:        detail.Memo,
		}
	}
	return d
}
