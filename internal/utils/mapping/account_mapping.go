package mapping

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountUUID: d.UUID,
		Code:        d.Code,
		ParentUUID:  d.ParentUUID,
		Category:    models.AccountCategory(d.Category),
		Debit:       d.Debit,
		Credit:      d.Credit,
		Closed:      d.Closed,
		Names:       ToModelNames(d.Names),
		Extra:       d.Extra,
		Revision:    d.Revision.String(),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		UUID:        m.AccountUUID,
		Code:        m.Code,
		ParentUUID:  m.ParentUUID,
		Category:    domain.AccountCategory(m.Category),
		Debit:       m.Debit,
		Credit:      m.Credit,
		Closed:      m.Closed,
		Names:       ToDomainNames(m.Names),
		Extra:       m.Extra,
		Revision:    revision.Token(m.Revision),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
