package mapping

import (
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelNames converts localized names to their column shape.
func ToModelNames(names []domain.Name) []models.Name {
	out := make([]models.Name, len(names))
	for i, n := range names {
		out[i] = models.Name{Name: n.Name, Language: n.Language}
	}
	return out
}

// ToDomainNames converts a names column to domain names.
func ToDomainNames(names []models.Name) []domain.Name {
	out := make([]domain.Name, len(names))
	for i, n := range names {
		out[i] = domain.Name{Name: n.Name, Language: n.Language}
	}
	return out
}
