package repositories

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
)

// ScopeReader defines read operations for ledger domains and sub-journals
type ScopeReader interface {
	FindDomainByUUID(ctx context.Context, domainUUID string) (*domain.LedgerDomain, error)
	FindDomainByCode(ctx context.Context, code string) (*domain.LedgerDomain, error)
	FindJournalByUUID(ctx context.Context, journalUUID string) (*domain.SubJournal, error)
	FindJournalByCode(ctx context.Context, code string) (*domain.SubJournal, error)
}

// ScopeWriter defines write operations for ledger domains and sub-journals
type ScopeWriter interface {
	// SaveDomain persists a new domain; a code collision returns apperrors.ErrDuplicate.
	SaveDomain(ctx context.Context, d domain.LedgerDomain) error
	// SaveJournal persists a new sub-journal; a code collision returns apperrors.ErrDuplicate.
	SaveJournal(ctx context.Context, j domain.SubJournal) error
}

// ScopeRepositoryFacade combines all scope-related repository interfaces
type ScopeRepositoryFacade interface {
	ScopeReader
	ScopeWriter
}
