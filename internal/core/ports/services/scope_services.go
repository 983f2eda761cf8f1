package services

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
)

// ScopeSvcFacade manages ledger domains and sub-journals.
type ScopeSvcFacade interface {
	AddDomain(ctx context.Context, in domain.AddDomainInput, userID string) (*domain.LedgerDomain, error)
	GetDomain(ctx context.Context, ref domain.EntityRef) (*domain.LedgerDomain, error)
	AddJournal(ctx context.Context, in domain.AddJournalInput, userID string) (*domain.SubJournal, error)
	GetJournal(ctx context.Context, ref domain.EntityRef) (*domain.SubJournal, error)
}
