package services

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
)

// ListEntriesParams holds the paging parameters for listing entries of a domain.
type ListEntriesParams struct {
	Domain    domain.EntityRef
	Limit     int
	NextToken *string
}

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, params ListEntriesParams) ([]domain.Entry, *string, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	AddEntry(ctx context.Context, in domain.AddEntryInput, userID string) (*domain.Entry, error)
	UpdateEntry(ctx context.Context, in domain.UpdateEntryInput, userID string) (*domain.Entry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
