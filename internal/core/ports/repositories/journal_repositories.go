package repositories

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
)

// EntryReader defines read operations for journal entries
type EntryReader interface {
	// FindEntryByID retrieves an entry and its details.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntriesByDomain returns entries of a domain ordered by transaction date then id,
	// plus a token for the next page when more remain.
	ListEntriesByDomain(ctx context.Context, domainUUID string, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations for journal entries
type EntryWriter interface {
	// SaveEntry persists a new entry with its details.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateEntry replaces the entry and its details when the stored revision equals
	// expected, otherwise it returns apperrors.ErrStaleRevision.
	UpdateEntry(ctx context.Context, entry domain.Entry, expected revision.Token) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
