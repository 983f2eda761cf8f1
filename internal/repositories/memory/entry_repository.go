package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/utils/pagination"
)

type entryRepository struct {
	v *view
}

var _ portsrepo.EntryRepositoryFacade = (*entryRepository)(nil)

func (r *entryRepository) FindEntryByID(_ context.Context, entryID string) (*domain.Entry, error) {
	st, unlock := r.v.read()
	defer unlock()
	e, ok := st.entries[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	c := e.Clone()
	return &c, nil
}

func (r *entryRepository) ListEntriesByDomain(_ context.Context, domainUUID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	var (
		hasCursor  bool
		cursorDate time.Time
		cursorID   string
	)
	if nextToken != nil && *nextToken != "" {
		var err error
		cursorDate, cursorID, err = pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("Pagination token is invalid.")
		}
		hasCursor = true
	}

	st, unlock := r.v.read()
	var matched []domain.Entry
	for _, e := range st.entries {
		if e.DomainUUID != domainUUID {
			continue
		}
		if hasCursor && !pagination.After(e.TransDate, e.ID, cursorDate, cursorID) {
			continue
		}
		matched = append(matched, e.Clone())
	}
	unlock()

	sort.Slice(matched, func(i, j int) bool {
		return pagination.After(matched[j].TransDate, matched[j].ID, matched[i].TransDate, matched[i].ID)
	})

	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.TransDate, last.ID)
	return page, &token, nil
}

func (r *entryRepository) SaveEntry(_ context.Context, entry domain.Entry) error {
	st, unlock := r.v.write()
	defer unlock()
	if _, ok := st.entries[entry.ID]; ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, entry.ID)
	}
	st.entries[entry.ID] = entry.Clone()
	return nil
}

func (r *entryRepository) UpdateEntry(_ context.Context, entry domain.Entry, expected revision.Token) error {
	st, unlock := r.v.write()
	defer unlock()
	stored, ok := st.entries[entry.ID]
	if !ok {
		return fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entry.ID)
	}
	if stored.Revision != expected {
		return fmt.Errorf("%w: entry %s changed concurrently", apperrors.ErrStaleRevision, entry.ID)
	}
	st.entries[entry.ID] = entry.Clone()
	return nil
}
