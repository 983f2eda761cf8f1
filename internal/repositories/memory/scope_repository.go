package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
)

type scopeRepository struct {
	v *view
}

var _ portsrepo.ScopeRepositoryFacade = (*scopeRepository)(nil)

func (r *scopeRepository) FindDomainByUUID(_ context.Context, domainUUID string) (*domain.LedgerDomain, error) {
	st, unlock := r.v.read()
	defer unlock()
	d, ok := st.domains[domainUUID]
	if !ok {
		return nil, fmt.Errorf("%w: domain %s", apperrors.ErrNotFound, domainUUID)
	}
	d.Names = slices.Clone(d.Names)
	return &d, nil
}

func (r *scopeRepository) FindDomainByCode(ctx context.Context, code string) (*domain.LedgerDomain, error) {
	st, unlock := r.v.read()
	id, ok := st.domainCodes[code]
	unlock()
	if !ok {
		return nil, fmt.Errorf("%w: domain code %q", apperrors.ErrNotFound, code)
	}
	return r.FindDomainByUUID(ctx, id)
}

func (r *scopeRepository) FindJournalByUUID(_ context.Context, journalUUID string) (*domain.SubJournal, error) {
	st, unlock := r.v.read()
	defer unlock()
	j, ok := st.journals[journalUUID]
	if !ok {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalUUID)
	}
	j.Names = slices.Clone(j.Names)
	return &j, nil
}

func (r *scopeRepository) FindJournalByCode(ctx context.Context, code string) (*domain.SubJournal, error) {
	st, unlock := r.v.read()
	id, ok := st.journalCodes[code]
	unlock()
	if !ok {
		return nil, fmt.Errorf("%w: journal code %q", apperrors.ErrNotFound, code)
	}
	return r.FindJournalByUUID(ctx, id)
}

func (r *scopeRepository) SaveDomain(_ context.Context, d domain.LedgerDomain) error {
	st, unlock := r.v.write()
	defer unlock()
	if _, ok := st.domainCodes[d.Code]; ok {
		return fmt.Errorf("%w: domain code %q", apperrors.ErrDuplicate, d.Code)
	}
	d.Names = slices.Clone(d.Names)
	st.domains[d.UUID] = d
	st.domainCodes[d.Code] = d.UUID
	return nil
}

func (r *scopeRepository) SaveJournal(_ context.Context, j domain.SubJournal) error {
	st, unlock := r.v.write()
	defer unlock()
	if _, ok := st.journalCodes[j.Code]; ok {
		return fmt.Errorf("%w: journal code %q", apperrors.ErrDuplicate, j.Code)
	}
	j.Names = slices.Clone(j.Names)
	st.journals[j.UUID] = j
	st.journalCodes[j.Code] = j.UUID
	return nil
}
