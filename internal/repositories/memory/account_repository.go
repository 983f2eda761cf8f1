package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
)

type accountRepository struct {
	v *view
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByUUID(_ context.Context, accountUUID string) (*domain.Account, error) {
	st, unlock := r.v.read()
	defer unlock()
	a, ok := st.accounts[accountUUID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountUUID)
	}
	c := a.Clone()
	return &c, nil
}

func (r *accountRepository) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	st, unlock := r.v.read()
	defer unlock()
	id, ok := st.accountCodes[code]
	if !ok {
		return nil, fmt.Errorf("%w: account code %q", apperrors.ErrNotFound, code)
	}
	c := st.accounts[id].Clone()
	return &c, nil
}

func (r *accountRepository) ListChildAccounts(_ context.Context, parentUUID string) ([]domain.Account, error) {
	st, unlock := r.v.read()
	defer unlock()
	var children []domain.Account
	for _, a := range st.accounts {
		if a.ParentUUID == parentUUID && a.UUID != parentUUID {
			children = append(children, a.Clone())
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Code < children[j].Code })
	return children, nil
}

func (r *accountRepository) CountDetailsForAccounts(_ context.Context, accountUUIDs []string) (int, error) {
	st, unlock := r.v.read()
	defer unlock()
	wanted := make(map[string]struct{}, len(accountUUIDs))
	for _, id := range accountUUIDs {
		wanted[id] = struct{}{}
	}
	count := 0
	for _, e := range st.entries {
		for _, d := range e.Details {
			if _, ok := wanted[d.AccountUUID]; ok {
				count++
			}
		}
	}
	return count, nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	st, unlock := r.v.write()
	defer unlock()
	if _, ok := st.accountCodes[account.Code]; ok {
		return fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, account.Code)
	}
	if _, ok := st.accounts[account.UUID]; ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.UUID)
	}
	st.accounts[account.UUID] = account.Clone()
	st.accountCodes[account.Code] = account.UUID
	return nil
}

func (r *accountRepository) UpdateAccount(_ context.Context, account domain.Account, expected revision.Token) error {
	st, unlock := r.v.write()
	defer unlock()
	stored, ok := st.accounts[account.UUID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.UUID)
	}
	if stored.Revision != expected {
		return fmt.Errorf("%w: account %s changed concurrently", apperrors.ErrStaleRevision, account.UUID)
	}
	if stored.Code != account.Code {
		if owner, taken := st.accountCodes[account.Code]; taken && owner != account.UUID {
			return fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, account.Code)
		}
		delete(st.accountCodes, stored.Code)
		st.accountCodes[account.Code] = account.UUID
	}
	st.accounts[account.UUID] = account.Clone()
	return nil
}

func (r *accountRepository) DeleteAccounts(_ context.Context, accountUUIDs []string) error {
	st, unlock := r.v.write()
	defer unlock()
	for _, id := range accountUUIDs {
		a, ok := st.accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		delete(st.accountCodes, a.Code)
		delete(st.accounts, id)
	}
	return nil
}
