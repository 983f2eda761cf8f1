// Package memory is a process-local store used for development and tests. A unit of work
// holds the writer lock and restores a snapshot if it fails.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
)

type state struct {
	accounts     map[string]domain.Account // by uuid
	accountCodes map[string]string         // code -> uuid
	entries      map[string]domain.Entry
	domains      map[string]domain.LedgerDomain
	domainCodes  map[string]string
	journals     map[string]domain.SubJournal
	journalCodes map[string]string
}

func newState() *state {
	return &state{
		accounts:     map[string]domain.Account{},
		accountCodes: map[string]string{},
		entries:      map[string]domain.Entry{},
		domains:      map[string]domain.LedgerDomain{},
		domainCodes:  map[string]string{},
		journals:     map[string]domain.SubJournal{},
		journalCodes: map[string]string{},
	}
}

// clone copies the maps. Stored values are already private copies, so a shallow copy of
// each map is enough to restore from.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.accountCodes {
		c.accountCodes[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	for k, v := range s.domains {
		c.domains[k] = v
	}
	for k, v := range s.domainCodes {
		c.domainCodes[k] = v
	}
	for k, v := range s.journals {
		c.journals[k] = v
	}
	for k, v := range s.journalCodes {
		c.journalCodes[k] = v
	}
	return c
}

// Store holds every aggregate in memory.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repositories returns a provider whose repositories lock the store per call.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	v := &view{store: s}
	return portsrepo.RepositoryProvider{
		AccountRepo: &accountRepository{v},
		EntryRepo:   &entryRepository{v},
		ScopeRepo:   &scopeRepository{v},
		TxManager:   s,
	}
}

// WithinTransaction runs fn while holding the writer lock. Writers are serialized, so a
// revision check and the following write cannot interleave with another unit of work.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	defer func() {
		if p := recover(); p != nil {
			s.st = snapshot
			panic(p)
		}
		if err != nil {
			s.st = snapshot
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, &unitOfWork{view: &view{store: s, locked: true}})
}

var _ portsrepo.TransactionManager = (*Store)(nil)

type unitOfWork struct {
	view *view
}

func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade { return &accountRepository{u.view} }
func (u *unitOfWork) Entries() portsrepo.EntryRepositoryFacade { return &entryRepository{u.view} }
func (u *unitOfWork) Scopes() portsrepo.ScopeRepositoryFacade { return &scopeRepository{u.view} }

// view gives repositories access to the state. Inside a unit of work the lock is already
// held and the lock methods do nothing.
type view struct {
	store  *Store
	locked bool
}

func (v *view) read() (*state, func()) {
	if v.locked {
		return v.store.st, func() {}
	}
	v.store.mu.RLock()
	return v.store.st, v.store.mu.RUnlock
}

func (v *view) write() (*state, func()) {
	if v.locked {
		return v.store.st, func() {}
	}
	v.store.mu.Lock()
	return v.store.st, v.store.mu.Unlock
}
