package repositories

import "context"

// UnitOfWork exposes repositories bound to one storage transaction.
type UnitOfWork interface {
	Accounts() AccountRepositoryFacade
	Entries() EntryRepositoryFacade
	Scopes() ScopeRepositoryFacade
}

// TransactionManager runs fn as one serializable unit of work. The work is committed when
// fn returns nil and discarded otherwise, so a failed operation leaves no partial writes.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
