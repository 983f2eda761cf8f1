package pgsql

import (
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx repositories. Reads outside a unit of work go
// straight to the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		EntryRepo:   newPgxEntryRepository(dbPool),
		ScopeRepo:   newPgxScopeRepository(dbPool),
		TxManager:   &BaseRepository{Pool: dbPool},
	}
}
