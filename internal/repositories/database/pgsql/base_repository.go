package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so repositories run the
// same statements inside and outside a unit of work.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides transaction handling for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// txOptions is used for every unit of work. Serializable isolation turns write skew into a
// serialization failure: two reparents that each check an acyclic chain and then update
// different rows (A under B, B under A) cannot both commit.
var txOptions = pgx.TxOptions{IsoLevel: pgx.Serializable}

// Begin starts a new Serializable transaction. Conflicting writers fail with a
// serialization error instead of overwriting each other.
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, txOptions)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTransaction runs fn in one transaction, committing only when it returns nil.
func (r *BaseRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context, uow portsrepo.UnitOfWork) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = r.Rollback(context.WithoutCancel(ctx), tx)
			panic(p)
		}
		if err != nil {
			if rbErr := r.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if err = fn(ctx, &unitOfWork{q: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

type unitOfWork struct {
	q querier
}

func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade { return &PgxAccountRepository{q: u.q} }
func (u *unitOfWork) Entries() portsrepo.EntryRepositoryFacade { return &PgxEntryRepository{q: u.q} }
func (u *unitOfWork) Scopes() portsrepo.ScopeRepositoryFacade { return &PgxScopeRepository{q: u.q} }

// mapPgError translates the PostgreSQL failures the services act on into sentinel errors.
// Anything else is returned unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return fmt.Errorf("%w: concurrent write (%s)", apperrors.ErrStaleRevision, pgErr.Message)
	case "23505": // unique_violation
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
	case "23514": // check_violation
		return fmt.Errorf("%w: constraint %s", apperrors.ErrValidation, pgErr.ConstraintName)
	}
	return err
}

// nullable stores an empty string as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
