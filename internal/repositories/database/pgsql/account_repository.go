package pgsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/models"
	"github.com/SscSPs/chart_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_uuid, code, parent_uuid, category, debit, credit, closed, names, extra, revision,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	q querier
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{q: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// scanAccount reads one row selected with accountColumns.
func scanAccount(row pgx.Row) (*domain.Account, error) {
	var modelAcc models.Account
	var parentUUID sql.NullString
	var category string
	var names []byte

	err := row.Scan(
		&modelAcc.AccountUUID,
		&modelAcc.Code,
		&parentUUID,
		&category,
		&modelAcc.Debit,
		&modelAcc.Credit,
		&modelAcc.Closed,
		&names,
		&modelAcc.Extra,
		&modelAcc.Revision,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	modelAcc.ParentUUID = parentUUID.String
	modelAcc.Category = models.AccountCategory(category)
	if err := json.Unmarshal(names, &modelAcc.Names); err != nil {
		return nil, fmt.Errorf("failed to decode names of account %s: %w", modelAcc.AccountUUID, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where + `;`
	account, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %v", apperrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to find account %v: %w", arg, mapPgError(err))
	}
	return account, nil
}

// FindAccountByUUID retrieves an account by its uuid.
func (r *PgxAccountRepository) FindAccountByUUID(ctx context.Context, accountUUID string) (*domain.Account, error) {
	return r.findOne(ctx, "account_uuid = $1", accountUUID)
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, "code = $1", code)
}

// ListChildAccounts retrieves the direct sub-accounts of parentUUID ordered by code.
func (r *PgxAccountRepository) ListChildAccounts(ctx context.Context, parentUUID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE parent_uuid = $1 ORDER BY code;`

	rows, err := r.q.Query(ctx, query, parentUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children of account %s: %w", parentUUID, mapPgError(err))
	}
	defer rows.Close()

	children := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child account row: %w", err)
		}
		children = append(children, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating child account rows: %w", mapPgError(err))
	}
	return children, nil
}

// CountDetailsForAccounts counts detail lines posting to any of the accounts.
func (r *PgxAccountRepository) CountDetailsForAccounts(ctx context.Context, accountUUIDs []string) (int, error) {
	if len(accountUUIDs) == 0 {
		return 0, nil
	}
	var count int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM entry_details WHERE account_uuid = ANY($1);`, accountUUIDs).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count details for accounts: %w", mapPgError(err))
	}
	return count, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)
	names, err := json.Marshal(modelAcc.Names)
	if err != nil {
		return fmt.Errorf("failed to encode names of account %s: %w", modelAcc.AccountUUID, err)
	}

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = r.q.Exec(ctx, query,
		modelAcc.AccountUUID,
		modelAcc.Code,
		nullable(modelAcc.ParentUUID),
		string(modelAcc.Category),
		modelAcc.Debit,
		modelAcc.Credit,
		modelAcc.Closed,
		names,
		modelAcc.Extra,
		modelAcc.Revision,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); errors.Is(mapped, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, modelAcc.Code)
		} else if mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountUUID, err)
	}
	return nil
}

// UpdateAccount overwrites the account when its stored revision equals expected.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, expected revision.Token) error {
	modelAcc := mapping.ToModelAccount(account)
	names, err := json.Marshal(modelAcc.Names)
	if err != nil {
		return fmt.Errorf("failed to encode names of account %s: %w", modelAcc.AccountUUID, err)
	}

	query := `
		UPDATE accounts
		SET code = $2, parent_uuid = $3, category = $4, debit = $5, credit = $6, closed = $7,
			names = $8, extra = $9, revision = $10, last_updated_at = $11, last_updated_by = $12
		WHERE account_uuid = $1 AND revision = $13;
	`
	cmdTag, err := r.q.Exec(ctx, query,
		modelAcc.AccountUUID,
		modelAcc.Code,
		nullable(modelAcc.ParentUUID),
		string(modelAcc.Category),
		modelAcc.Debit,
		modelAcc.Credit,
		modelAcc.Closed,
		names,
		modelAcc.Extra,
		modelAcc.Revision,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
		expected.String(),
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to execute update account %s: %w", modelAcc.AccountUUID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.missOrStale(ctx, "accounts", "account_uuid", modelAcc.AccountUUID)
	}
	return nil
}

// DeleteAccounts removes the accounts in one statement, so parent and child rows of a
// cascade go together.
func (r *PgxAccountRepository) DeleteAccounts(ctx context.Context, accountUUIDs []string) error {
	if len(accountUUIDs) == 0 {
		return nil
	}
	cmdTag, err := r.q.Exec(ctx, `DELETE FROM accounts WHERE account_uuid = ANY($1);`, accountUUIDs)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInUse, pgErr.Detail)
		}
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	if int(cmdTag.RowsAffected()) != len(accountUUIDs) {
		return fmt.Errorf("%w: %d of %d accounts", apperrors.ErrNotFound, len(accountUUIDs)-int(cmdTag.RowsAffected()), len(accountUUIDs))
	}
	return nil
}

// missOrStale explains a conditional update that matched no row.
func (r *PgxAccountRepository) missOrStale(ctx context.Context, table, keyColumn, key string) error {
	return conditionalMiss(ctx, r.q, table, keyColumn, key)
}

// conditionalMiss reports ErrNotFound when the row is gone and ErrStaleRevision when it
// exists under another revision.
func conditionalMiss(ctx context.Context, q querier, table, keyColumn, key string) error {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1);`, table, keyColumn)
	if err := q.QueryRow(ctx, query, key).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s %s: %w", table, key, mapPgError(err))
	}
	if !exists {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, table, key)
	}
	return fmt.Errorf("%w: %s %s changed concurrently", apperrors.ErrStaleRevision, table, key)
}
