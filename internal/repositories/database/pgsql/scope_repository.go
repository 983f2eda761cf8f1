package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/models"
	"github.com/SscSPs/chart_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScopeRepository struct {
	q querier
}

// newPgxScopeRepository creates a new repository for ledger domains and sub-journals.
func newPgxScopeRepository(pool *pgxpool.Pool) portsrepo.ScopeRepositoryFacade {
	return &PgxScopeRepository{q: pool}
}

// Ensure PgxScopeRepository implements portsrepo.ScopeRepositoryFacade
var _ portsrepo.ScopeRepositoryFacade = (*PgxScopeRepository)(nil)

var fullDomainSelectQuery = `
SELECT
	domain_uuid, code, names, currency_code, revision,
	created_at, created_by, last_updated_at, last_updated_by
FROM ledger_domains
`

var fullJournalSelectQuery = `
SELECT
	journal_uuid, code, domain_uuid, names, revision,
	created_at, created_by, last_updated_at, last_updated_by
FROM sub_journals
`

// getDomain runs the select query with the filter and expects exactly one row.
func (r *PgxScopeRepository) getDomain(ctx context.Context, filterQuery string, arg string) (*domain.LedgerDomain, error) {
	rows, err := r.q.Query(ctx, fullDomainSelectQuery+filterQuery, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", mapPgError(err))
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.LedgerDomain])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: domain %s", apperrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to collect domain row: %w", mapPgError(err))
	}
	d := mapping.ToDomainLedgerDomain(m)
	return &d, nil
}

func (r *PgxScopeRepository) getJournal(ctx context.Context, filterQuery string, arg string) (*domain.SubJournal, error) {
	rows, err := r.q.Query(ctx, fullJournalSelectQuery+filterQuery, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", mapPgError(err))
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.SubJournal])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, arg)
		}
		return nil, fmt.Errorf("failed to collect journal row: %w", mapPgError(err))
	}
	j := mapping.ToDomainSubJournal(m)
	return &j, nil
}

func (r *PgxScopeRepository) FindDomainByUUID(ctx context.Context, domainUUID string) (*domain.LedgerDomain, error) {
	return r.getDomain(ctx, "WHERE domain_uuid = $1", domainUUID)
}

func (r *PgxScopeRepository) FindDomainByCode(ctx context.Context, code string) (*domain.LedgerDomain, error) {
	return r.getDomain(ctx, "WHERE code = $1", code)
}

func (r *PgxScopeRepository) FindJournalByUUID(ctx context.Context, journalUUID string) (*domain.SubJournal, error) {
	return r.getJournal(ctx, "WHERE journal_uuid = $1", journalUUID)
}

func (r *PgxScopeRepository) FindJournalByCode(ctx context.Context, code string) (*domain.SubJournal, error) {
	return r.getJournal(ctx, "WHERE code = $1", code)
}

func (r *PgxScopeRepository) SaveDomain(ctx context.Context, d domain.LedgerDomain) error {
	m := mapping.ToModelLedgerDomain(d)
	names, err := json.Marshal(m.Names)
	if err != nil {
		return fmt.Errorf("failed to encode names of domain %s: %w", m.Code, err)
	}
	query := `
		INSERT INTO ledger_domains (
			domain_uuid, code, names, currency_code, revision,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.q.Exec(ctx, query,
		m.DomainUUID, m.Code, names, m.CurrencyCode, m.Revision,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save domain %s: %w", m.Code, err)
	}
	return nil
}

func (r *PgxScopeRepository) SaveJournal(ctx context.Context, j domain.SubJournal) error {
	m := mapping.ToModelSubJournal(j)
	names, err := json.Marshal(m.Names)
	if err != nil {
		return fmt.Errorf("failed to encode names of journal %s: %w", m.Code, err)
	}
	query := `
		INSERT INTO sub_journals (
			journal_uuid, code, domain_uuid, names, revision,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.q.Exec(ctx, query,
		m.JournalUUID, m.Code, m.DomainUUID, names, m.Revision,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save journal %s: %w", m.Code, err)
	}
	return nil
}
