package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/models"
	"github.com/SscSPs/chart_ledger/internal/utils/mapping"
	"github.com/SscSPs/chart_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_uuid, currency, description, language, arguments, trans_date, domain_uuid, journal_uuid,
		posted, reviewed, extra, revision, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	q querier
}

// newPgxEntryRepository creates a new repository for entries and their details.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{q: pool}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	var journalUUID sql.NullString
	err := row.Scan(
		&m.EntryUUID,
		&m.Currency,
		&m.Description,
		&m.Language,
		&m.Arguments,
		&m.TransDate,
		&m.DomainUUID,
		&journalUUID,
		&m.Posted,
		&m.Reviewed,
		&m.Extra,
		&m.Revision,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	m.JournalUUID = journalUUID.String
	return m, err
}

// FindEntryByID retrieves an entry and its details.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_uuid = $1;`
	m, err := scanEntry(r.q.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, mapPgError(err))
	}

	details, err := r.loadDetails(ctx, []string{m.EntryUUID})
	if err != nil {
		return nil, err
	}
	m.Details = details[m.EntryUUID]

	entry := mapping.ToDomainEntry(m)
	return &entry, nil
}

// ListEntriesByDomain pages through a domain's entries newest first. One extra row is
// fetched to learn whether another page exists.
func (r *PgxEntryRepository) ListEntriesByDomain(ctx context.Context, domainUUID string, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE domain_uuid = $1`
	args := []any{domainUUID}

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("Pagination token is invalid.")
		}
		query += ` AND (trans_date, entry_uuid) < ($2, $3::uuid)`
		args = append(args, cursorDate, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY trans_date DESC, entry_uuid DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for domain %s: %w", domainUUID, mapPgError(err))
	}
	var page []models.Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		page = append(page, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", mapPgError(err))
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		last := page[len(page)-1]
		token := pagination.EncodeToken(last.TransDate, last.EntryUUID)
		next = &token
	}

	ids := make([]string, len(page))
	for i, m := range page {
		ids[i] = m.EntryUUID
	}
	details, err := r.loadDetails(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.Entry, len(page))
	for i, m := range page {
		m.Details = details[m.EntryUUID]
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, next, nil
}

// loadDetails fetches the detail lines of the given entries keyed by entry uuid. Account
// codes come from the accounts table so renamed accounts show their current code.
func (r *PgxEntryRepository) loadDetails(ctx context.Context, entryUUIDs []string) (map[string][]models.EntryDetail, error) {
	result := make(map[string][]models.EntryDetail, len(entryUUIDs))
	if len(entryUUIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT d.entry_uuid, d.line_no, d.account_uuid, a.code, d.amount, d.memo
		FROM entry_details d
		JOIN accounts a ON a.account_uuid = d.account_uuid
		WHERE d.entry_uuid = ANY($1)
		ORDER BY d.entry_uuid, d.line_no;
	`
	rows, err := r.q.Query(ctx, query, entryUUIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query entry details: %w", mapPgError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var d models.EntryDetail
		if err := rows.Scan(&d.EntryUUID, &d.LineNo, &d.AccountUUID, &d.AccountCode, &d.Amount, &d.Memo); err != nil {
			return nil, fmt.Errorf("failed to scan entry detail row: %w", err)
		}
		result[d.EntryUUID] = append(result[d.EntryUUID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry detail rows: %w", mapPgError(err))
	}
	return result, nil
}

// SaveEntry inserts the entry and its details. It must run inside a unit of work for the
// rows to be written atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.q.Exec(ctx, query,
		m.EntryUUID,
		m.Currency,
		m.Description,
		m.Language,
		m.Arguments,
		m.TransDate,
		m.DomainUUID,
		nullable(m.JournalUUID),
		m.Posted,
		m.Reviewed,
		m.Extra,
		m.Revision,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save entry %s: %w", m.EntryUUID, err)
	}
	return r.insertDetails(ctx, m.Details)
}

// UpdateEntry replaces the entry and its details when the stored revision equals expected.
func (r *PgxEntryRepository) UpdateEntry(ctx context.Context, entry domain.Entry, expected revision.Token) error {
	m := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries
		SET currency = $2, description = $3, language = $4, arguments = $5, trans_date = $6,
			domain_uuid = $7, journal_uuid = $8, posted = $9, reviewed = $10, extra = $11,
			revision = $12, last_updated_at = $13, last_updated_by = $14
		WHERE entry_uuid = $1 AND revision = $15;
	`
	cmdTag, err := r.q.Exec(ctx, query,
		m.EntryUUID,
		m.Currency,
		m.Description,
		m.Language,
		m.Arguments,
		m.TransDate,
		m.DomainUUID,
		nullable(m.JournalUUID),
		m.Posted,
		m.Reviewed,
		m.Extra,
		m.Revision,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		expected.String(),
	)
	if err != nil {
		if mapped := mapPgError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to execute update entry %s: %w", m.EntryUUID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return conditionalMiss(ctx, r.q, "entries", "entry_uuid", m.EntryUUID)
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM entry_details WHERE entry_uuid = $1;`, m.EntryUUID); err != nil {
		return fmt.Errorf("failed to clear details of entry %s: %w", m.EntryUUID, mapPgError(err))
	}
	return r.insertDetails(ctx, m.Details)
}

func (r *PgxEntryRepository) insertDetails(ctx context.Context, details []models.EntryDetail) error {
	if len(details) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, d := range details {
		batch.Queue(`
			INSERT INTO entry_details (entry_uuid, line_no, account_uuid, amount, memo)
			VALUES ($1, $2, $3, $4, $5);
		`, d.EntryUUID, d.LineNo, d.AccountUUID, d.Amount, d.Memo)
	}

	br := r.q.SendBatch(ctx, batch)
	for _, d := range details {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("failed to insert detail %d of entry %s: %w", d.LineNo, d.EntryUUID, mapPgError(err))
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to finish detail batch: %w", mapPgError(err))
	}
	return nil
}
