package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// resolveRef resolves a code/uuid reference with the supplied lookups. A uuid must parse;
// when both identifiers are given they must name the same record.
func resolveRef[T any](
	ctx context.Context,
	ref domain.EntityRef,
	byCode func(context.Context, string) (*T, error),
	byUUID func(context.Context, string) (*T, error),
	uuidOf func(*T) string,
) (*T, error) {
	if ref.Empty() {
		return nil, fmt.Errorf("%w: a code or uuid is required", apperrors.ErrInvalidIdentifier)
	}

	var parsed string
	if ref.UUID != "" {
		id, err := uuid.Parse(ref.UUID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a uuid", apperrors.ErrInvalidIdentifier, ref.UUID)
		}
		parsed = id.String()
	}

	if ref.Code == "" {
		return byUUID(ctx, parsed)
	}

	found, err := byCode(ctx, ref.Code)
	if err != nil {
		return nil, err
	}
	if parsed != "" && uuidOf(found) != parsed {
		return nil, fmt.Errorf("%w: code %q is %s, not %s", apperrors.ErrIdentifierMismatch, ref.Code, uuidOf(found), parsed)
	}
	return found, nil
}

func findAccount(ctx context.Context, repo portsrepo.AccountReader, ref domain.EntityRef) (*domain.Account, error) {
	return resolveRef(ctx, ref, repo.FindAccountByCode, repo.FindAccountByUUID,
		func(a *domain.Account) string { return a.UUID })
}

func findDomain(ctx context.Context, repo portsrepo.ScopeReader, ref domain.EntityRef) (*domain.LedgerDomain, error) {
	return resolveRef(ctx, ref, repo.FindDomainByCode, repo.FindDomainByUUID,
		func(d *domain.LedgerDomain) string { return d.UUID })
}

func findJournal(ctx context.Context, repo portsrepo.ScopeReader, ref domain.EntityRef) (*domain.SubJournal, error) {
	return resolveRef(ctx, ref, repo.FindJournalByCode, repo.FindJournalByUUID,
		func(j *domain.SubJournal) string { return j.UUID })
}

// ancestorsOf walks parent links from account up to the root. A revisited uuid means the
// stored tree has a cycle.
func ancestorsOf(ctx context.Context, repo portsrepo.AccountReader, account *domain.Account) ([]domain.Account, error) {
	var chain []domain.Account
	visited := map[string]struct{}{account.UUID: {}}
	current := account
	for current.ParentUUID != "" {
		parent, err := repo.FindAccountByUUID(ctx, current.ParentUUID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent %s of account %s: %w", current.ParentUUID, current.UUID, err)
		}
		if _, seen := visited[parent.UUID]; seen {
			return nil, fmt.Errorf("%w: account %s is its own ancestor", apperrors.ErrCycleDetected, parent.UUID)
		}
		visited[parent.UUID] = struct{}{}
		chain = append(chain, *parent)
		current = parent
	}
	return chain, nil
}
