package repositories

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByUUID retrieves an account by its uuid.
	FindAccountByUUID(ctx context.Context, accountUUID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its code. The root has the empty code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListChildAccounts returns the direct sub-accounts of parentUUID ordered by code.
	ListChildAccounts(ctx context.Context, parentUUID string) ([]domain.Account, error)

	// CountDetailsForAccounts counts entry detail lines that post to any of the accounts.
	CountDetailsForAccounts(ctx context.Context, accountUUIDs []string) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A code collision returns apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount overwrites an account if its stored revision still equals expected,
	// otherwise it returns apperrors.ErrStaleRevision.
	UpdateAccount(ctx context.Context, account domain.Account, expected revision.Token) error

	// DeleteAccounts removes the accounts in the given order.
	DeleteAccounts(ctx context.Context, accountUUIDs []string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
