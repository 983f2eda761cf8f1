package services

import (
	"context"

	"github.com/SscSPs/chart_ledger/internal/core/domain"
)

// AccountReaderSvc defines read operations on the chart of accounts
type AccountReaderSvc interface {
	// LoadRoot loads the root account, failing with apperrors.ErrNotInitialized when the
	// ledger has not been created yet.
	LoadRoot(ctx context.Context) (*domain.Account, error)

	// Root returns the root account resolved by an earlier LoadRoot or CreateRoot.
	Root(ctx context.Context) (*domain.Account, error)

	// GetAccount resolves an account by code, uuid, or both.
	GetAccount(ctx context.Context, ref domain.EntityRef) (*domain.Account, error)

	// ListChildren returns the direct sub-accounts of an account.
	ListChildren(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error)

	// Ancestors returns the chain from the account's parent up to the root.
	Ancestors(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations on the chart of accounts
type AccountWriterSvc interface {
	// CreateRoot initialises the ledger.
	CreateRoot(ctx context.Context, in domain.CreateRootInput, userID string) (*domain.Account, error)

	// AddAccount creates an account under the parent named by code.
	AddAccount(ctx context.Context, in domain.AddAccountInput, userID string) (*domain.Account, error)

	// UpdateAccount applies a revision-checked update.
	UpdateAccount(ctx context.Context, in domain.UpdateAccountInput, userID string) (*domain.Account, error)

	// DeleteAccount removes an account, and its descendants when cascading.
	DeleteAccount(ctx context.Context, in domain.DeleteAccountInput) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
