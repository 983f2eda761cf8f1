package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/platform/metrics"
	"github.com/google/uuid"
)

const aggregateAccount = "account"

// accountService implements the AccountSvcFacade interface over an arena of accounts
// keyed by uuid; parent links are uuids.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txManager   portsrepo.TransactionManager
	rules       portssvc.RulesResolver
	revisions   *revision.Controller
	now         func() time.Time
	rootUUID    atomic.Pointer[string]
}

// ServiceOption is a functional option shared by the ledger services.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	revisions *revision.Controller
	now       func() time.Time
}

// WithRevisionController makes services share one token issuer.
func WithRevisionController(c *revision.Controller) ServiceOption {
	return func(o *serviceOptions) {
		o.revisions = c
	}
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

func applyOptions(options []ServiceOption) serviceOptions {
	o := serviceOptions{
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(&o)
	}
	if o.revisions == nil {
		o.revisions = revision.NewController()
	}
	return o
}

// NewAccountService creates the account tree service.
func NewAccountService(repos portsrepo.RepositoryProvider, rules portssvc.RulesResolver, options ...ServiceOption) portssvc.AccountSvcFacade {
	o := applyOptions(options)
	return &accountService{
		accountRepo: repos.AccountRepo,
		txManager:   repos.TxManager,
		rules:       rules,
		revisions:   o.revisions,
		now:         o.now,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) LoadRoot(ctx context.Context) (*domain.Account, error) {
	root, err := s.accountRepo.FindAccountByCode(ctx, domain.RootCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no root account", apperrors.ErrNotInitialized)
		}
		s.LogError(ctx, err, "Failed to load root account")
		return nil, err
	}
	rootUUID := root.UUID
	s.rootUUID.Store(&rootUUID)
	return root, nil
}

func (s *accountService) Root(ctx context.Context) (*domain.Account, error) {
	rootUUID := s.rootUUID.Load()
	if rootUUID == nil {
		return nil, fmt.Errorf("%w: root has not been loaded or created", apperrors.ErrNotInitialized)
	}
	return s.accountRepo.FindAccountByUUID(ctx, *rootUUID)
}

func (s *accountService) GetAccount(ctx context.Context, ref domain.EntityRef) (*domain.Account, error) {
	account, err := findAccount(ctx, s.accountRepo, ref)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidIdentifier) &&
			!errors.Is(err, apperrors.ErrIdentifierMismatch) {
			s.LogError(ctx, err, "Failed to find account", slog.String("ref", ref.String()))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListChildren(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error) {
	account, err := s.GetAccount(ctx, ref)
	if err != nil {
		return nil, err
	}
	children, err := s.accountRepo.ListChildAccounts(ctx, account.UUID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sub-accounts", slog.String("account_uuid", account.UUID))
		return nil, err
	}
	if children == nil {
		return []domain.Account{}, nil
	}
	return children, nil
}

func (s *accountService) Ancestors(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error) {
	account, err := s.GetAccount(ctx, ref)
	if err != nil {
		return nil, err
	}
	chain, err := ancestorsOf(ctx, s.accountRepo, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to walk account ancestors", slog.String("account_uuid", account.UUID))
		return nil, err
	}
	if chain == nil {
		return []domain.Account{}, nil
	}
	return chain, nil
}

func (s *accountService) CreateRoot(ctx context.Context, in domain.CreateRootInput, userID string) (*domain.Account, error) {
	if errs := validateStruct(in); !errs.Empty() {
		metrics.ValidationFailures.WithLabelValues(aggregateAccount, "create_root").Inc()
		return nil, wrapValidation("invalid root account", errs)
	}

	now := s.now()
	root := domain.Account{
		UUID:        uuid.NewString(),
		Code:        domain.RootCode,
		Names:       slices.Clone(in.Names),
		Extra:       in.Extra,
		AuditFields: newAudit(now, userID),
	}

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := uow.Accounts().FindAccountByCode(ctx, domain.RootCode); err == nil {
			return fmt.Errorf("%w: the ledger already has a root account", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		root.Revision = s.revisions.Issue(revision.None)
		if err := uow.Accounts().SaveAccount(ctx, root); err != nil {
			return err
		}
		return s.ensureDefaultDomain(ctx, uow.Scopes(), now, userID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create root account")
		}
		return nil, err
	}

	rootUUID := root.UUID
	s.rootUUID.Store(&rootUUID)
	metrics.Mutations.WithLabelValues(aggregateAccount, "create_root").Inc()
	s.LogInfo(ctx, "Root account created", slog.String("account_uuid", root.UUID))
	return &root, nil
}

// ensureDefaultDomain creates the domain named by the domain.default rule if it is missing.
func (s *accountService) ensureDefaultDomain(ctx context.Context, scopes portsrepo.ScopeRepositoryFacade, now time.Time, userID string) error {
	code := s.rules.DefaultDomain()
	if _, err := scopes.FindDomainByCode(ctx, code); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	d := domain.LedgerDomain{
		UUID:         uuid.NewString(),
		Code:         code,
		Names:        []domain.Name{{Name: "General Journal", Language: s.rules.DefaultLanguage()}},
		CurrencyCode: s.rules.DefaultCurrency(),
		Revision:     s.revisions.Issue(revision.None),
		AuditFields:  newAudit(now, userID),
	}
	return scopes.SaveDomain(ctx, d)
}

func (s *accountService) AddAccount(ctx context.Context, in domain.AddAccountInput, userID string) (*domain.Account, error) {
	errs := validateStruct(in)
	if in.Category != "" && !in.Category.Valid() {
		errs.Add("Account category %s is not recognised.", string(in.Category))
	}
	if in.Debit != nil && in.Credit != nil && *in.Debit == *in.Credit {
		if *in.Debit {
			return nil, fmt.Errorf("%w: an account cannot be both debit and credit", apperrors.ErrConflictingFlags)
		}
		errs.Add("Account must be either debit or credit.")
	}
	if !errs.Empty() {
		metrics.ValidationFailures.WithLabelValues(aggregateAccount, "add").Inc()
		return nil, wrapValidation("invalid account", errs)
	}

	var created domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		accounts := uow.Accounts()
		if _, err := accounts.FindAccountByCode(ctx, domain.RootCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: create the root account first", apperrors.ErrNotInitialized)
			}
			return err
		}

		parent, err := accounts.FindAccountByCode(ctx, in.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %q", apperrors.ErrParentNotFound, in.ParentCode)
			}
			return err
		}

		if _, err := accounts.FindAccountByCode(ctx, in.Code); err == nil {
			return fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, in.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		debit := resolvePolarity(parent, in.Category, in.Debit, in.Credit)
		created = domain.Account{
			UUID:        uuid.NewString(),
			Code:        in.Code,
			ParentUUID:  parent.UUID,
			Category:    in.Category,
			Debit:       debit,
			Credit:      !debit,
			Closed:      in.Closed,
			Names:       slices.Clone(in.Names),
			Extra:       in.Extra,
			Revision:    s.revisions.Issue(revision.None),
			AuditFields: newAudit(s.now(), userID),
		}
		return accounts.SaveAccount(ctx, created)
	})
	if err != nil {
		s.logWriteFailure(ctx, aggregateAccount, err, "Failed to add account", slog.String("code", in.Code))
		return nil, err
	}

	metrics.Mutations.WithLabelValues(aggregateAccount, "add").Inc()
	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_uuid", created.UUID),
		slog.String("code", created.Code))
	return &created, nil
}

// resolvePolarity decides whether a new account is debit-natured. Explicit flags win, then
// the parent's polarity, then the category's normal balance for children of the root.
func resolvePolarity(parent *domain.Account, category domain.AccountCategory, debit, credit *bool) bool {
	switch {
	case debit != nil:
		return *debit
	case credit != nil:
		return !*credit
	case !parent.IsRoot():
		return parent.Debit
	default:
		return category.NormallyDebit()
	}
}

func (s *accountService) UpdateAccount(ctx context.Context, in domain.UpdateAccountInput, userID string) (*domain.Account, error) {
	errs := validateStruct(in)
	if in.Revision.IsZero() {
		errs.Add("Revision is required.")
	}
	if in.Code != nil && *in.Code == "" {
		errs.Add("Field %s is required.", "Code")
	}
	if in.Category != nil && !in.Category.Valid() {
		errs.Add("Account category %s is not recognised.", string(*in.Category))
	}
	if in.Debit != nil && in.Credit != nil && *in.Debit == *in.Credit {
		if *in.Debit {
			return nil, fmt.Errorf("%w: an account cannot be both debit and credit", apperrors.ErrConflictingFlags)
		}
		errs.Add("Account must be either debit or credit.")
	}
	if !errs.Empty() {
		metrics.ValidationFailures.WithLabelValues(aggregateAccount, "update").Inc()
		return nil, wrapValidation("invalid account update", errs)
	}

	var result domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		accounts := uow.Accounts()
		current, err := findAccount(ctx, accounts, in.Ref)
		if err != nil {
			return err
		}
		if err := revision.Check(current.Revision, in.Revision); err != nil {
			return fmt.Errorf("account %s: %w", current.UUID, err)
		}

		next, err := s.applyAccountUpdate(ctx, accounts, current, in)
		if err != nil {
			return err
		}
		if accountUnchanged(current, next) {
			result = *current
			return nil
		}

		next.Revision = s.revisions.Issue(current.Revision)
		next.LastUpdatedAt = s.now()
		next.LastUpdatedBy = userID
		if err := accounts.UpdateAccount(ctx, *next, current.Revision); err != nil {
			return err
		}
		result = *next
		return nil
	})
	if err != nil {
		s.logWriteFailure(ctx, aggregateAccount, err, "Failed to update account", slog.String("ref", in.Ref.String()))
		return nil, err
	}

	metrics.Mutations.WithLabelValues(aggregateAccount, "update").Inc()
	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_uuid", result.UUID),
		slog.String("revision", result.Revision.String()))
	return &result, nil
}

// applyAccountUpdate returns a copy of current with the supplied fields applied. Structural
// changes are checked against the tree: codes stay unique and a new parent may not be a
// descendant.
func (s *accountService) applyAccountUpdate(ctx context.Context, accounts portsrepo.AccountReader, current *domain.Account, in domain.UpdateAccountInput) (*domain.Account, error) {
	next := current.Clone()
	errs := &apperrors.ValidationErrors{}

	if current.IsRoot() {
		if in.Code != nil && *in.Code != current.Code {
			errs.Add("The root account's code cannot be changed.")
		}
		if in.ParentCode != nil {
			errs.Add("The root account cannot be moved.")
		}
		if in.Category != nil || in.Debit != nil || in.Credit != nil {
			errs.Add("The root account has no category or polarity.")
		}
		if !errs.Empty() {
			return nil, wrapValidation("invalid root update", errs)
		}
	}

	if in.Code != nil && *in.Code != current.Code {
		if _, err := accounts.FindAccountByCode(ctx, *in.Code); err == nil {
			return nil, fmt.Errorf("%w: account code %q", apperrors.ErrDuplicate, *in.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		next.Code = *in.Code
	}

	if in.ParentCode != nil {
		parent, err := accounts.FindAccountByCode(ctx, *in.ParentCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %q", apperrors.ErrParentNotFound, *in.ParentCode)
			}
			return nil, err
		}
		if parent.UUID == current.UUID {
			return nil, fmt.Errorf("%w: account %s cannot be its own parent", apperrors.ErrCycleDetected, current.Code)
		}
		chain, err := ancestorsOf(ctx, accounts, parent)
		if err != nil {
			return nil, err
		}
		for _, ancestor := range chain {
			if ancestor.UUID == current.UUID {
				return nil, fmt.Errorf("%w: %s is a descendant of %s", apperrors.ErrCycleDetected, parent.Code, current.Code)
			}
		}
		next.ParentUUID = parent.UUID
	}

	if in.Names != nil {
		next.Names = slices.Clone(*in.Names)
	}
	if in.Category != nil {
		next.Category = *in.Category
	}
	if in.Debit != nil {
		next.Debit = *in.Debit
		next.Credit = !*in.Debit
	}
	if in.Credit != nil {
		next.Credit = *in.Credit
		next.Debit = !*in.Credit
	}
	if in.Closed != nil {
		next.Closed = *in.Closed
	}
	if in.Extra != nil {
		next.Extra = *in.Extra
	}
	return &next, nil
}

func accountUnchanged(a, b *domain.Account) bool {
	return a.Code == b.Code &&
		a.ParentUUID == b.ParentUUID &&
		a.Category == b.Category &&
		a.Debit == b.Debit &&
		a.Credit == b.Credit &&
		a.Closed == b.Closed &&
		a.Extra == b.Extra &&
		slices.Equal(a.Names, b.Names)
}

func (s *accountService) DeleteAccount(ctx context.Context, in domain.DeleteAccountInput) error {
	var removed []string
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		accounts := uow.Accounts()
		target, err := findAccount(ctx, accounts, in.Ref)
		if err != nil {
			return err
		}
		if target.IsRoot() {
			return apperrors.NewValidationError("The root account cannot be deleted.")
		}
		if !in.Revision.IsZero() {
			if err := revision.Check(target.Revision, in.Revision); err != nil {
				return fmt.Errorf("account %s: %w", target.UUID, err)
			}
		}

		children, err := accounts.ListChildAccounts(ctx, target.UUID)
		if err != nil {
			return err
		}
		if len(children) > 0 && !in.Cascade {
			return fmt.Errorf("%w: %s has %d sub-accounts", apperrors.ErrHasChildren, target.Code, len(children))
		}

		removed, err = collectSubtree(ctx, accounts, target.UUID, map[string]struct{}{})
		if err != nil {
			return err
		}

		inUse, err := accounts.CountDetailsForAccounts(ctx, removed)
		if err != nil {
			return err
		}
		if inUse > 0 {
			return fmt.Errorf("%w: %d detail lines post to %s or its sub-accounts", apperrors.ErrAccountInUse, inUse, target.Code)
		}

		return accounts.DeleteAccounts(ctx, removed)
	})
	if err != nil {
		s.logWriteFailure(ctx, aggregateAccount, err, "Failed to delete account", slog.String("ref", in.Ref.String()))
		return err
	}

	metrics.Mutations.WithLabelValues(aggregateAccount, "delete").Add(float64(len(removed)))
	s.LogInfo(ctx, "Account deleted successfully",
		slog.String("ref", in.Ref.String()),
		slog.Int("accounts_removed", len(removed)))
	return nil
}

// collectSubtree lists accountUUID and its descendants depth-first, children before parents.
func collectSubtree(ctx context.Context, accounts portsrepo.AccountReader, accountUUID string, visited map[string]struct{}) ([]string, error) {
	if _, seen := visited[accountUUID]; seen {
		return nil, fmt.Errorf("%w: account %s reached twice", apperrors.ErrCycleDetected, accountUUID)
	}
	visited[accountUUID] = struct{}{}

	children, err := accounts.ListChildAccounts(ctx, accountUUID)
	if err != nil {
		return nil, err
	}
	var order []string
	for _, child := range children {
		sub, err := collectSubtree(ctx, accounts, child.UUID, visited)
		if err != nil {
			return nil, err
		}
		order = append(order, sub...)
	}
	return append(order, accountUUID), nil
}

// logWriteFailure logs unexpected failures at error level and expected rejections at debug.
func (s *BaseService) logWriteFailure(ctx context.Context, aggregate string, err error, msg string, keyvals ...any) {
	if status, _ := apperrors.Classify(err); status != apperrors.StatusInternal {
		if errors.Is(err, apperrors.ErrStaleRevision) {
			metrics.RevisionConflicts.WithLabelValues(aggregate).Inc()
		}
		if errors.Is(err, apperrors.ErrValidation) {
			metrics.ValidationFailures.WithLabelValues(aggregate, "write").Inc()
		}
		s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func newAudit(now time.Time, userID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
