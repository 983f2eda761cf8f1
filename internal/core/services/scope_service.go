package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

// scopeService manages ledger domains and their sub-journals.
type scopeService struct {
	BaseService
	scopeRepo portsrepo.ScopeRepositoryFacade
	txManager portsrepo.TransactionManager
	rules     portssvc.RulesResolver
	revisions *revision.Controller
	now       func() time.Time
}

// NewScopeService creates the domain/journal registry service.
func NewScopeService(repos portsrepo.RepositoryProvider, rules portssvc.RulesResolver, options ...ServiceOption) portssvc.ScopeSvcFacade {
	o := applyOptions(options)
	return &scopeService{
		scopeRepo: repos.ScopeRepo,
		txManager: repos.TxManager,
		rules:     rules,
		revisions: o.revisions,
		now:       o.now,
	}
}

var _ portssvc.ScopeSvcFacade = (*scopeService)(nil)

func (s *scopeService) AddDomain(ctx context.Context, in domain.AddDomainInput, userID string) (*domain.LedgerDomain, error) {
	errs := validateStruct(in)
	code := strings.ToUpper(in.CurrencyCode)
	if code == "" {
		code = s.rules.DefaultCurrency()
	}
	if _, err := currency.ParseISO(code); err != nil {
		errs.Add("Currency %s is not a valid ISO 4217 code.", code)
	}
	if !errs.Empty() {
		return nil, wrapValidation("invalid domain", errs)
	}

	d := domain.LedgerDomain{
		UUID:         uuid.NewString(),
		Code:         in.Code,
		Names:        slices.Clone(in.Names),
		CurrencyCode: code,
		Revision:     s.revisions.Issue(revision.None),
		AuditFields:  newAudit(s.now(), userID),
	}
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		if _, err := uow.Scopes().FindDomainByCode(ctx, d.Code); err == nil {
			return fmt.Errorf("%w: domain code %q", apperrors.ErrDuplicate, d.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return uow.Scopes().SaveDomain(ctx, d)
	})
	if err != nil {
		s.logWriteFailure(ctx, "domain", err, "Failed to add domain", slog.String("code", in.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Domain created", slog.String("domain_uuid", d.UUID), slog.String("code", d.Code))
	return &d, nil
}

func (s *scopeService) GetDomain(ctx context.Context, ref domain.EntityRef) (*domain.LedgerDomain, error) {
	return findDomain(ctx, s.scopeRepo, ref)
}

func (s *scopeService) AddJournal(ctx context.Context, in domain.AddJournalInput, userID string) (*domain.SubJournal, error) {
	errs := validateStruct(in)
	if in.Domain.Empty() {
		errs.Add("Domain is required.")
	}
	if !errs.Empty() {
		return nil, wrapValidation("invalid journal", errs)
	}

	var created domain.SubJournal
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		scopes := uow.Scopes()
		parent, err := findDomain(ctx, scopes, in.Domain)
		if err != nil {
			return err
		}
		if _, err := scopes.FindJournalByCode(ctx, in.Code); err == nil {
			return fmt.Errorf("%w: journal code %q", apperrors.ErrDuplicate, in.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		created = domain.SubJournal{
			UUID:        uuid.NewString(),
			Code:        in.Code,
			DomainUUID:  parent.UUID,
			Names:       slices.Clone(in.Names),
			Revision:    s.revisions.Issue(revision.None),
			AuditFields: newAudit(s.now(), userID),
		}
		return scopes.SaveJournal(ctx, created)
	})
	if err != nil {
		s.logWriteFailure(ctx, "journal", err, "Failed to add journal", slog.String("code", in.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created", slog.String("journal_uuid", created.UUID), slog.String("code", created.Code))
	return &created, nil
}

func (s *scopeService) GetJournal(ctx context.Context, ref domain.EntityRef) (*domain.SubJournal, error) {
	return findJournal(ctx, s.scopeRepo, ref)
}
