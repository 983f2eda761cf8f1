package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/middleware"
	"github.com/SscSPs/chart_ledger/internal/platform/metrics"
)

const (
	aggregateEntry = "entry"

	defaultListLimit = 20
	maxListLimit     = 100
)

// journalService orchestrates entry writes: build and validate, resolve references,
// check the revision, write, and issue the next token, all inside one unit of work.
type journalService struct {
	BaseService
	entryRepo portsrepo.EntryRepositoryFacade
	scopeRepo portsrepo.ScopeRepositoryFacade
	txManager portsrepo.TransactionManager
	rules     portssvc.RulesResolver
	revisions *revision.Controller
	now       func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(repos portsrepo.RepositoryProvider, rules portssvc.RulesResolver, options ...ServiceOption) portssvc.JournalSvcFacade {
	o := applyOptions(options)
	return &journalService{
		entryRepo: repos.EntryRepo,
		scopeRepo: repos.ScopeRepo,
		txManager: repos.TxManager,
		rules:     rules,
		revisions: o.revisions,
		now:       o.now,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) AddEntry(ctx context.Context, in domain.AddEntryInput, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var created *domain.Entry
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		validator := NewEntryValidator(uow.Accounts(), uow.Scopes(), s.rules)
		entry, err := validator.BuildAdd(ctx, in)
		if err != nil {
			return err
		}

		now := s.now()
		entry.ID = uuid.NewString()
		entry.Revision = s.revisions.Issue(revision.None)
		entry.AuditFields = newAudit(now, userID)
		if err := uow.Entries().SaveEntry(ctx, *entry); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		created = entry
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			metrics.ValidationFailures.WithLabelValues(aggregateEntry, OpAdd.String()).Inc()
			logger.Debug("Entry rejected", slog.String("reason", err.Error()))
		} else {
			logger.Error("Failed to add entry", slog.String("error", err.Error()))
		}
		return nil, err
	}

	metrics.Mutations.WithLabelValues(aggregateEntry, OpAdd.String()).Inc()
	logger.Info("Entry created successfully",
		slog.String("entry_id", created.ID),
		slog.Int("details", len(created.Details)))
	return created, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, in domain.UpdateEntryInput, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if in.ID == "" {
		return nil, apperrors.NewValidationError("Entry id is required.")
	}
	if _, err := uuid.Parse(in.ID); err != nil {
		return nil, fmt.Errorf("%w: entry id %q is not a uuid", apperrors.ErrInvalidIdentifier, in.ID)
	}

	var updated *domain.Entry
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, uow portsrepo.UnitOfWork) error {
		current, err := uow.Entries().FindEntryByID(ctx, in.ID)
		if err != nil {
			return err
		}

		validator := NewEntryValidator(uow.Accounts(), uow.Scopes(), s.rules)
		merged, err := validator.BuildUpdate(ctx, current, in)
		if err != nil {
			return err
		}

		if err := revision.Check(current.Revision, merged.Revision); err != nil {
			return fmt.Errorf("entry %s: %w", current.ID, err)
		}

		merged.Revision = s.revisions.Issue(current.Revision)
		merged.LastUpdatedAt = s.now()
		merged.LastUpdatedBy = userID
		if err := uow.Entries().UpdateEntry(ctx, *merged, current.Revision); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		switch status, _ := apperrors.Classify(err); {
		case errors.Is(err, apperrors.ErrStaleRevision):
			metrics.RevisionConflicts.WithLabelValues(aggregateEntry).Inc()
			logger.Debug("Entry update lost a revision race", slog.String("entry_id", in.ID))
		case errors.Is(err, apperrors.ErrValidation):
			metrics.ValidationFailures.WithLabelValues(aggregateEntry, OpUpdate.String()).Inc()
			logger.Debug("Entry update rejected", slog.String("entry_id", in.ID), slog.String("reason", err.Error()))
		case status == apperrors.StatusInternal:
			logger.Error("Failed to update entry", slog.String("entry_id", in.ID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	metrics.Mutations.WithLabelValues(aggregateEntry, OpUpdate.String()).Inc()
	logger.Info("Entry updated successfully",
		slog.String("entry_id", updated.ID),
		slog.String("revision", updated.Revision.String()))
	return updated, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.Entry, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, fmt.Errorf("%w: entry id %q is not a uuid", apperrors.ErrInvalidIdentifier, entryID)
	}
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, params portssvc.ListEntriesParams) ([]domain.Entry, *string, error) {
	ref := params.Domain
	if ref.Empty() {
		ref = domain.EntityRef{Code: s.rules.DefaultDomain()}
	}
	ledgerDomain, err := findDomain(ctx, s.scopeRepo, ref)
	if err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.entryRepo.ListEntriesByDomain(ctx, ledgerDomain.UUID, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list entries", slog.String("domain_uuid", ledgerDomain.UUID))
		}
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.Entry{}
	}

	s.LogDebug(ctx, "Entries listed", slog.Int("count", len(entries)), slog.String("domain", ledgerDomain.Code))
	return entries, nextToken, nil
}
