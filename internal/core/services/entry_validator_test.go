package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(code, amount string) domain.Detail {
	return domain.Detail{AccountUUID: "uuid-" + code, AccountCode: code, Amount: decimal.RequireFromString(amount)}
}

func TestValidate(t *testing.T) {
	base := domain.Entry{
		ID:          "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Description: "Rent",
		Language:    "en",
		DomainUUID:  "domain-uuid",
		TransDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Revision:    revision.Token("rev"),
	}

	tests := []struct {
		name    string
		op      services.EntryOperation
		mutate  func(e *domain.Entry)
		details []domain.Detail
		want    []string
	}{
		{
			name: "no details reports both balance messages",
			op:   services.OpAdd,
			want: []string{services.MsgNoDetails, services.MsgNeedDebitAndCredit},
		},
		{
			name:    "only debits",
			op:      services.OpAdd,
			details: []domain.Detail{line("1010", "10"), line("1200", "5")},
			want:    []string{services.MsgNeedDebitAndCredit},
		},
		{
			name:    "one to one",
			op:      services.OpAdd,
			details: []domain.Detail{line("1010", "10"), line("4000", "-10")},
		},
		{
			name:    "many to one",
			op:      services.OpAdd,
			details: []domain.Detail{line("1010", "6"), line("1200", "4"), line("4000", "-10")},
		},
		{
			name:    "many to many",
			op:      services.OpAdd,
			details: []domain.Detail{line("1010", "6"), line("1200", "4"), line("4000", "-5"), line("4100", "-5")},
			want:    []string{services.MsgManyToMany},
		},
		{
			name:    "out of balance",
			op:      services.OpAdd,
			details: []domain.Detail{line("1010", "100"), line("4000", "-90.5")},
			want:    []string{"Entry amounts are out of balance by 9.5."},
		},
		{
			name: "missing add fields",
			op:   services.OpAdd,
			mutate: func(e *domain.Entry) {
				e.Description = ""
				e.DomainUUID = ""
				e.TransDate = time.Time{}
			},
			details: []domain.Detail{line("1010", "1"), line("4000", "-1")},
			want:    []string{"Description is required.", "Domain is required.", "Transaction date is required."},
		},
		{
			name:    "update without details only needs balance",
			op:      services.OpUpdate,
			details: nil,
			want:    []string{services.MsgNeedDebitAndCredit},
		},
		{
			name: "update requires id and revision",
			op:   services.OpUpdate,
			mutate: func(e *domain.Entry) {
				e.ID = ""
				e.Revision = revision.None
			},
			details: []domain.Detail{line("1010", "1"), line("4000", "-1")},
			want:    []string{"Entry id is required.", "Revision is required."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := base.Clone()
			entry.Details = tt.details
			if tt.mutate != nil {
				tt.mutate(&entry)
			}

			errs := services.Validate(&entry, tt.op)
			if len(tt.want) == 0 {
				assert.True(t, errs.Empty(), "unexpected violations: %v", errs.Messages())
				return
			}
			assert.Equal(t, tt.want, errs.Messages())
		})
	}
}

func TestEntryValidator_BuildAddDetailLines(t *testing.T) {
	fx := newLedgerFixture(t)
	repos := fx.store.Repositories()
	v := services.NewEntryValidator(repos.AccountRepo, repos.ScopeRepo, services.NewRulesResolver(testLedgerConfig))

	root, err := fx.container.Account.Root(fx.ctx)
	require.NoError(t, err)

	tests := []struct {
		name string
		line domain.DetailInput
		want string
	}{
		{"closed account", debit("1900", "10"), "Detail 1 account 1900 is closed."},
		{"root account", domain.DetailInput{Account: domain.EntityRef{UUID: root.UUID}, Debit: "10"}, "Detail 1 cannot post to the root account."},
		{"unknown account", debit("9999", "10"), "Detail 1 account 9999 not found."},
		{"malformed uuid", domain.DetailInput{Account: domain.EntityRef{UUID: "not-a-uuid"}, Debit: "10"}, "Detail 1 account identifier not-a-uuid is invalid."},
		{"no account", domain.DetailInput{Debit: "10"}, "Detail 1 has no account."},
		{"no amount", domain.DetailInput{Account: domain.EntityRef{Code: "1010"}}, "Detail 1 has no amount."},
		{"two amounts", domain.DetailInput{Account: domain.EntityRef{Code: "1010"}, Debit: "10", Credit: "10"}, "Detail 1 must have exactly one of debit, credit or amount."},
		{"not a number", debit("1010", "ten"), "Detail 1 amount ten is not a number."},
		{"zero", debit("1010", "0.00"), "Detail 1 amount must not be zero."},
		{"negative debit", debit("1010", "-10"), "Detail 1 debit and credit amounts must be positive."},
		{"too many decimals", debit("1010", "10.125"), "Detail 1 amount 10.125 has more than 2 decimal places."},
		{"huge exponent", debit("1010", "1e2000000000"), "Detail 1 amount 1e2000000000 is out of range."},
		{"tiny exponent", debit("1010", "1e-2147483648"), "Detail 1 amount 1e-2147483648 has more than 2 decimal places."},
		{"too many integer digits", debit("1010", "1000000000000000000000000"), "Detail 1 amount 1000000000000000000000000 is out of range."},
		{"negative signed amount scale", domain.DetailInput{Account: domain.EntityRef{Code: "1010"}, Amount: "-3.141"}, "Detail 1 amount 3.141 has more than 2 decimal places."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.BuildAdd(fx.ctx, validAddInput(tt.line, credit("4000", "10")))
			require.ErrorIs(t, err, apperrors.ErrValidation)

			var verrs *apperrors.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.Messages(), tt.want)
		})
	}
}

func TestEntryValidator_BuildAddSignedAmounts(t *testing.T) {
	fx := newLedgerFixture(t)
	repos := fx.store.Repositories()
	v := services.NewEntryValidator(repos.AccountRepo, repos.ScopeRepo, services.NewRulesResolver(testLedgerConfig))

	entry, err := v.BuildAdd(fx.ctx, validAddInput(
		domain.DetailInput{Account: domain.EntityRef{Code: "1010"}, Amount: "25.50"},
		domain.DetailInput{Account: domain.EntityRef{Code: "4000"}, Amount: "-25.50", Memo: "fee"},
	))
	require.NoError(t, err)
	require.Len(t, entry.Details, 2)
	assert.True(t, entry.Details[0].IsDebit())
	assert.False(t, entry.Details[1].IsDebit())
	assert.Equal(t, "fee", entry.Details[1].Memo)
	assert.Empty(t, entry.ID, "ids are assigned when the entry is saved")
}

func TestEntryValidator_TrailingZerosFitScale(t *testing.T) {
	fx := newLedgerFixture(t)
	repos := fx.store.Repositories()
	v := services.NewEntryValidator(repos.AccountRepo, repos.ScopeRepo, services.NewRulesResolver(testLedgerConfig))

	entry, err := v.BuildAdd(fx.ctx, validAddInput(debit("1010", "10.500"), credit("4000", "10.5000000")))
	require.NoError(t, err)
	require.Len(t, entry.Details, 2)
	assert.True(t, entry.Details[0].Amount.Equal(decimal.RequireFromString("10.5")))
}

func TestEntryValidator_ScopeReferences(t *testing.T) {
	fx := newLedgerFixture(t)
	repos := fx.store.Repositories()
	v := services.NewEntryValidator(repos.AccountRepo, repos.ScopeRepo, services.NewRulesResolver(testLedgerConfig))

	_, err := fx.container.Scope.AddDomain(fx.ctx, domain.AddDomainInput{Code: "EU", Names: names("Europe"), CurrencyCode: "eur"}, "tester")
	require.NoError(t, err)
	_, err = fx.container.Scope.AddJournal(fx.ctx, domain.AddJournalInput{Code: "SALES", Domain: domain.EntityRef{Code: "GJ"}, Names: names("Sales")}, "tester")
	require.NoError(t, err)
	_, err = fx.container.Scope.AddJournal(fx.ctx, domain.AddJournalInput{Code: "EUSALES", Domain: domain.EntityRef{Code: "EU"}, Names: names("EU Sales")}, "tester")
	require.NoError(t, err)

	t.Run("domain currency is the default", func(t *testing.T) {
		input := validAddInput(debit("1010", "1"), credit("4000", "1"))
		input.Domain = &domain.EntityRef{Code: "EU"}
		entry, err := v.BuildAdd(fx.ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "EUR", entry.Currency)
	})

	t.Run("unknown domain", func(t *testing.T) {
		input := validAddInput(debit("1010", "1"), credit("4000", "1"))
		input.Domain = &domain.EntityRef{Code: "XX"}
		_, err := v.BuildAdd(fx.ctx, input)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.Messages(), "Domain XX not found.")
		assert.Contains(t, verrs.Messages(), "Domain is required.")
	})

	t.Run("invalid currency", func(t *testing.T) {
		input := validAddInput(debit("1010", "1"), credit("4000", "1"))
		input.Currency = "US"
		_, err := v.BuildAdd(fx.ctx, input)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"Currency US is not a valid ISO 4217 code."}, verrs.Messages())
	})

	t.Run("journal from another domain", func(t *testing.T) {
		input := validAddInput(debit("1010", "1"), credit("4000", "1"))
		input.Journal = &domain.EntityRef{Code: "EUSALES"}
		_, err := v.BuildAdd(fx.ctx, input)
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"Journal EUSALES does not belong to the entry's domain."}, verrs.Messages())
	})

	t.Run("update merges and moves domains", func(t *testing.T) {
		input := validAddInput(debit("1010", "1"), credit("4000", "1"))
		input.Journal = &domain.EntityRef{Code: "SALES"}
		current, err := v.BuildAdd(fx.ctx, input)
		require.NoError(t, err)
		require.NotEmpty(t, current.JournalUUID)
		current.ID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
		current.Revision = revision.Token("r1")

		// The journal belongs to GJ, so moving to EU without naming a new journal fails.
		_, err = v.BuildUpdate(fx.ctx, current, domain.UpdateEntryInput{
			ID: current.ID, Revision: current.Revision, Domain: &domain.EntityRef{Code: "EU"},
		})
		var verrs *apperrors.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, []string{"Journal SALES does not belong to the entry's domain."}, verrs.Messages())

		merged, err := v.BuildUpdate(fx.ctx, current, domain.UpdateEntryInput{
			ID: current.ID, Revision: current.Revision,
			Domain:  &domain.EntityRef{Code: "EU"},
			Journal: &domain.EntityRef{},
		})
		require.NoError(t, err)
		assert.Empty(t, merged.JournalUUID)
		assert.NotEqual(t, current.DomainUUID, merged.DomainUUID)
		assert.Equal(t, current.Description, merged.Description)
		assert.Equal(t, current.Currency, merged.Currency, "currency is only re-derived when supplied")
	})
}
