package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/chart_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/core/services"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var testLedgerConfig = config.LedgerConfig{
	DefaultDomain:    "GJ",
	DefaultLanguage:  "en",
	DefaultCurrency:  "USD",
	CurrencyDecimals: 2,
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func names(n string) []domain.Name { return []domain.Name{{Name: n, Language: "en"}} }

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memory.Store
	service portssvc.AccountSvcFacade
	root    *domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.service = services.NewAccountService(suite.store.Repositories(), services.NewRulesResolver(testLedgerConfig))

	root, err := suite.service.CreateRoot(suite.ctx, domain.CreateRootInput{Names: names("Chart of Accounts")}, "tester")
	suite.Require().NoError(err)
	suite.root = root
}

func (suite *AccountServiceTestSuite) add(code, parent string, category domain.AccountCategory) *domain.Account {
	account, err := suite.service.AddAccount(suite.ctx, domain.AddAccountInput{
		Code:       code,
		ParentCode: parent,
		Names:      names("Account " + code),
		Category:   category,
	}, "tester")
	suite.Require().NoError(err)
	return account
}

func (suite *AccountServiceTestSuite) assertGone(code string) {
	_, err := suite.service.GetAccount(suite.ctx, domain.EntityRef{Code: code})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateRoot() {
	suite.True(suite.root.IsRoot())
	suite.False(suite.root.Revision.IsZero())
	suite.Equal("tester", suite.root.CreatedBy)
	suite.WithinDuration(time.Now(), suite.root.CreatedAt, time.Minute)

	got, err := suite.service.Root(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(suite.root.UUID, got.UUID)

	_, err = suite.service.CreateRoot(suite.ctx, domain.CreateRootInput{Names: names("Again")}, "tester")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestLoadRoot_NotInitialized() {
	svc := services.NewAccountService(memory.NewStore().Repositories(), services.NewRulesResolver(testLedgerConfig))

	_, err := svc.Root(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotInitialized)

	_, err = svc.LoadRoot(suite.ctx)
	suite.ErrorIs(err, apperrors.ErrNotInitialized)

	_, err = svc.AddAccount(suite.ctx, domain.AddAccountInput{Code: "1000", Names: names("Assets"), Category: domain.Asset}, "tester")
	suite.ErrorIs(err, apperrors.ErrNotInitialized)
}

func (suite *AccountServiceTestSuite) TestLoadRoot_FromExistingStore() {
	svc := services.NewAccountService(suite.store.Repositories(), services.NewRulesResolver(testLedgerConfig))

	root, err := svc.LoadRoot(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(suite.root.UUID, root.UUID)

	again, err := svc.Root(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(root.Revision, again.Revision)
}

func (suite *AccountServiceTestSuite) TestAddAndGet_CashInBank() {
	suite.add("1000", "", domain.Asset)
	_, err := suite.service.AddAccount(suite.ctx, domain.AddAccountInput{
		Code:       "1010",
		ParentCode: "1000",
		Names:      []domain.Name{{Name: "Cash in Bank", Language: "en"}},
		Category:   domain.Asset,
	}, "tester")
	suite.Require().NoError(err)

	got, err := suite.service.GetAccount(suite.ctx, domain.EntityRef{Code: "1010"})
	suite.Require().NoError(err)
	suite.False(got.Revision.IsZero())
	suite.Equal("Cash in Bank", got.NameIn("en"))
	suite.True(got.Debit)
	suite.False(got.Credit)

	byBoth, err := suite.service.GetAccount(suite.ctx, domain.EntityRef{Code: "1010", UUID: got.UUID})
	suite.Require().NoError(err)
	suite.Equal(got.UUID, byBoth.UUID)
}

func (suite *AccountServiceTestSuite) TestAdd_DuplicateCode() {
	suite.add("1010", "", domain.Asset)
	_, err := suite.service.AddAccount(suite.ctx, domain.AddAccountInput{
		Code: "1010", Names: names("Again"), Category: domain.Asset,
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestAdd_Validation() {
	tests := []struct {
		name    string
		input   domain.AddAccountInput
		wantErr error
	}{
		{"missing parent", domain.AddAccountInput{Code: "2000", ParentCode: "9999", Names: names("x"), Category: domain.Liability}, apperrors.ErrParentNotFound},
		{"no names", domain.AddAccountInput{Code: "2000", Category: domain.Liability}, apperrors.ErrValidation},
		{"no code", domain.AddAccountInput{Names: names("x"), Category: domain.Liability}, apperrors.ErrValidation},
		{"bad category", domain.AddAccountInput{Code: "2000", Names: names("x"), Category: "CASH"}, apperrors.ErrValidation},
		{"slash in code", domain.AddAccountInput{Code: "20/00", Names: names("x"), Category: domain.Liability}, apperrors.ErrValidation},
		{"both flags", domain.AddAccountInput{Code: "2000", Names: names("x"), Category: domain.Liability, Debit: boolPtr(true), Credit: boolPtr(true)}, apperrors.ErrConflictingFlags},
		{"neither flag", domain.AddAccountInput{Code: "2000", Names: names("x"), Category: domain.Liability, Debit: boolPtr(false), Credit: boolPtr(false)}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.AddAccount(suite.ctx, tt.input, "tester")
			suite.ErrorIs(err, tt.wantErr)
			suite.assertGone("2000")
		})
	}
}

func (suite *AccountServiceTestSuite) TestAdd_PolarityInheritance() {
	liabilities := suite.add("2000", "", domain.Liability)
	suite.True(liabilities.Credit, "children of the root take the category's normal balance")

	payables := suite.add("2100", "2000", domain.Liability)
	suite.True(payables.Credit, "polarity is inherited from the parent")

	contra, err := suite.service.AddAccount(suite.ctx, domain.AddAccountInput{
		Code: "2190", ParentCode: "2000", Names: names("Contra"), Category: domain.Liability, Debit: boolPtr(true),
	}, "tester")
	suite.Require().NoError(err)
	suite.True(contra.Debit)
	suite.False(contra.Credit)
}

func (suite *AccountServiceTestSuite) TestFind_Identifiers() {
	cash := suite.add("1010", "", domain.Asset)
	other := suite.add("1020", "", domain.Asset)

	_, err := suite.service.GetAccount(suite.ctx, domain.EntityRef{Code: "1010", UUID: other.UUID})
	suite.ErrorIs(err, apperrors.ErrIdentifierMismatch)

	_, err = suite.service.GetAccount(suite.ctx, domain.EntityRef{UUID: "not-a-uuid"})
	suite.ErrorIs(err, apperrors.ErrInvalidIdentifier)

	_, err = suite.service.GetAccount(suite.ctx, domain.EntityRef{})
	suite.ErrorIs(err, apperrors.ErrInvalidIdentifier)

	_, err = suite.service.GetAccount(suite.ctx, domain.EntityRef{Code: "9999"})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	got, err := suite.service.GetAccount(suite.ctx, domain.EntityRef{UUID: cash.UUID})
	suite.Require().NoError(err)
	suite.Equal("1010", got.Code)
}

func (suite *AccountServiceTestSuite) TestUpdate_StaleRevisionThenRetry() {
	account := suite.add("1010", "", domain.Asset)
	staleRevision := account.Revision

	first, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref:      domain.EntityRef{Code: "1010"},
		Revision: staleRevision,
		Names:    &[]domain.Name{{Name: "Cash in Bank", Language: "en"}},
	}, "tester")
	suite.Require().NoError(err)
	suite.NotEqual(staleRevision, first.Revision)

	_, err = suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref:      domain.EntityRef{Code: "1010"},
		Revision: staleRevision,
		Extra:    strPtr("late"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrStaleRevision)

	retried, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref:      domain.EntityRef{Code: "1010"},
		Revision: first.Revision,
		Extra:    strPtr("late"),
	}, "tester")
	suite.Require().NoError(err)
	suite.Equal("late", retried.Extra)
	suite.Equal("Cash in Bank", retried.NameIn("en"), "names untouched by a partial update")
}

func (suite *AccountServiceTestSuite) TestUpdate_RequiresRevision() {
	suite.add("1010", "", domain.Asset)
	_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref:   domain.EntityRef{Code: "1010"},
		Extra: strPtr("x"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdate_NoChangeKeepsRevision() {
	account := suite.add("1010", "", domain.Asset)
	got, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref:      domain.EntityRef{UUID: account.UUID},
		Revision: account.Revision,
		Extra:    strPtr(account.Extra),
	}, "tester")
	suite.Require().NoError(err)
	suite.Equal(account.Revision, got.Revision)
}

func (suite *AccountServiceTestSuite) TestUpdate_Flags() {
	account := suite.add("1010", "", domain.Asset)

	_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: account.Revision, Debit: boolPtr(true), Credit: boolPtr(true),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrConflictingFlags)

	flipped, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: account.Revision, Credit: boolPtr(true),
	}, "tester")
	suite.Require().NoError(err)
	suite.True(flipped.Credit)
	suite.False(flipped.Debit, "setting credit clears debit")
}

func (suite *AccountServiceTestSuite) TestUpdate_Reparent() {
	suite.add("1000", "", domain.Asset)
	a := suite.add("1010", "1000", domain.Asset)
	suite.add("1011", "1010", domain.Asset)
	suite.add("1500", "", domain.Asset)

	_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision, ParentCode: strPtr("1011"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrCycleDetected, "a descendant cannot become the parent")

	_, err = suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision, ParentCode: strPtr("1010"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrCycleDetected)

	moved, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision, ParentCode: strPtr("1500"),
	}, "tester")
	suite.Require().NoError(err)

	chain, err := suite.service.Ancestors(suite.ctx, domain.EntityRef{Code: "1011"})
	suite.Require().NoError(err)
	suite.Require().Len(chain, 3)
	suite.Equal(moved.UUID, chain[0].UUID)
	suite.Equal("1500", chain[1].Code)
	suite.True(chain[2].IsRoot())
}

func (suite *AccountServiceTestSuite) TestUpdate_CodeChange() {
	a := suite.add("1010", "", domain.Asset)
	suite.add("1020", "", domain.Asset)

	_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision, Code: strPtr("1020"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	renamed, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision, Code: strPtr("1015"),
	}, "tester")
	suite.Require().NoError(err)
	suite.Equal(a.UUID, renamed.UUID)
	suite.assertGone("1010")
}

func (suite *AccountServiceTestSuite) TestUpdate_Root() {
	_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{UUID: suite.root.UUID}, Revision: suite.root.Revision, Code: strPtr("ROOT"),
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrValidation)

	renamed, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
		Ref: domain.EntityRef{UUID: suite.root.UUID}, Revision: suite.root.Revision, Names: &[]domain.Name{{Name: "Ledger", Language: "en"}},
	}, "tester")
	suite.Require().NoError(err)
	suite.Equal("Ledger", renamed.NameIn("en"))
}

func (suite *AccountServiceTestSuite) TestDelete_Cascade() {
	suite.add("1010", "", domain.Asset)
	suite.add("1011", "1010", domain.Asset)
	suite.add("1012", "1010", domain.Asset)

	err := suite.service.DeleteAccount(suite.ctx, domain.DeleteAccountInput{Ref: domain.EntityRef{Code: "1010"}})
	suite.ErrorIs(err, apperrors.ErrHasChildren)

	children, err := suite.service.ListChildren(suite.ctx, domain.EntityRef{Code: "1010"})
	suite.Require().NoError(err)
	suite.Len(children, 2, "failed delete leaves the subtree intact")

	err = suite.service.DeleteAccount(suite.ctx, domain.DeleteAccountInput{Ref: domain.EntityRef{Code: "1010"}, Cascade: true})
	suite.Require().NoError(err)
	for _, code := range []string{"1010", "1011", "1012"} {
		suite.assertGone(code)
	}
}

func (suite *AccountServiceTestSuite) TestDelete_Guards() {
	a := suite.add("1010", "", domain.Asset)

	err := suite.service.DeleteAccount(suite.ctx, domain.DeleteAccountInput{Ref: domain.EntityRef{UUID: suite.root.UUID}, Cascade: true})
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.DeleteAccount(suite.ctx, domain.DeleteAccountInput{Ref: domain.EntityRef{Code: "1010"}, Revision: revision.Token("old")})
	suite.ErrorIs(err, apperrors.ErrStaleRevision)

	err = suite.service.DeleteAccount(suite.ctx, domain.DeleteAccountInput{Ref: domain.EntityRef{Code: "1010"}, Revision: a.Revision})
	suite.Require().NoError(err)
	suite.assertGone("1010")
}

func (suite *AccountServiceTestSuite) TestConcurrentUpdates_ExactlyOneWins() {
	account := suite.add("1010", "", domain.Asset)

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.service.UpdateAccount(suite.ctx, domain.UpdateAccountInput{
				Ref:      domain.EntityRef{Code: "1010"},
				Revision: account.Revision,
				Extra:    strPtr(string(rune('a' + i))),
			}, "tester")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case assert.ErrorIs(suite.T(), err, apperrors.ErrStaleRevision):
			conflicts++
		}
	}
	suite.Equal(1, wins)
	suite.Equal(writers-1, conflicts)
}

func (suite *AccountServiceTestSuite) TestConcurrentReparent_NeverCycles() {
	a := suite.add("1000", "", domain.Asset)
	b := suite.add("2000", "", domain.Asset)

	moves := []domain.UpdateAccountInput{
		{Ref: domain.EntityRef{Code: "1000"}, Revision: a.Revision, ParentCode: strPtr("2000")},
		{Ref: domain.EntityRef{Code: "2000"}, Revision: b.Revision, ParentCode: strPtr("1000")},
	}
	var wg sync.WaitGroup
	results := make(chan error, len(moves))
	for _, in := range moves {
		wg.Add(1)
		go func(in domain.UpdateAccountInput) {
			defer wg.Done()
			_, err := suite.service.UpdateAccount(suite.ctx, in, "tester")
			results <- err
		}(in)
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		suite.ErrorIs(err, apperrors.ErrCycleDetected)
	}
	suite.Equal(1, wins)

	for _, code := range []string{"1000", "2000"} {
		chain, err := suite.service.Ancestors(suite.ctx, domain.EntityRef{Code: code})
		suite.Require().NoError(err)
		suite.Equal(domain.RootCode, chain[len(chain)-1].Code)
	}
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Mock-based tests for storage failures ---

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByUUID(ctx context.Context, accountUUID string) (*domain.Account, error) {
	args := m.Called(ctx, accountUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccounts(ctx context.Context, parentUUID string) ([]domain.Account, error) {
	args := m.Called(ctx, parentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountDetailsForAccounts(ctx context.Context, accountUUIDs []string) (int, error) {
	args := m.Called(ctx, accountUUIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, expected revision.Token) error {
	return m.Called(ctx, account, expected).Error(0)
}

func (m *MockAccountRepository) DeleteAccounts(ctx context.Context, accountUUIDs []string) error {
	return m.Called(ctx, accountUUIDs).Error(0)
}

func TestAccountService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := services.NewAccountService(portsrepo.RepositoryProvider{AccountRepo: repo}, services.NewRulesResolver(testLedgerConfig))

	repo.On("FindAccountByCode", ctx, domain.RootCode).Return(nil, assert.AnError).Once()
	_, err := svc.LoadRoot(ctx)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrNotInitialized)

	repo.On("FindAccountByCode", ctx, "1010").Return(&domain.Account{UUID: "a", Code: "1010"}, nil).Once()
	repo.On("ListChildAccounts", ctx, "a").Return(nil, assert.AnError).Once()
	_, err = svc.ListChildren(ctx, domain.EntityRef{Code: "1010"})
	assert.ErrorIs(t, err, assert.AnError)

	repo.AssertExpectations(t)
}
