package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"github.com/SscSPs/chart_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/chart_ledger/internal/core/ports/services"
	"github.com/SscSPs/chart_ledger/internal/core/revision"
	"github.com/SscSPs/chart_ledger/internal/dto"
	"github.com/SscSPs/chart_ledger/internal/handlers"
	"github.com/SscSPs/chart_ledger/internal/platform/config"
	"github.com/SscSPs/chart_ledger/internal/platform/i18n"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) accounts(args mock.Arguments) ([]domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) LoadRoot(ctx context.Context) (*domain.Account, error) {
	return m.account(m.Called(ctx))
}
func (m *MockAccountService) Root(ctx context.Context) (*domain.Account, error) {
	return m.account(m.Called(ctx))
}
func (m *MockAccountService) GetAccount(ctx context.Context, ref domain.EntityRef) (*domain.Account, error) {
	return m.account(m.Called(ctx, ref))
}
func (m *MockAccountService) ListChildren(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, ref))
}
func (m *MockAccountService) Ancestors(ctx context.Context, ref domain.EntityRef) ([]domain.Account, error) {
	return m.accounts(m.Called(ctx, ref))
}
func (m *MockAccountService) CreateRoot(ctx context.Context, in domain.CreateRootInput, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, in, userID))
}
func (m *MockAccountService) AddAccount(ctx context.Context, in domain.AddAccountInput, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, in, userID))
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, in domain.UpdateAccountInput, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, in, userID))
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, in domain.DeleteAccountInput) error {
	return m.Called(ctx, in).Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a signed JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "chart-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockAccountService = new(MockAccountService)

	cfg := &config.Config{JWTSecret: suite.jwtSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{Account: suite.mockAccountService}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container, i18n.New()))
}

func (suite *AccountHandlerTestSuite) do(method, url string, body any, userID string, header ...string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testAccount(code string) *domain.Account {
	return &domain.Account{
		UUID:     uuid.NewString(),
		Code:     code,
		Category: domain.Asset,
		Debit:    true,
		Names:    []domain.Name{{Name: "Cash", Language: "en"}},
		Revision: revision.Token("rev-1"),
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	expected := testAccount("1010")

	suite.mockAccountService.On("AddAccount",
		mock.Anything,
		mock.MatchedBy(func(in domain.AddAccountInput) bool {
			return in.Code == "1010" && in.ParentCode == "1000" && in.Debit == nil && in.Category == domain.Asset
		}),
		userID,
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:       "1010",
		ParentCode: "1000",
		Names:      []dto.Name{{Name: "Cash", Language: "en"}},
		Category:   domain.Asset,
	}, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.UUID, resp.UUID)
	suite.Equal("rev-1", resp.Revision)
	suite.True(resp.Debit)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationLocalized() {
	verrs := &apperrors.ValidationErrors{}
	verrs.Add("Description is required.")
	verrs.Add("Detail %d has no account.", 2)
	suite.mockAccountService.On("AddAccount", mock.Anything, mock.Anything, mock.Anything).Return(nil, verrs.Err()).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Code: "x"}, "u1", "Accept-Language", "fr-CA, en;q=0.5")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("fr", w.Header().Get("Content-Language"))
	resp := suite.decodeError(w)
	suite.Equal(string(apperrors.StatusBadRequest), resp.Status)
	suite.Equal([]dto.ErrorItem{
		{Message: "La description est obligatoire."},
		{Message: "La ligne 2 n'a pas de compte."},
	}, resp.Errors)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"code":`, "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Require().Len(resp.Errors, 1)
	suite.Contains(resp.Errors[0].Message, "The request could not be parsed")
	suite.mockAccountService.AssertNotCalled(suite.T(), "AddAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/1010", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_RefFromPath() {
	byUUID := testAccount("1010")
	tests := []struct {
		name    string
		segment string
		ref     domain.EntityRef
		result  *domain.Account
		err     error
		status  int
	}{
		{"code", "1010", domain.EntityRef{Code: "1010"}, byUUID, nil, http.StatusOK},
		{"uuid", byUUID.UUID, domain.EntityRef{UUID: byUUID.UUID}, byUUID, nil, http.StatusOK},
		{"not found", "9999", domain.EntityRef{Code: "9999"}, nil, fmt.Errorf("%w: account 9999", apperrors.ErrNotFound), http.StatusNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockAccountService.On("GetAccount", mock.Anything, tt.ref).Return(tt.result, tt.err).Once()

			w := suite.do(http.MethodGet, "/api/v1/accounts/"+tt.segment, nil, "u1")
			suite.Equal(tt.status, w.Code)
		})
	}
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListChildrenAndAncestors() {
	children := []domain.Account{*testAccount("1010"), *testAccount("1020")}
	suite.mockAccountService.On("ListChildren", mock.Anything, domain.EntityRef{Code: "1000"}).Return(children, nil).Once()
	suite.mockAccountService.On("Ancestors", mock.Anything, domain.EntityRef{Code: "1010"}).Return([]domain.Account{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/1000/children", nil, "u1")
	suite.Equal(http.StatusOK, w.Code)
	var list dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Len(list.Accounts, 2)

	w = suite.do(http.MethodGet, "/api/v1/accounts/1010/ancestors", nil, "u1")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"accounts":[]}`, w.Body.String())
}

func (suite *AccountHandlerTestSuite) TestUpdateAccount_Stale() {
	suite.mockAccountService.On("UpdateAccount",
		mock.Anything,
		mock.MatchedBy(func(in domain.UpdateAccountInput) bool {
			return in.Ref.Code == "1010" && in.Revision == "old" && in.Closed != nil && *in.Closed
		}),
		"u1",
	).Return(nil, fmt.Errorf("%w: account 1010", apperrors.ErrStaleRevision)).Once()

	closed := true
	w := suite.do(http.MethodPut, "/api/v1/accounts/1010", dto.UpdateAccountRequest{Revision: "old", Closed: &closed}, "u1")

	suite.Equal(http.StatusConflict, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(string(apperrors.StatusConflict), resp.Status)
	suite.Equal("The record was changed by another request. Reload it and retry.", resp.Errors[0].Message)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, domain.DeleteAccountInput{
		Ref:      domain.EntityRef{Code: "1000"},
		Cascade:  true,
		Revision: revision.Token("r7"),
	}).Return(nil).Once()
	suite.mockAccountService.On("DeleteAccount", mock.Anything, domain.DeleteAccountInput{
		Ref: domain.EntityRef{Code: "2000"},
	}).Return(fmt.Errorf("%w: 2000", apperrors.ErrHasChildren)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/1000?cascade=true&revision=r7", nil, "u1")
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/accounts/2000", nil, "u1")
	suite.Equal(http.StatusConflict, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestInternalErrorIsNotLeaked() {
	suite.mockAccountService.On("LoadRoot", mock.Anything).Return(nil, errors.New("connection reset by peer")).Once()

	w := suite.do(http.MethodGet, "/api/v1/root", nil, "u1")

	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(string(apperrors.StatusInternal), resp.Status)
	suite.Equal("An unexpected error occurred.", resp.Errors[0].Message)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *AccountHandlerTestSuite) TestHealth() {
	suite.mockAccountService.On("LoadRoot", mock.Anything).Return(nil, apperrors.ErrNotInitialized).Once()

	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"ok","initialized":false}`, w.Body.String())
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
