package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/handlers"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockAccountService  *MockAccountService
	mockCustomerService *MockCustomerService
	mockReporting       *MockReportingService
	mockPeriod          *MockPeriodService
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(io.Discard, nil))))

	suite.mockAccountService = new(MockAccountService)
	suite.mockCustomerService = new(MockCustomerService)
	suite.mockReporting = new(MockReportingService)
	suite.mockPeriod = new(MockPeriodService)

	cfg := &config.Config{IsProduction: true}
	err := handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Customer:  suite.mockCustomerService,
		Reporting: suite.mockReporting,
		Period:    suite.mockPeriod,
	})
	suite.Require().NoError(err)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockCustomerService.AssertExpectations(suite.T())
	suite.mockReporting.AssertExpectations(suite.T())
	suite.mockPeriod.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			payload, err := json.Marshal(b)
			suite.Require().NoError(err)
			reader = bytes.NewReader(payload)
		}
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	acc := domain.NewSavingsAccount("20001", "Loc", dec("1200"), domain.SavingsTerms{
		InterestRatePercent: dec("3"), WithdrawLimitPerMonth: 2, WithdrawalFee: dec("5"),
	})
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.AccountID == "20001" && req.Kind == "savings" && req.OpeningBalance.Equal(dec("1200")) &&
			req.WithdrawLimitPerMonth != nil && *req.WithdrawLimitPerMonth == 2
	})).Return(acc, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts",
		`{"accountID":"20001","ownerName":"Loc","kind":"savings","openingBalance":"1200","interestRatePercent":3,"withdrawLimitPerMonth":2,"withdrawalFee":"5"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("20001", resp.AccountID)
	suite.Equal(domain.Savings, resp.Kind)
	suite.Require().NotNil(resp.Savings)
	suite.Equal(2, resp.Savings.WithdrawLimitPerMonth)
	suite.True(dec("1200").Equal(resp.Balance))
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"missing owner", `{"accountID":"1"}`, "ownerName is required"},
		{"negative opening balance", `{"ownerName":"x","openingBalance":"-5"}`, "openingBalance must not be negative"},
		{"negative fee", `{"ownerName":"x","kind":"savings","withdrawalFee":-1}`, "withdrawalFee must not be negative"},
		{"unknown kind", `{"ownerName":"x","kind":"checking"}`, "kind must be STANDARD or SAVINGS"},
		{"malformed json", `{"ownerName":`, "Invalid request format"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/accounts", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Contains(suite.errorBody(w), tt.wantMsg)
		})
	}
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: account with ID '10001' already exists", apperrors.ErrDuplicate)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", `{"accountID":"10001","ownerName":"Phuc"}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccount", mock.Anything, "nope").
		Return(nil, fmt.Errorf("account with ID 'nope': %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/nope", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts() {
	accounts := []*domain.Account{
		domain.NewAccount("10001", "Phuc", dec("800")),
		domain.NewAccount("20001", "Loc", dec("1200")),
	}
	suite.mockAccountService.On("ListAccounts", mock.Anything, 5, 0).Return(accounts, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?limit=5", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)

	w = suite.do(http.MethodGet, "/api/v1/accounts?limit=0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeposit_Success() {
	acc := domain.NewAccount("10001", "Phuc", dec("800"))
	snap, err := acc.DepositSnapshot(dec("200"), "2025-09-17", "Paycheck")
	suite.Require().NoError(err)
	// A later operation must not leak into the response.
	suite.Require().NoError(acc.Withdraw(dec("50"), "2025-09-18", "ATM"))
	suite.mockAccountService.On("Deposit", mock.Anything, "10001", mock.MatchedBy(func(req dto.AmountRequest) bool {
		return req.Amount.Equal(dec("200")) && req.Date == "2025-09-17" && req.Note == "Paycheck"
	})).Return(&snap, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/10001/deposits", `{"amount":200,"date":"2025-09-17","note":"Paycheck"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(dec("1000").Equal(resp.Balance))
	suite.Equal(1, resp.TransactionCount)
}

func (suite *HandlerTestSuite) TestDeposit_InvalidAmount() {
	suite.mockAccountService.On("Deposit", mock.Anything, "10001", mock.Anything).
		Return(nil, fmt.Errorf("%w: deposit of 0", apperrors.ErrInvalidAmount)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/10001/deposits", `{"amount":0}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "amount must be positive")
}

func (suite *HandlerTestSuite) TestWithdraw_InsufficientFunds() {
	suite.mockAccountService.On("Withdraw", mock.Anything, "20001", mock.Anything).
		Return(nil, fmt.Errorf("%w: withdrawal of 100 (total 105) exceeds balance 100", apperrors.ErrInsufficientFunds)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/20001/withdrawals", `{"amount":"100"}`)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.errorBody(w), "insufficient funds")
}

func (suite *HandlerTestSuite) TestApplyInterest_EmptyBody() {
	acc := domain.NewSavingsAccount("30001", "Tho", dec("2000"), domain.SavingsTerms{InterestRatePercent: dec("3")})
	snap, _, _ := acc.ApplyInterestSnapshot("N/A")
	suite.mockAccountService.On("ApplyInterest", mock.Anything, "30001", "").Return(&snap, dec("60"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/30001/interest", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestResetWithdrawCount_StandardAccount() {
	suite.mockAccountService.On("ResetWithdrawCount", mock.Anything, "10001").
		Return(nil, fmt.Errorf("%w: account 10001 has no withdrawal quota", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/10001/withdraw-count/reset", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesToken() {
	token := "abc"
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{{Sequence: 3, Kind: domain.Deposit, KindLabel: "Deposit", Amount: dec("10")}},
	}
	suite.mockAccountService.On("ListTransactions", mock.Anything, "10001", mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
		return p.Limit == 2 && p.NextToken != nil && *p.NextToken == token
	})).Return(expected, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/10001/transactions?limit=2&nextToken="+token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal(3, resp.Transactions[0].Sequence)
	suite.Nil(resp.NextToken)
}

func (suite *HandlerTestSuite) TestTransfer() {
	phuc := domain.NewAccount("10001", "Phuc", dec("900"))
	loc := domain.NewAccount("20001", "Loc", dec("1200"))
	src, dst, err := domain.TransferSnapshots(phuc, loc, dec("150"), "2025-09-17", "Pay Loc")
	suite.Require().NoError(err)
	suite.mockAccountService.On("Transfer", mock.Anything, mock.MatchedBy(func(req dto.TransferRequest) bool {
		return req.SourceAccountID == "10001" && req.TargetAccountID == "20001" && req.Amount.Equal(dec("150"))
	})).Return(&src, &dst, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers",
		`{"sourceAccountID":"10001","targetAccountID":"20001","amount":150,"date":"2025-09-17","note":"Pay Loc"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(dec("750").Equal(resp.Source.Balance))
	suite.True(dec("1350").Equal(resp.Target.Balance))
}

func (suite *HandlerTestSuite) TestTransfer_SameAccount() {
	suite.mockAccountService.On("Transfer", mock.Anything, mock.Anything).
		Return(nil, nil, fmt.Errorf("%w: 10001", apperrors.ErrSameAccount)).Once()

	w := suite.do(http.MethodPost, "/api/v1/transfers", `{"sourceAccountID":"10001","targetAccountID":"10001","amount":1}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestStatement_TextFormat() {
	acc := domain.NewAccount("10001", "Phuc", dec("800"))
	suite.Require().NoError(acc.Deposit(dec("200"), "2025-09-17", "Paycheck"))
	statement := &domain.Statement{CustomerShortID: "01", Account: acc.Snapshot(), Reconciled: true}
	suite.mockReporting.On("Statement", mock.Anything, "10001", "01").Return(statement, nil).Twice()

	w := suite.do(http.MethodGet, "/api/v1/accounts/10001/statement?customer=01&format=text", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/plain")
	suite.Contains(w.Body.String(), "Phuc (ID: 01, Account: 10001, Starting Balance: 800.00)")
	suite.Contains(w.Body.String(), "Final Balance: 1000.00")

	w = suite.do(http.MethodGet, "/api/v1/accounts/10001/statement?customer=01", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Reconciled)
	suite.Require().Len(resp.Transactions, 1)
	suite.Equal("Paycheck", resp.Transactions[0].Note)
}

func (suite *HandlerTestSuite) TestCustomerRoutes() {
	cust := domain.NewCustomer("01", "Phuc")
	acc := domain.NewAccount("10001", "Phuc", dec("800"))
	suite.mockCustomerService.On("CreateCustomer", mock.Anything, dto.CreateCustomerRequest{ShortID: "01", Name: "Phuc"}).Return(cust, nil).Once()
	suite.mockCustomerService.On("AddAccount", mock.Anything, "01", "10001").Return(cust, nil).Run(func(mock.Arguments) {
		suite.Require().NoError(cust.AddAccount(acc))
	}).Once()
	suite.mockCustomerService.On("GetCustomer", mock.Anything, "99").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPost, "/api/v1/customers", `{"shortID":"01","name":"Phuc"}`)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/customers/01/accounts", `{"accountID":"10001"}`)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"10001"}, resp.AccountIDs)

	w = suite.do(http.MethodGet, "/api/v1/customers/99", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/customers", `{"name":"NoID"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPortfolio_JSON() {
	acc := domain.NewAccount("10001", "Phuc", dec("800"))
	portfolio := &domain.Portfolio{
		ShortID:      "01",
		Name:         "Phuc",
		Statements:   []domain.Statement{{CustomerShortID: "01", Account: acc.Snapshot(), Reconciled: true}},
		TotalBalance: dec("800"),
	}
	suite.mockReporting.On("Portfolio", mock.Anything, "01").Return(portfolio, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/customers/01/portfolio", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PortfolioResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Phuc", resp.Name)
	suite.Len(resp.Statements, 1)
	suite.True(dec("800").Equal(resp.TotalBalance))
}

func (suite *HandlerTestSuite) TestRollover() {
	result := &domain.RolloverResult{
		Date:        "2025-09-30",
		Interest:    map[string]decimal.Decimal{"20001": dec("30"), "30001": dec("60")},
		AccountIDs:  []string{"20001", "30001"},
		QuotasReset: 2,
	}
	suite.mockPeriod.On("RolloverPeriod", mock.Anything, "2025-09-30").Return(result, nil).Twice()

	w := suite.do(http.MethodPost, "/api/v1/periods/rollover", `{"date":"2025-09-30"}`)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RolloverResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Interest, 2)
	suite.Equal("20001", resp.Interest[0].AccountID)
	suite.True(dec("90").Equal(resp.TotalInterest))

	w = suite.do(http.MethodPost, "/api/v1/periods/rollover?format=text", `{"date":"2025-09-30"}`)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "Period closed 2025-09-30: 2 withdrawal quotas reset")

	w = suite.do(http.MethodPost, "/api/v1/periods/rollover", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUnexpectedErrorIsHidden() {
	suite.mockAccountService.On("GetAccount", mock.Anything, "10001").Return(nil, fmt.Errorf("disk on fire")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/10001", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Failed to retrieve account", body["error"])
	suite.NotEmpty(body["requestID"])
	suite.Equal(w.Header().Get(middleware.RequestIDHeader), body["requestID"])
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
