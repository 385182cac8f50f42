package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/reporting"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	reportingService portssvc.ReportingService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, rs portssvc.ReportingService) *accountHandler {
	return &accountHandler{
		accountService:   as,
		reportingService: rs,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, reportingService portssvc.ReportingService) {
	h := newAccountHandler(accountService, reportingService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.POST("/:id/deposits", h.deposit)
		accounts.POST("/:id/withdrawals", h.withdraw)
		accounts.POST("/:id/interest", h.applyInterest)
		accounts.POST("/:id/withdraw-count/reset", h.resetWithdrawCount)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.GET("/:id/statement", h.getStatement)
	}

	rg.POST("/transfers", h.transfer)
}

// createAccount godoc
// @Summary Open a new account
// @Description Opens a standard or savings account. Savings terms left out fall back to configured defaults.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Account ID already in use"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	logger.Info("Received request to create account", slog.String("account_id", req.AccountID), slog.String("kind", req.Kind))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	snap := account.Snapshot()
	c.JSON(http.StatusCreated, dto.ToAccountResponse(&snap))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of accounts ordered by account ID
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	snaps := make([]domain.AccountSnapshot, len(accounts))
	for i, acc := range accounts {
		snaps[i] = acc.Snapshot()
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(snaps)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	snap := account.Snapshot()
	c.JSON(http.StatusOK, dto.ToAccountResponse(&snap))
}

// deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   deposit body dto.AmountRequest true "Deposit details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Amount must be positive"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/deposits [post]
func (h *accountHandler) deposit(c *gin.Context) {
	h.applyAmount(c, "deposit", h.accountService.Deposit)
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Savings accounts charge the withdrawal fee once the monthly quota is used; principal plus fee must fit the balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   withdrawal body dto.AmountRequest true "Withdrawal details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Amount must be positive"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /accounts/{id}/withdrawals [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	h.applyAmount(c, "withdrawal", h.accountService.Withdraw)
}

// applyAmount runs a deposit or withdrawal and returns the account as that operation left it.
func (h *accountHandler) applyAmount(c *gin.Context, what string, op func(context.Context, string, dto.AmountRequest) (*domain.AccountSnapshot, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	snap, err := op(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to record "+what)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(snap))
}

// applyInterest godoc
// @Summary Apply interest to an account
// @Description Savings accounts accrue balance * rate / 100 and always record it. Standard accounts are left unchanged.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   interest body dto.InterestRequest false "Interest date"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/interest [post]
func (h *accountHandler) applyInterest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	var req dto.InterestRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err, "request format")
			return
		}
	}

	snap, amount, err := h.accountService.ApplyInterest(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		respondError(c, logger, err, "Failed to apply interest")
		return
	}

	logger.Debug("Interest request handled", slog.String("amount", amount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(snap))
}

// resetWithdrawCount godoc
// @Summary Start a new withdrawal quota period
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Account has no withdrawal quota"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/withdraw-count/reset [post]
func (h *accountHandler) resetWithdrawCount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	snap, err := h.accountService.ResetWithdrawCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to reset withdraw count")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(snap))
}

// listTransactions godoc
// @Summary List an account's ledger
// @Description Returns ledger entries in the order they were recorded, paged with an opaque token
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err, "query parameters")
		return
	}

	resp, err := h.accountService.ListTransactions(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getStatement godoc
// @Summary Account statement
// @Description Returns the full ledger with a reconciliation flag, as JSON or as a plain-text table
// @Tags reports
// @Produce  json
// @Produce  plain
// @Param   id path string true "Account ID"
// @Param   customer query string false "Short ID of a customer holding the account"
// @Param   format query string false "json or text" default(json)
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Account or customer not found"
// @Router /accounts/{id}/statement [get]
func (h *accountHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("account_id", c.Param("id")))

	statement, err := h.reportingService.Statement(c.Request.Context(), c.Param("id"), c.Query("customer"))
	if err != nil {
		respondError(c, logger, err, "Failed to build statement")
		return
	}

	if wantsText(c) {
		var buf bytes.Buffer
		if err := reporting.WriteStatement(&buf, *statement); err != nil {
			respondError(c, logger, err, "Failed to render statement")
			return
		}
		c.Data(http.StatusOK, textContentType, buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves money between two accounts. Transfers bypass the savings withdrawal quota and fee.
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid amount or same account on both sides"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Router /transfers [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}
	logger = logger.With(
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("target_account_id", req.TargetAccountID))

	source, target, err := h.accountService.Transfer(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Source: dto.ToAccountResponse(source),
		Target: dto.ToAccountResponse(target),
	})
}
