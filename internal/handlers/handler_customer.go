package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/reporting"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService  portssvc.CustomerSvcFacade
	reportingService portssvc.ReportingService
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade, rs portssvc.ReportingService) *customerHandler {
	return &customerHandler{
		customerService:  cs,
		reportingService: rs,
	}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade, reportingService portssvc.ReportingService) {
	h := newCustomerHandler(customerService, reportingService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.POST("/:id/accounts", h.addAccount)
		customers.GET("/:id/portfolio", h.getPortfolio)
	}
}

// createCustomer godoc
// @Summary Register a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Short ID already in use"
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Tags customers
// @Produce  json
// @Success 200 {array} dto.CustomerResponse
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list customers")
		return
	}

	resp := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		resp = append(resp, dto.ToCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, resp)
}

// getCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer short ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	customer, err := h.customerService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// addAccount godoc
// @Summary Attach an account to a customer
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   id path string true "Customer short ID"
// @Param   account body dto.AddCustomerAccountRequest true "Account to attach"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} map[string]string "Customer or account not found"
// @Failure 409 {object} map[string]string "Account already attached"
// @Router /customers/{id}/accounts [post]
func (h *customerHandler) addAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	var req dto.AddCustomerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	customer, err := h.customerService.AddAccount(c.Request.Context(), c.Param("id"), req.AccountID)
	if err != nil {
		respondError(c, logger, err, "Failed to add account to customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// getPortfolio godoc
// @Summary Customer portfolio
// @Description Statements for every account the customer holds, as JSON or as plain-text tables
// @Tags reports
// @Produce  json
// @Produce  plain
// @Param   id path string true "Customer short ID"
// @Param   format query string false "json or text" default(json)
// @Success 200 {object} dto.PortfolioResponse
// @Failure 404 {object} map[string]string "Customer not found"
// @Router /customers/{id}/portfolio [get]
func (h *customerHandler) getPortfolio(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("customer_id", c.Param("id")))

	portfolio, err := h.reportingService.Portfolio(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to build portfolio")
		return
	}

	if wantsText(c) {
		var buf bytes.Buffer
		if err := reporting.WritePortfolio(&buf, *portfolio); err != nil {
			respondError(c, logger, err, "Failed to render portfolio")
			return
		}
		c.Data(http.StatusOK, textContentType, buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, dto.ToPortfolioResponse(portfolio))
}
