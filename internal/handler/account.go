package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"wallet-ledger/internal/model"
	"wallet-ledger/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAccount
// @Summary Get an account
// @Description Returns balances, referral data and rank for an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} model.AccountResponse
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Router /accounts/{id} [get]
func (h *Handler) GetAccount(c *gin.Context) {
	account, err := h.walletService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewAccountResponse(account))
}

// GetTransactions
// @Summary Get account transactions
// @Description Returns a page of the account's transactions, newest first
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} model.TransactionListResponse
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Router /accounts/{id}/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, offset = service.ClampPage(limit, offset)

	transactions, err := h.walletService.GetTransactions(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}

	c.JSON(http.StatusOK, model.TransactionListResponse{
		Transactions: transactions,
		Total:        len(transactions),
		Limit:        limit,
		Offset:       offset,
	})
}

// Deposit
// @Summary Deposit money
// @Description Credits cash and any deposit bonus. Amounts are whole units of at least the configured minimum.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param deposit body model.AmountRequest true "Deposit amount"
// @Success 201 {object} model.AccountResponse
// @Failure 400 {object} model.ErrorResponse "Invalid amount"
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Router /accounts/{id}/deposits [post]
func (h *Handler) Deposit(c *gin.Context) {
	var req model.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !amount.IsInteger() {
		h.handleError(c, fmt.Errorf("%w: deposits must be whole units", model.ErrInvalidAmount))
		return
	}
	if amount.LessThan(h.minDeposit) {
		h.handleError(c, fmt.Errorf("%w: minimum deposit is %s", model.ErrBelowMinimum, h.minDeposit.StringFixed(2)))
		return
	}

	account, err := h.walletService.Deposit(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewAccountResponse(account))
}

// Withdraw
// @Summary Withdraw cash
// @Description Debits withdrawable cash. Bonus credit cannot be withdrawn.
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param withdrawal body model.AmountRequest true "Withdrawal amount"
// @Success 201 {object} model.AccountResponse
// @Failure 400 {object} model.ErrorResponse "Invalid amount or insufficient cash"
// @Failure 403 {object} model.ErrorResponse "Account banned"
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Failure 409 {object} model.ErrorResponse "Duplicate transaction"
// @Router /accounts/{id}/withdrawals [post]
func (h *Handler) Withdraw(c *gin.Context) {
	var req model.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.handleError(c, err)
		return
	}

	account, err := h.walletService.Withdraw(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewAccountResponse(account))
}
