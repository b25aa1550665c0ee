package handler

import (
	"net/http"

	"wallet-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// Dashboard
// @Summary Platform totals
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} model.DashboardResponse
// @Failure 401 "Missing or wrong admin credentials"
// @Router /admin/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.DashboardResponse{
		TotalUsers:       d.TotalUsers,
		TotalDeposits:    d.TotalDeposits.StringFixed(2),
		TotalWithdrawals: d.TotalWithdrawals.StringFixed(2),
		NetRevenue:       d.NetRevenue.StringFixed(2),
		TotalCommission:  d.TotalCommission.StringFixed(2),
		CompletedMatches: d.CompletedMatches,
	})
}

// ListAccounts
// @Summary List all accounts
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {array} model.AccountResponse
// @Failure 401 "Missing or wrong admin credentials"
// @Router /admin/accounts [get]
func (h *Handler) ListAccounts(c *gin.Context) {
	accounts, err := h.adminService.ListAccounts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]*model.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, model.NewAccountResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

// SetStatus
// @Summary Ban or unban an account
// @Tags admin
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path string true "Account ID"
// @Param status body model.StatusRequest true "New status"
// @Success 200 {object} model.AccountResponse
// @Failure 400 {object} model.ErrorResponse "Invalid status"
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Router /admin/accounts/{id}/status [put]
func (h *Handler) SetStatus(c *gin.Context) {
	var req model.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	status, err := model.ParseAccountStatus(req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	account, err := h.adminService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewAccountResponse(account))
}
