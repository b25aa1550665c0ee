package handler

import (
	"net/http"

	"wallet-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// CreateSession
// @Summary Log in with a phone number
// @Description Resolves the phone to an account, creating it on first use. The optional referral code credits the referrer of a new account.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body model.SessionRequest true "Login details"
// @Success 200 {object} model.SessionResponse "Existing account"
// @Success 201 {object} model.SessionResponse "Account created"
// @Failure 400 {object} model.ErrorResponse "Invalid phone"
// @Failure 401 {object} model.ErrorResponse "Invalid admin credentials"
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req model.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	session, err := h.sessionService.Login(c.Request.Context(), req.Phone, req.Password, req.ReferralCode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	status := http.StatusOK
	if session.Created {
		status = http.StatusCreated
	}
	c.JSON(status, model.SessionResponse{
		Account: model.NewAccountResponse(session.Account),
		IsAdmin: session.IsAdmin,
		Created: session.Created,
	})
}
