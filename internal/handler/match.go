package handler

import (
	"net/http"

	"wallet-ledger/internal/model"

	"github.com/gin-gonic/gin"
)

// FindMatch
// @Summary Find a match
// @Description Collects the entry fee, waits for opponents and starts the match. The request blocks for the matchmaking wait.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body model.FindMatchRequest true "Matchmaking request"
// @Success 201 {object} model.MatchResponse
// @Failure 400 {object} model.ErrorResponse "Invalid fee or insufficient balance"
// @Failure 404 {object} model.ErrorResponse "Account not found"
// @Failure 409 {object} model.ErrorResponse "Search already running"
// @Router /matches [post]
func (h *Handler) FindMatch(c *gin.Context) {
	var req model.FindMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	mode, err := model.ParseMatchMode(req.Mode)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fee, err := parseAmount(req.EntryFee)
	if err != nil {
		h.handleError(c, err)
		return
	}

	match, err := h.matchService.FindMatch(c.Request.Context(), req.AccountID, mode, fee)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.NewMatchResponse(match))
}

// GetMatch
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} model.MatchResponse
// @Failure 404 {object} model.ErrorResponse "Match not found"
// @Router /matches/{id} [get]
func (h *Handler) GetMatch(c *gin.Context) {
	match, err := h.matchService.GetMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewMatchResponse(match))
}

// SettleWin
// @Summary Settle a match
// @Description Pays the prize pool to the winner and completes the match
// @Tags matches
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param result body model.SettleRequest true "Winner"
// @Success 200 {object} model.AccountResponse
// @Failure 400 {object} model.ErrorResponse "Winner is not a participant"
// @Failure 404 {object} model.ErrorResponse "Match or account not found"
// @Failure 409 {object} model.ErrorResponse "Match already settled"
// @Router /matches/{id}/win [post]
func (h *Handler) SettleWin(c *gin.Context) {
	var req model.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	winner, err := h.matchService.SettleWin(c.Request.Context(), c.Param("id"), req.WinnerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewAccountResponse(winner))
}
