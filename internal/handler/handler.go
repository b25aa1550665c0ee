package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services groups the business services exposed over HTTP
type Services struct {
	Session service.SessionService
	Wallet  service.WalletService
	Match   service.MatchService
	Admin   service.AdminService
}

type Handler struct {
	sessionService service.SessionService
	walletService  service.WalletService
	matchService   service.MatchService
	adminService   service.AdminService
	minDeposit     decimal.Decimal
	admin          config.AdminConfig
	logger         zerolog.Logger
}

func NewHandler(svcs Services, economy config.EconomyConfig, admin config.AdminConfig, logger zerolog.Logger) *Handler {
	return &Handler{
		sessionService: svcs.Session,
		walletService:  svcs.Wallet,
		matchService:   svcs.Match,
		adminService:   svcs.Admin,
		minDeposit:     economy.MinDeposit,
		admin:          admin,
		logger:         logger,
	}
}

func (h *Handler) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Middlewares
	router.Use(
		RequestIDMiddleware(h.logger),
		LoggingMiddleware(),
		gin.Recovery(),
	)

	// Swagger and health checks
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")

	v1.POST("/sessions", h.CreateSession)

	accounts := v1.Group("/accounts")
	accounts.GET("/:id", h.GetAccount)
	accounts.GET("/:id/transactions", h.GetTransactions)
	accounts.POST("/:id/deposits", h.Deposit)
	accounts.POST("/:id/withdrawals", h.Withdraw)

	matches := v1.Group("/matches")
	matches.POST("", h.FindMatch)
	matches.GET("/:id", h.GetMatch)
	matches.POST("/:id/win", h.SettleWin)

	admin := v1.Group("/admin", gin.BasicAuth(gin.Accounts{h.admin.Phone: h.admin.Password}))
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/accounts", h.ListAccounts)
	admin.PUT("/accounts/:id/status", h.SetStatus)

	return router
}

func (h *Handler) handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_SERVER_ERROR"

	resp := model.ErrorResponse{Error: err.Error()}

	switch {
	case errors.Is(err, model.ErrInsufficientBalance):
		status = http.StatusBadRequest
		code = "INSUFFICIENT_BALANCE"
	case errors.Is(err, model.ErrInvalidAmount):
		status = http.StatusBadRequest
		code = "INVALID_AMOUNT"
	case errors.Is(err, model.ErrBelowMinimum):
		status = http.StatusBadRequest
		code = "BELOW_MINIMUM"
	case errors.Is(err, model.ErrInvalidPhone):
		status = http.StatusBadRequest
		code = "INVALID_PHONE"
	case errors.Is(err, model.ErrInvalidMatchComposition):
		status = http.StatusBadRequest
		code = "INVALID_MATCH_COMPOSITION"
	case errors.Is(err, model.ErrInvalidWinner):
		status = http.StatusBadRequest
		code = "INVALID_WINNER"
	case errors.Is(err, model.ErrInvalidStatus):
		status = http.StatusBadRequest
		code = "INVALID_STATUS"
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = "INVALID_CREDENTIALS"
	case errors.Is(err, model.ErrAccountBanned):
		status = http.StatusForbidden
		code = "ACCOUNT_BANNED"
	case errors.Is(err, model.ErrAccountNotFound):
		status = http.StatusNotFound
		code = "ACCOUNT_NOT_FOUND"
	case errors.Is(err, model.ErrMatchNotFound):
		status = http.StatusNotFound
		code = "MATCH_NOT_FOUND"
	case errors.Is(err, model.ErrMatchAlreadySettled):
		status = http.StatusConflict
		code = "MATCH_ALREADY_SETTLED"
	case errors.Is(err, model.ErrMatchmakingInProgress):
		status = http.StatusConflict
		code = "MATCHMAKING_IN_PROGRESS"
		resp.Details = "Wait for the current search to finish"
	case errors.Is(err, model.ErrDuplicateAccount):
		status = http.StatusConflict
		code = "DUPLICATE_ACCOUNT"
	case errors.Is(err, model.ErrDuplicateTransaction):
		status = http.StatusConflict
		code = "DUPLICATE_TRANSACTION"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
		code = "REQUEST_CANCELLED"
	}
	resp.Code = code

	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("route", c.FullPath()).Msg("internal server error")
	}

	c.JSON(status, resp)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Error: msg,
		Code:  "INVALID_REQUEST",
	})
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, model.ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Zero, model.ErrInvalidAmount
	}
	// ledger columns hold cents
	if !amount.Equal(amount.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("%w: at most two decimal places", model.ErrInvalidAmount)
	}
	return amount, nil
}
