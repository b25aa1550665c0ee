package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/model"
	mocks "wallet-ledger/mocks/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAdmin = config.AdminConfig{Phone: "01577378394", Password: "AnAmFJAaj@1"}

type testServices struct {
	session *mocks.SessionService
	wallet  *mocks.WalletService
	match   *mocks.MatchService
	admin   *mocks.AdminService
}

func setupRouter(t *testing.T) (*gin.Engine, testServices) {
	gin.SetMode(gin.TestMode)
	svcs := testServices{
		session: mocks.NewSessionService(t),
		wallet:  mocks.NewWalletService(t),
		match:   mocks.NewMatchService(t),
		admin:   mocks.NewAdminService(t),
	}
	h := NewHandler(Services{
		Session: svcs.session,
		Wallet:  svcs.wallet,
		Match:   svcs.match,
		Admin:   svcs.admin,
	}, config.EconomyConfig{MinDeposit: decimal.NewFromInt(10)}, testAdmin, zerolog.Nop())
	return h.SetupRoutes(), svcs
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func testAccount() *model.Account {
	return &model.Account{
		ID:           "acc-1",
		Phone:        "01712345678",
		Username:     "Player_5678",
		Wallet:       model.Wallet{Cash: decimal.NewFromInt(100), Bonus: decimal.RequireFromString("2.5")},
		ReferralCode: "K3J9QX",
		Level:        model.LevelSilver,
		Status:       model.StatusActive,
	}
}

func TestHandler_CreateSession_Created(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.session.On("Login", mock.Anything, "01712345678", "", "K3J9QX").
		Return(&model.Session{Account: testAccount(), Created: true}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/sessions", model.SessionRequest{Phone: "01712345678", ReferralCode: "K3J9QX"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
	assert.False(t, resp.IsAdmin)
	assert.Equal(t, "100.00", resp.Account.Cash)
	assert.Equal(t, "2.50", resp.Account.Bonus)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHandler_CreateSession_Existing(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.session.On("Login", mock.Anything, "01712345678", "", "").
		Return(&model.Session{Account: testAccount()}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/sessions", model.SessionRequest{Phone: "01712345678"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CreateSession_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"invalid phone", model.ErrInvalidPhone, http.StatusBadRequest, "INVALID_PHONE"},
		{"wrong admin password", model.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"store failure", fmt.Errorf("list accounts: %w", assert.AnError), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svcs := setupRouter(t)
			svcs.session.On("Login", mock.Anything, "0171", "", "").Return(nil, tt.err)

			w := doJSON(router, http.MethodPost, "/api/v1/sessions", model.SessionRequest{Phone: "0171"})

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, w).Code)
		})
	}
}

func TestHandler_CreateSession_MissingPhone(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/sessions", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Code)
}

func TestHandler_GetAccount_NotFound(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.wallet.On("GetAccount", mock.Anything, "missing").Return(nil, model.ErrAccountNotFound)

	w := doJSON(router, http.MethodGet, "/api/v1/accounts/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", decodeError(t, w).Code)
}

func TestHandler_GetTransactions_ClampsPage(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.wallet.On("GetTransactions", mock.Anything, "acc-1", 100, 0).Return([]*model.Transaction{
		{ID: "tx-1", AccountID: "acc-1", Type: model.TxDeposit, Amount: decimal.NewFromInt(10)},
	}, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/accounts/acc-1/transactions?limit=500&offset=-2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.TransactionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
}

func TestHandler_Deposit(t *testing.T) {
	router, svcs := setupRouter(t)
	updated := testAccount()
	updated.Wallet.Cash = decimal.NewFromInt(600)
	updated.Wallet.Bonus = decimal.NewFromInt(12)
	svcs.wallet.On("Deposit", mock.Anything, "acc-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(500))
	})).Return(updated, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/accounts/acc-1/deposits", model.AmountRequest{Amount: "500"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "600.00", resp.Cash)
	assert.Equal(t, "12.00", resp.Bonus)
}

func TestHandler_Deposit_Rejected(t *testing.T) {
	tests := []struct {
		amount   string
		wantCode string
	}{
		{"9", "BELOW_MINIMUM"},
		{"10.5", "INVALID_AMOUNT"},
		{"-20", "INVALID_AMOUNT"},
		{"abc", "INVALID_AMOUNT"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			router, _ := setupRouter(t)

			w := doJSON(router, http.MethodPost, "/api/v1/accounts/acc-1/deposits", model.AmountRequest{Amount: tt.amount})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestHandler_Withdraw_Errors(t *testing.T) {
	tests := []struct {
		err      error
		wantHTTP int
		wantCode string
	}{
		{model.ErrInsufficientBalance, http.StatusBadRequest, "INSUFFICIENT_BALANCE"},
		{model.ErrBelowMinimum, http.StatusBadRequest, "BELOW_MINIMUM"},
		{model.ErrAccountBanned, http.StatusForbidden, "ACCOUNT_BANNED"},
		{fmt.Errorf("append withdrawal: %w", model.ErrDuplicateTransaction), http.StatusConflict, "DUPLICATE_TRANSACTION"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			router, svcs := setupRouter(t)
			svcs.wallet.On("Withdraw", mock.Anything, "acc-1", mock.Anything).Return(nil, tt.err)

			w := doJSON(router, http.MethodPost, "/api/v1/accounts/acc-1/withdrawals", model.AmountRequest{Amount: "50"})

			assert.Equal(t, tt.wantHTTP, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestHandler_FindMatch(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.match.On("FindMatch", mock.Anything, "acc-1", model.Mode4P, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(50))
	})).Return(&model.Match{
		ID:           "m-1",
		Participants: []string{"acc-1", "Bot_1", "Bot_2", "Bot_3"},
		EntryFee:     decimal.NewFromInt(50),
		PrizePool:    decimal.NewFromInt(188),
		Mode:         model.Mode4P,
		Status:       model.MatchPlaying,
	}, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/matches", model.FindMatchRequest{AccountID: "acc-1", Mode: "4P", EntryFee: "50"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "188.00", resp.PrizePool)
	assert.Len(t, resp.Participants, 4)
}

func TestHandler_FindMatch_BadMode(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodPost, "/api/v1/matches", model.FindMatchRequest{AccountID: "acc-1", Mode: "3P", EntryFee: "10"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SubCentAmountsRejected(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
	}{
		{"match fee", "/api/v1/matches", model.FindMatchRequest{AccountID: "acc-1", Mode: "2P", EntryFee: "10.001"}},
		{"withdrawal", "/api/v1/accounts/acc-1/withdrawals", model.AmountRequest{Amount: "10.005"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupRouter(t)

			w := doJSON(router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "INVALID_AMOUNT", decodeError(t, w).Code)
		})
	}
}

func TestHandler_Withdraw_CentsAccepted(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.wallet.On("Withdraw", mock.Anything, "acc-1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("10.5"))
	})).Return(testAccount(), nil)

	w := doJSON(router, http.MethodPost, "/api/v1/accounts/acc-1/withdrawals", model.AmountRequest{Amount: "10.50"})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_FindMatch_InProgress(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.match.On("FindMatch", mock.Anything, "acc-1", model.Mode2P, mock.Anything).Return(nil, model.ErrMatchmakingInProgress)

	w := doJSON(router, http.MethodPost, "/api/v1/matches", model.FindMatchRequest{AccountID: "acc-1", Mode: "2P", EntryFee: "10"})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "MATCHMAKING_IN_PROGRESS", resp.Code)
	assert.NotEmpty(t, resp.Details)
}

func TestHandler_SettleWin_Errors(t *testing.T) {
	tests := []struct {
		err      error
		wantHTTP int
		wantCode string
	}{
		{model.ErrMatchAlreadySettled, http.StatusConflict, "MATCH_ALREADY_SETTLED"},
		{model.ErrMatchNotFound, http.StatusNotFound, "MATCH_NOT_FOUND"},
		{model.ErrInvalidWinner, http.StatusBadRequest, "INVALID_WINNER"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			router, svcs := setupRouter(t)
			svcs.match.On("SettleWin", mock.Anything, "m-1", "acc-1").Return(nil, tt.err)

			w := doJSON(router, http.MethodPost, "/api/v1/matches/m-1/win", model.SettleRequest{WinnerID: "acc-1"})

			assert.Equal(t, tt.wantHTTP, w.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, w).Code)
		})
	}
}

func TestHandler_Admin_RequiresBasicAuth(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/v1/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.SetBasicAuth(testAdmin.Phone, "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandler_Admin_Dashboard(t *testing.T) {
	router, svcs := setupRouter(t)
	svcs.admin.On("Dashboard", mock.Anything).Return(&model.Dashboard{
		TotalUsers:       3,
		TotalDeposits:    decimal.NewFromInt(1500),
		TotalWithdrawals: decimal.NewFromInt(200),
		NetRevenue:       decimal.NewFromInt(1300),
		TotalCommission:  decimal.RequireFromString("1.2"),
		CompletedMatches: 1,
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.SetBasicAuth(testAdmin.Phone, testAdmin.Password)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1300.00", resp.NetRevenue)
	assert.Equal(t, "1.20", resp.TotalCommission)
}

func TestHandler_Admin_SetStatus(t *testing.T) {
	router, svcs := setupRouter(t)
	banned := testAccount()
	banned.Status = model.StatusBanned
	svcs.admin.On("SetStatus", mock.Anything, "acc-1", model.StatusBanned).Return(banned, nil)

	body, _ := json.Marshal(model.StatusRequest{Status: "BANNED"})
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/admin/accounts/acc-1/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(testAdmin.Phone, testAdmin.Password)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BANNED", resp.Status)
}

func TestHandler_Health(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
