package model

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	Cash  decimal.Decimal `json:"cash"`
	Bonus decimal.Decimal `json:"bonus"`
}

// Total is the amount available for entry fees.
func (w Wallet) Total() decimal.Decimal {
	return w.Cash.Add(w.Bonus)
}

type Account struct {
	ID                 string          `json:"id"`
	Phone              string          `json:"phone"`
	Username           string          `json:"username"`
	Wallet             Wallet          `json:"wallet"`
	ReferralCode       string          `json:"referral_code"`
	ReferredBy         string          `json:"referred_by,omitempty"`
	ReferredCount      int             `json:"referred_count"`
	TotalReferralBonus decimal.Decimal `json:"total_referral_bonus"`
	MatchesPlayed      int             `json:"matches_played"`
	Wins               int             `json:"wins"`
	Losses             int             `json:"losses"`
	Level              Level           `json:"level"`
	Status             AccountStatus   `json:"status"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Clone returns a copy that shares no memory with a.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

type Transaction struct {
	ID        string            `json:"id"`
	AccountID string            `json:"account_id"`
	Type      TransactionType   `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
	BonusUsed decimal.Decimal   `json:"bonus_used"`
	Status    TransactionStatus `json:"status"`
	MatchID   string            `json:"match_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// CashEffect is the signed change this transaction made to the cash balance.
func (t *Transaction) CashEffect() decimal.Decimal {
	switch t.Type {
	case TxDeposit, TxGameWin:
		return t.Amount
	case TxWithdrawal:
		return t.Amount.Neg()
	case TxGameEntry:
		return t.Amount.Sub(t.BonusUsed).Neg()
	case TxRefund:
		return t.Amount.Sub(t.BonusUsed)
	default:
		return decimal.Zero
	}
}

type Match struct {
	ID             string          `json:"id"`
	Participants   []string        `json:"participants"`
	EntryFee       decimal.Decimal `json:"entry_fee"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	PrizePool      decimal.Decimal `json:"prize_pool"`
	Mode           MatchMode       `json:"mode"`
	Status         MatchStatus     `json:"status"`
	StartTime      time.Time       `json:"start_time"`
	WinnerID       *string         `json:"winner_id,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

func (m *Match) Clone() *Match {
	c := *m
	c.Participants = slices.Clone(m.Participants)
	if m.WinnerID != nil {
		w := *m.WinnerID
		c.WinnerID = &w
	}
	if m.CompletedAt != nil {
		t := *m.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// HasParticipant reports whether id holds a seat in the match.
func (m *Match) HasParticipant(id string) bool {
	return slices.Contains(m.Participants, id)
}

// Commission is the part of the aggregate entry fees kept by the platform.
func (m *Match) Commission() decimal.Decimal {
	total := m.EntryFee.Mul(decimal.NewFromInt(int64(len(m.Participants))))
	return total.Sub(m.PrizePool)
}

// EntryFeeReceipt describes how an entry fee was split across the wallet.
type EntryFeeReceipt struct {
	Account      *Account        `json:"account"`
	BonusPortion decimal.Decimal `json:"bonus_portion"`
	CashPortion  decimal.Decimal `json:"cash_portion"`
}

// Session is the outcome of a login.
type Session struct {
	Account *Account
	IsAdmin bool
	Created bool
}

type Dashboard struct {
	TotalUsers       int             `json:"total_users"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	NetRevenue       decimal.Decimal `json:"net_revenue"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	CompletedMatches int             `json:"completed_matches"`
}

type SessionRequest struct {
	Phone        string `json:"phone" binding:"required" example:"01712345678"`
	Password     string `json:"password,omitempty"`
	ReferralCode string `json:"referral_code,omitempty" example:"K3J9QX"`
}

type SessionResponse struct {
	Account *AccountResponse `json:"account"`
	IsAdmin bool             `json:"is_admin"`
	Created bool             `json:"created"`
}

type AmountRequest struct {
	Amount string `json:"amount" binding:"required" example:"500"`
}

type FindMatchRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Mode      string `json:"mode" binding:"required,oneof=2P 4P" example:"2P" enums:"2P,4P"`
	EntryFee  string `json:"entry_fee" binding:"required" example:"10"`
}

type SettleRequest struct {
	WinnerID string `json:"winner_id" binding:"required"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE BANNED" enums:"ACTIVE,BANNED"`
}

type AccountResponse struct {
	ID                 string `json:"id"`
	Phone              string `json:"phone"`
	Username           string `json:"username"`
	Cash               string `json:"cash" example:"100.00"`
	Bonus              string `json:"bonus" example:"5.00"`
	ReferralCode       string `json:"referral_code"`
	ReferredBy         string `json:"referred_by,omitempty"`
	ReferredCount      int    `json:"referred_count"`
	TotalReferralBonus string `json:"total_referral_bonus" example:"15.00"`
	MatchesPlayed      int    `json:"matches_played"`
	Wins               int    `json:"wins"`
	Losses             int    `json:"losses"`
	Level              string `json:"level" example:"SILVER"`
	Status             string `json:"status" example:"ACTIVE"`
}

func NewAccountResponse(a *Account) *AccountResponse {
	return &AccountResponse{
		ID:                 a.ID,
		Phone:              a.Phone,
		Username:           a.Username,
		Cash:               a.Wallet.Cash.StringFixed(2),
		Bonus:              a.Wallet.Bonus.StringFixed(2),
		ReferralCode:       a.ReferralCode,
		ReferredBy:         a.ReferredBy,
		ReferredCount:      a.ReferredCount,
		TotalReferralBonus: a.TotalReferralBonus.StringFixed(2),
		MatchesPlayed:      a.MatchesPlayed,
		Wins:               a.Wins,
		Losses:             a.Losses,
		Level:              a.Level.String(),
		Status:             a.Status.String(),
	}
}

type MatchResponse struct {
	ID           string   `json:"id"`
	Mode         string   `json:"mode" example:"2P"`
	Participants []string `json:"participants"`
	EntryFee     string   `json:"entry_fee" example:"10.00"`
	PrizePool    string   `json:"prize_pool" example:"18.80"`
	Status       string   `json:"status" example:"PLAYING"`
	WinnerID     string   `json:"winner_id,omitempty"`
}

func NewMatchResponse(m *Match) *MatchResponse {
	resp := &MatchResponse{
		ID:           m.ID,
		Mode:         m.Mode.String(),
		Participants: m.Participants,
		EntryFee:     m.EntryFee.StringFixed(2),
		PrizePool:    m.PrizePool.StringFixed(2),
		Status:       string(m.Status),
	}
	if m.WinnerID != nil {
		resp.WinnerID = *m.WinnerID
	}
	return resp
}

type TransactionListResponse struct {
	Transactions []*Transaction `json:"transactions"`
	Total        int            `json:"total"`
	Limit        int            `json:"limit"`
	Offset       int            `json:"offset"`
}

type DashboardResponse struct {
	TotalUsers       int    `json:"total_users"`
	TotalDeposits    string `json:"total_deposits" example:"1500.00"`
	TotalWithdrawals string `json:"total_withdrawals" example:"200.00"`
	NetRevenue       string `json:"net_revenue" example:"1300.00"`
	TotalCommission  string `json:"total_commission" example:"1.20"`
	CompletedMatches int    `json:"completed_matches"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient balance"`
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_BALANCE"`
	Details string `json:"details,omitempty"`
}
