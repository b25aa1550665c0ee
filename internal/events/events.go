// Package events publishes committed ledger changes to other services.
package events

import (
	"context"
	"time"

	"wallet-ledger/internal/model"
)

const (
	SubjectAccountCreated      = "wallet.account.created"
	SubjectTransactionAppended = "wallet.transaction.appended"
	SubjectMatchCreated        = "wallet.match.created"
	SubjectMatchSettled        = "wallet.match.settled"
)

// Publisher sends an event after the change it describes has committed.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close() error
}

type AccountCreated struct {
	AccountID    string    `json:"account_id"`
	Username     string    `json:"username"`
	ReferralCode string    `json:"referral_code"`
	ReferredBy   string    `json:"referred_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAccountCreated(a *model.Account) AccountCreated {
	return AccountCreated{
		AccountID:    a.ID,
		Username:     a.Username,
		ReferralCode: a.ReferralCode,
		ReferredBy:   a.ReferredBy,
		CreatedAt:    a.CreatedAt,
	}
}

type TransactionAppended struct {
	TransactionID string    `json:"transaction_id"`
	AccountID     string    `json:"account_id"`
	Type          string    `json:"type"`
	Amount        string    `json:"amount"`
	BonusUsed     string    `json:"bonus_used"`
	MatchID       string    `json:"match_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewTransactionAppended(tx *model.Transaction) TransactionAppended {
	return TransactionAppended{
		TransactionID: tx.ID,
		AccountID:     tx.AccountID,
		Type:          string(tx.Type),
		Amount:        tx.Amount.StringFixed(2),
		BonusUsed:     tx.BonusUsed.StringFixed(2),
		MatchID:       tx.MatchID,
		CreatedAt:     tx.CreatedAt,
	}
}

type MatchEvent struct {
	MatchID      string   `json:"match_id"`
	Mode         string   `json:"mode"`
	Participants []string `json:"participants"`
	EntryFee     string   `json:"entry_fee"`
	PrizePool    string   `json:"prize_pool"`
	Status       string   `json:"status"`
	WinnerID     string   `json:"winner_id,omitempty"`
}

func NewMatchEvent(m *model.Match) MatchEvent {
	e := MatchEvent{
		MatchID:      m.ID,
		Mode:         string(m.Mode),
		Participants: append([]string(nil), m.Participants...),
		EntryFee:     m.EntryFee.StringFixed(2),
		PrizePool:    m.PrizePool.StringFixed(2),
		Status:       string(m.Status),
	}
	if m.WinnerID != nil {
		e.WinnerID = *m.WinnerID
	}
	return e
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                               { return nil }
