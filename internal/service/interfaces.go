package service

import (
	"context"

	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// SessionService resolves phone numbers to accounts
type SessionService interface {
	// Login validates the phone, applies the admin gate and resolves or creates the account
	Login(ctx context.Context, phone, password, referralCode string) (*model.Session, error)
	// ResolveOrCreate returns the account for phone, creating it on first use
	ResolveOrCreate(ctx context.Context, phone, referralCode string) (*model.Account, bool, error)
}

// WalletService moves money in and out of accounts
type WalletService interface {
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error)
	GetAccount(ctx context.Context, accountID string) (*model.Account, error)
	GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]*model.Transaction, error)
}

// MatchService collects entry fees, runs matchmaking and pays out winners
type MatchService interface {
	CollectEntryFee(ctx context.Context, accountID string, fee decimal.Decimal) (*model.EntryFeeReceipt, error)
	CreateMatch(ctx context.Context, mode model.MatchMode, entryFee decimal.Decimal, participants []string) (*model.Match, error)
	SettleWin(ctx context.Context, matchID, winnerID string) (*model.Account, error)
	// FindMatch collects the fee, waits for opponents and starts a match. It blocks until
	// the wait elapses or ctx is done.
	FindMatch(ctx context.Context, accountID string, mode model.MatchMode, fee decimal.Decimal) (*model.Match, error)
	GetMatch(ctx context.Context, matchID string) (*model.Match, error)
}

// AdminService backs the operator screens
type AdminService interface {
	Dashboard(ctx context.Context) (*model.Dashboard, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	SetStatus(ctx context.Context, accountID string, status model.AccountStatus) (*model.Account, error)
}

// AuditService compares cached balances with the transaction log
type AuditService interface {
	// Enabled reports whether the log carries enough entries to be reconciled
	Enabled() bool
	Reconcile(ctx context.Context) ([]ledger.Discrepancy, error)
}
