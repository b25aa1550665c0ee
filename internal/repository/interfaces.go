package repository

import (
	"context"
	"wallet-ledger/internal/model"
)

// DBManager provides atomic commits spanning several stores
type DBManager interface {
	// WithTransaction runs fn so that every store call made with the ctx passed to fn
	// commits together or not at all. Nested calls join the outer transaction.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AccountStore holds the full set of user accounts
type AccountStore interface {
	// ListAll returns every account. Inside a transaction the set is locked
	// against concurrent writers until commit.
	ListAll(ctx context.Context) ([]*model.Account, error)

	// ReplaceAll persists a new state of the account set. Accounts are never removed.
	ReplaceAll(ctx context.Context, accounts []*model.Account) error
}

// TransactionLog is the append-only audit log
type TransactionLog interface {
	// Append stores tx with a fresh id, timestamp and SUCCESS status
	Append(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)

	// ListByAccount returns an account's transactions, newest first
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*model.Transaction, error)

	// ListAll returns the whole log in append order
	ListAll(ctx context.Context) ([]*model.Transaction, error)
}

// MatchStore persists matches and their state transitions
type MatchStore interface {
	Insert(ctx context.Context, match *model.Match) error

	// Get returns a copy of the match or ErrMatchNotFound
	Get(ctx context.Context, id string) (*model.Match, error)

	Update(ctx context.Context, match *model.Match) error

	ListAll(ctx context.Context) ([]*model.Match, error)
}
