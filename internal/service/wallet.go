package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/events"
	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type WalletServiceImpl struct {
	deps    Dependencies
	economy config.EconomyConfig
	policy  config.PolicyConfig
}

func NewWalletService(deps Dependencies, economy config.EconomyConfig, policy config.PolicyConfig) WalletService {
	return &WalletServiceImpl{
		deps:    deps.withDefaults(),
		economy: economy,
		policy:  policy,
	}
}

// Deposit credits cash and the bonus earned from the ladder. Minimum amounts are
// enforced by the caller.
func (s *WalletServiceImpl) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit must be positive", model.ErrInvalidAmount)
	}

	bonus := s.economy.BonusLadder.Bonus(amount)

	var (
		account *model.Account
		box     outbox
	)
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		account, err = set.mustGet(accountID)
		if err != nil {
			return err
		}

		account.Wallet.Cash = account.Wallet.Cash.Add(amount)
		account.Wallet.Bonus = account.Wallet.Bonus.Add(bonus)
		set.touch(account)

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}

		tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TxDeposit,
			Amount:    amount,
			BonusUsed: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("append deposit: %w", err)
		}
		box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info().Str("account_id", accountID).
		Str("amount", amount.StringFixed(2)).
		Str("bonus", bonus.StringFixed(2)).
		Str("cash", account.Wallet.Cash.StringFixed(2)).
		Msg("deposit processed")
	box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	return account, nil
}

// Withdraw takes cash only. Bonus credit can never leave the wallet.
func (s *WalletServiceImpl) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal must be positive", model.ErrInvalidAmount)
	}
	if amount.LessThan(s.economy.MinWithdrawal) {
		return nil, fmt.Errorf("%w: minimum withdrawal is %s", model.ErrBelowMinimum, s.economy.MinWithdrawal.StringFixed(2))
	}

	var (
		account *model.Account
		box     outbox
	)
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		account, err = set.mustGet(accountID)
		if err != nil {
			return err
		}
		if s.policy.BlockBannedPlayers && account.Status == model.StatusBanned {
			return model.ErrAccountBanned
		}
		if account.Wallet.Cash.LessThan(amount) {
			return model.ErrInsufficientBalance
		}

		account.Wallet.Cash = account.Wallet.Cash.Sub(amount)
		set.touch(account)

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}

		tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TxWithdrawal,
			Amount:    amount,
			BonusUsed: decimal.Zero,
		})
		if err != nil {
			return fmt.Errorf("append withdrawal: %w", err)
		}
		box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info().Str("account_id", accountID).
		Str("amount", amount.StringFixed(2)).
		Str("cash", account.Wallet.Cash.StringFixed(2)).
		Msg("withdrawal processed")
	box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	return account, nil
}

func (s *WalletServiceImpl) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return set.mustGet(accountID)
}

// GetTransactions returns the account's history, newest first
func (s *WalletServiceImpl) GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]*model.Transaction, error) {
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	limit, offset = ClampPage(limit, offset)

	transactions, err := s.deps.Transactions.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list account transactions: %w", err)
	}
	return transactions, nil
}

// ClampPage bounds a history page to [1, 100] entries with a non-negative offset
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
