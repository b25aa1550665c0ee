package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
)

type AdminServiceImpl struct {
	deps Dependencies
}

func NewAdminService(deps Dependencies) AdminService {
	return &AdminServiceImpl{deps: deps.withDefaults()}
}

// Dashboard totals money in and out of the platform and the commission retained
// by completed matches
func (s *AdminServiceImpl) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	accounts, err := s.deps.Accounts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	transactions, err := s.deps.Transactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	matches, err := s.deps.Matches.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	d := &model.Dashboard{
		TotalUsers:       len(accounts),
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalCommission:  decimal.Zero,
	}
	for _, tx := range transactions {
		if tx.Status != model.TxStatusSuccess {
			continue
		}
		switch tx.Type {
		case model.TxDeposit:
			d.TotalDeposits = d.TotalDeposits.Add(tx.Amount)
		case model.TxWithdrawal:
			d.TotalWithdrawals = d.TotalWithdrawals.Add(tx.Amount)
		}
	}
	for _, m := range matches {
		if m.Status != model.MatchCompleted {
			continue
		}
		d.CompletedMatches++
		d.TotalCommission = d.TotalCommission.Add(m.Commission())
	}
	d.NetRevenue = d.TotalDeposits.Sub(d.TotalWithdrawals)
	return d, nil
}

func (s *AdminServiceImpl) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.deps.Accounts.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

func (s *AdminServiceImpl) SetStatus(ctx context.Context, accountID string, status model.AccountStatus) (*model.Account, error) {
	if _, err := model.ParseAccountStatus(string(status)); err != nil {
		return nil, err
	}

	var account *model.Account
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		account, err = set.mustGet(accountID)
		if err != nil {
			return err
		}
		if account.Status == status {
			return nil
		}
		account.Status = status
		set.touch(account)
		return set.save(ctx, s.deps.Accounts)
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info().Str("account_id", accountID).Str("status", status.String()).Msg("account status changed")
	return account, nil
}
