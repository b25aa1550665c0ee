package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"
)

type AuditServiceImpl struct {
	deps   Dependencies
	policy config.PolicyConfig
}

func NewAuditService(deps Dependencies, policy config.PolicyConfig) AuditService {
	return &AuditServiceImpl{deps: deps.withDefaults(), policy: policy}
}

// Enabled is false unless entry fees and win credits are logged. Without them the
// log cannot explain the cash balance.
func (s *AuditServiceImpl) Enabled() bool {
	return s.policy.LogEntryFees && s.policy.LogWinCredits
}

// Reconcile replays the log against every account inside one commit, so no write
// can land between reading balances and reading the log.
func (s *AuditServiceImpl) Reconcile(ctx context.Context) ([]ledger.Discrepancy, error) {
	var discrepancies []ledger.Discrepancy
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		accounts, err := s.deps.Accounts.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		transactions, err := s.deps.Transactions.ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list transactions: %w", err)
		}

		byAccount := make(map[string][]*model.Transaction, len(accounts))
		for _, tx := range transactions {
			byAccount[tx.AccountID] = append(byAccount[tx.AccountID], tx)
		}
		for _, a := range accounts {
			if d := ledger.Reconcile(a, byAccount[a.ID]); d != nil {
				discrepancies = append(discrepancies, *d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, d := range discrepancies {
		s.deps.Logger.Warn().Str("account_id", d.AccountID).
			Str("stored_cash", d.Stored.StringFixed(2)).
			Str("expected_cash", d.Expected.StringFixed(2)).
			Msg("cash balance does not match transaction log")
	}
	return discrepancies, nil
}
