package postgres

import (
	"context"
	"errors"
	"fmt"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.AccountStore = (*AccountRepositoryImpl)(nil)

// AccountRepositoryImpl is the PostgreSQL implementation of AccountStore
type AccountRepositoryImpl struct {
	*TransactionManager
}

func NewAccountRepository(pool *pgxpool.Pool) repository.AccountStore {
	return &AccountRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const accountColumns = `id, phone, username, cash, bonus, referral_code, referred_by, referred_count,
	total_referral_bonus, matches_played, wins, losses, level, status, version, created_at, updated_at`

// ListAll returns every account. Inside a transaction the table is locked
// against other writers so the read-modify-write of the set cannot lose updates.
func (r *AccountRepositoryImpl) ListAll(ctx context.Context) ([]*model.Account, error) {
	executor := r.getExecutor(ctx)

	if txFromContext(ctx) != nil {
		if _, err := executor.Exec(ctx, `LOCK TABLE accounts IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return nil, fmt.Errorf("failed to lock accounts: %w", err)
		}
	}

	rows, err := executor.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

// ReplaceAll upserts the set. Rows are only rewritten when the incoming version
// is newer, so untouched accounts cost nothing.
func (r *AccountRepositoryImpl) ReplaceAll(ctx context.Context, accounts []*model.Account) error {
	query := `
        INSERT INTO accounts (` + accountColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        ON CONFLICT (id) DO UPDATE SET
            username = EXCLUDED.username,
            cash = EXCLUDED.cash,
            bonus = EXCLUDED.bonus,
            referred_count = EXCLUDED.referred_count,
            total_referral_bonus = EXCLUDED.total_referral_bonus,
            matches_played = EXCLUDED.matches_played,
            wins = EXCLUDED.wins,
            losses = EXCLUDED.losses,
            level = EXCLUDED.level,
            status = EXCLUDED.status,
            version = EXCLUDED.version,
            updated_at = EXCLUDED.updated_at
        WHERE accounts.version < EXCLUDED.version`

	return r.WithTransaction(ctx, func(ctx context.Context) error {
		executor := r.getExecutor(ctx)
		for _, a := range accounts {
			var referredBy *string
			if a.ReferredBy != "" {
				referredBy = &a.ReferredBy
			}
			_, err := executor.Exec(ctx, query,
				a.ID, a.Phone, a.Username, a.Wallet.Cash, a.Wallet.Bonus, a.ReferralCode, referredBy,
				a.ReferredCount, a.TotalReferralBonus, a.MatchesPlayed, a.Wins, a.Losses,
				a.Level, a.Status, a.Version, a.CreatedAt, a.UpdatedAt)
			if err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) {
					switch pgErr.Code {
					case pgerrcode.UniqueViolation:
						return fmt.Errorf("%w: %s", model.ErrDuplicateAccount, pgErr.ConstraintName)
					// CONSTRAINT wallet_non_negative CHECK (cash >= 0 AND bonus >= 0)
					case pgerrcode.CheckViolation:
						return model.ErrInsufficientBalance
					}
				}
				return fmt.Errorf("failed to upsert account %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	a := &model.Account{}
	var referredBy *string
	err := row.Scan(&a.ID, &a.Phone, &a.Username, &a.Wallet.Cash, &a.Wallet.Bonus, &a.ReferralCode, &referredBy,
		&a.ReferredCount, &a.TotalReferralBonus, &a.MatchesPlayed, &a.Wins, &a.Losses,
		&a.Level, &a.Status, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if referredBy != nil {
		a.ReferredBy = *referredBy
	}
	return a, nil
}
