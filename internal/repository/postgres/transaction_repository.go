package postgres

import (
	"context"
	"errors"
	"fmt"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure implementation satisfies interface at compile time
var _ repository.TransactionLog = (*TransactionRepositoryImpl)(nil)

// TransactionRepositoryImpl is the PostgreSQL implementation of TransactionLog
type TransactionRepositoryImpl struct {
	*TransactionManager
}

func NewTransactionRepository(pool *pgxpool.Pool) repository.TransactionLog {
	return &TransactionRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const transactionColumns = `id, account_id, type, amount, bonus_used, status, match_id, created_at`

// Append inserts a new log entry. A trigger rejects UPDATE and DELETE on the table.
func (r *TransactionRepositoryImpl) Append(ctx context.Context, trans *model.Transaction) (*model.Transaction, error) {
	query := `
        INSERT INTO transactions (id, account_id, type, amount, bonus_used, status, match_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at`

	stored := *trans
	stored.ID = uuid.NewString()
	stored.Status = model.TxStatusSuccess

	var matchID *string
	if stored.MatchID != "" {
		matchID = &stored.MatchID
	}

	err := r.getExecutor(ctx).QueryRow(ctx, query,
		stored.ID, stored.AccountID, stored.Type, stored.Amount, stored.BonusUsed, stored.Status, matchID).
		Scan(&stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, model.ErrDuplicateTransaction
			case pgerrcode.ForeignKeyViolation:
				return nil, model.ErrAccountNotFound
			}
		}
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return &stored, nil
}

// ListByAccount retrieves paginated transactions for an account
func (r *TransactionRepositoryImpl) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*model.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions WHERE account_id = $1
        ORDER BY seq DESC
        LIMIT $2 OFFSET $3`

	return r.query(ctx, query, accountID, limit, offset)
}

// ListAll returns the log in append order
func (r *TransactionRepositoryImpl) ListAll(ctx context.Context) ([]*model.Transaction, error) {
	return r.query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY seq`)
}

func (r *TransactionRepositoryImpl) query(ctx context.Context, query string, args ...any) ([]*model.Transaction, error) {
	rows, err := r.getExecutor(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		trans, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, trans)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	trans := &model.Transaction{}
	var matchID *string
	if err := row.Scan(&trans.ID, &trans.AccountID, &trans.Type, &trans.Amount, &trans.BonusUsed, &trans.Status, &matchID, &trans.CreatedAt); err != nil {
		return nil, err
	}
	if matchID != nil {
		trans.MatchID = *matchID
	}
	return trans, nil
}
