package postgres

import (
	"context"
	"errors"
	"fmt"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.MatchStore = (*MatchRepositoryImpl)(nil)

// MatchRepositoryImpl is the PostgreSQL implementation of MatchStore
type MatchRepositoryImpl struct {
	*TransactionManager
}

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchStore {
	return &MatchRepositoryImpl{
		TransactionManager: NewTransactionManager(pool),
	}
}

const matchColumns = `id, participants, entry_fee, commission_rate, prize_pool, mode, status, start_time, winner_id, completed_at`

func (r *MatchRepositoryImpl) Insert(ctx context.Context, m *model.Match) error {
	query := `
        INSERT INTO matches (` + matchColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.getExecutor(ctx).Exec(ctx, query,
		m.ID, m.Participants, m.EntryFee, m.CommissionRate, m.PrizePool, m.Mode, m.Status, m.StartTime, m.WinnerID, m.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// Get retrieves a match. Inside a transaction the row is locked for update.
func (r *MatchRepositoryImpl) Get(ctx context.Context, id string) (*model.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	if txFromContext(ctx) != nil {
		query += ` FOR UPDATE`
	}

	m, err := scanMatch(r.getExecutor(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// Update writes the mutable state of a match. Fee, pool and seats never change.
func (r *MatchRepositoryImpl) Update(ctx context.Context, m *model.Match) error {
	query := `
        UPDATE matches
        SET status = $1, winner_id = $2, completed_at = $3
        WHERE id = $4`

	tag, err := r.getExecutor(ctx).Exec(ctx, query, m.Status, m.WinnerID, m.CompletedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMatchNotFound
	}
	return nil
}

func (r *MatchRepositoryImpl) ListAll(ctx context.Context) ([]*model.Match, error) {
	rows, err := r.getExecutor(ctx).Query(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}

func scanMatch(row pgx.Row) (*model.Match, error) {
	m := &model.Match{}
	err := row.Scan(&m.ID, &m.Participants, &m.EntryFee, &m.CommissionRate, &m.PrizePool,
		&m.Mode, &m.Status, &m.StartTime, &m.WinnerID, &m.CompletedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
