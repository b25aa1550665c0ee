package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/events"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/lock"
	"wallet-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MatchServiceImpl struct {
	deps      Dependencies
	economy   config.EconomyConfig
	policy    config.PolicyConfig
	wait      time.Duration
	opponents OpponentSource
	searching *lock.KeyedLock
}

func NewMatchService(
	deps Dependencies,
	economy config.EconomyConfig,
	policy config.PolicyConfig,
	matchmaking config.MatchmakingConfig,
	opponents OpponentSource,
	searching *lock.KeyedLock,
) MatchService {
	if opponents == nil {
		opponents = BotOpponents{}
	}
	if searching == nil {
		searching = lock.NewKeyedLock()
	}
	return &MatchServiceImpl{
		deps:      deps.withDefaults(),
		economy:   economy,
		policy:    policy,
		wait:      matchmaking.Wait,
		opponents: opponents,
		searching: searching,
	}
}

// CollectEntryFee takes the fee from bonus first, then cash. Nothing changes when
// the wallet cannot cover it.
func (s *MatchServiceImpl) CollectEntryFee(ctx context.Context, accountID string, fee decimal.Decimal) (*model.EntryFeeReceipt, error) {
	var (
		receipt *model.EntryFeeReceipt
		box     outbox
	)
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		account, err := set.mustGet(accountID)
		if err != nil {
			return err
		}
		if s.policy.BlockBannedPlayers && account.Status == model.StatusBanned {
			return model.ErrAccountBanned
		}

		bonusPortion, cashPortion, err := ledger.SplitEntryFee(account.Wallet, fee)
		if err != nil {
			return err
		}
		account.Wallet.Bonus = account.Wallet.Bonus.Sub(bonusPortion)
		account.Wallet.Cash = account.Wallet.Cash.Sub(cashPortion)
		set.touch(account)

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}

		if s.policy.LogEntryFees {
			tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
				AccountID: accountID,
				Type:      model.TxGameEntry,
				Amount:    fee,
				BonusUsed: bonusPortion,
			})
			if err != nil {
				return fmt.Errorf("append entry fee: %w", err)
			}
			box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))
		}

		receipt = &model.EntryFeeReceipt{
			Account:      account,
			BonusPortion: bonusPortion,
			CashPortion:  cashPortion,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info().Str("account_id", accountID).
		Str("fee", fee.StringFixed(2)).
		Str("bonus_portion", receipt.BonusPortion.StringFixed(2)).
		Str("cash_portion", receipt.CashPortion.StringFixed(2)).
		Msg("entry fee collected")
	box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	return receipt, nil
}

// CreateMatch starts a match. The prize pool is fixed here and never recomputed.
func (s *MatchServiceImpl) CreateMatch(ctx context.Context, mode model.MatchMode, entryFee decimal.Decimal, participants []string) (*model.Match, error) {
	seats := mode.Seats()
	if seats == 0 {
		return nil, fmt.Errorf("%w: unknown mode %q", model.ErrInvalidMatchComposition, mode)
	}
	if len(participants) != seats {
		return nil, fmt.Errorf("%w: mode %s needs %d participants, got %d",
			model.ErrInvalidMatchComposition, mode, seats, len(participants))
	}
	if entryFee.IsNegative() {
		return nil, fmt.Errorf("%w: entry fee must not be negative", model.ErrInvalidAmount)
	}

	match := &model.Match{
		ID:             uuid.NewString(),
		Participants:   slices.Clone(participants),
		EntryFee:       entryFee,
		CommissionRate: s.economy.CommissionRate,
		PrizePool:      ledger.PrizePool(entryFee, seats, s.economy.CommissionRate),
		Mode:           mode,
		Status:         model.MatchPlaying,
		StartTime:      s.deps.Now().UTC(),
	}

	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		return s.deps.Matches.Insert(ctx, match)
	})
	if err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}

	s.deps.Logger.Info().Str("match_id", match.ID).Str("mode", mode.String()).
		Str("entry_fee", entryFee.StringFixed(2)).
		Str("prize_pool", match.PrizePool.StringFixed(2)).
		Msg("match started")
	outbox{{subject: events.SubjectMatchCreated, payload: events.NewMatchEvent(match)}}.
		flush(ctx, s.deps.Publisher, s.deps.Logger)
	return match, nil
}

// SettleWin pays the prize pool to the winner and completes the match
func (s *MatchServiceImpl) SettleWin(ctx context.Context, matchID, winnerID string) (*model.Account, error) {
	var (
		winner *model.Account
		match  *model.Match
		box    outbox
	)
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		match, err = s.deps.Matches.Get(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchPlaying {
			return fmt.Errorf("%w: match %s is %s", model.ErrMatchAlreadySettled, matchID, match.Status)
		}
		if !match.HasParticipant(winnerID) {
			return model.ErrInvalidWinner
		}

		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		winner, err = set.mustGet(winnerID)
		if err != nil {
			return err
		}

		winner.Wallet.Cash = winner.Wallet.Cash.Add(match.PrizePool)
		winner.MatchesPlayed++
		winner.Wins++
		ledger.RefreshRank(winner)
		set.touch(winner)

		if s.policy.RecordLosses {
			for _, id := range match.Participants {
				if id == winnerID {
					continue
				}
				// bots have no account
				if loser := set.byID(id); loser != nil {
					loser.MatchesPlayed++
					loser.Losses++
					ledger.RefreshRank(loser)
					set.touch(loser)
				}
			}
		}

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}

		completedAt := set.now
		match.Status = model.MatchCompleted
		match.WinnerID = &winnerID
		match.CompletedAt = &completedAt
		if err := s.deps.Matches.Update(ctx, match); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		box.add(events.SubjectMatchSettled, events.NewMatchEvent(match))

		if s.policy.LogWinCredits {
			tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
				AccountID: winnerID,
				Type:      model.TxGameWin,
				Amount:    match.PrizePool,
				BonusUsed: decimal.Zero,
				MatchID:   matchID,
			})
			if err != nil {
				return fmt.Errorf("append win credit: %w", err)
			}
			box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.Logger.Info().Str("match_id", matchID).Str("winner_id", winnerID).
		Str("prize_pool", match.PrizePool.StringFixed(2)).
		Str("level", winner.Level.String()).
		Msg("match settled")
	box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	return winner, nil
}

// FindMatch runs one matchmaking search for accountID. The fee is collected up
// front. If ctx ends before opponents are seated the fee is refunded or forfeited
// depending on policy.
func (s *MatchServiceImpl) FindMatch(ctx context.Context, accountID string, mode model.MatchMode, fee decimal.Decimal) (*model.Match, error) {
	seats := mode.Seats()
	if seats == 0 {
		return nil, fmt.Errorf("%w: unknown mode %q", model.ErrInvalidMatchComposition, mode)
	}
	if fee.LessThan(s.economy.MinEntry) {
		return nil, fmt.Errorf("%w: minimum entry fee is %s", model.ErrInvalidAmount, s.economy.MinEntry.StringFixed(2))
	}

	if !s.searching.TryLock(accountID) {
		return nil, model.ErrMatchmakingInProgress
	}
	defer s.searching.Unlock(accountID)

	receipt, err := s.CollectEntryFee(ctx, accountID, fee)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(s.wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.abandonSearch(ctx, accountID, fee, receipt, "cancelled")
		return nil, fmt.Errorf("matchmaking cancelled: %w", ctx.Err())
	case <-timer.C:
	}

	opponents, err := s.opponents.Opponents(ctx, mode, seats-1)
	if err != nil {
		s.abandonSearch(ctx, accountID, fee, receipt, "no opponents")
		return nil, fmt.Errorf("find opponents: %w", err)
	}

	match, err := s.CreateMatch(ctx, mode, fee, append([]string{accountID}, opponents...))
	if err != nil {
		s.abandonSearch(ctx, accountID, fee, receipt, "match not created")
		return nil, err
	}
	return match, nil
}

// abandonSearch returns or forfeits a fee whose search ended without a match
func (s *MatchServiceImpl) abandonSearch(ctx context.Context, accountID string, fee decimal.Decimal, receipt *model.EntryFeeReceipt, reason string) {
	if !s.policy.RefundOnCancel {
		s.deps.Logger.Info().Str("account_id", accountID).Str("fee", fee.StringFixed(2)).
			Str("reason", reason).Msg("entry fee forfeited")
		return
	}

	if err := s.refund(context.WithoutCancel(ctx), accountID, fee, receipt); err != nil {
		s.deps.Logger.Error().Err(err).Str("account_id", accountID).Str("fee", fee.StringFixed(2)).
			Msg("failed to refund entry fee")
	}
}

// refund puts each portion of the fee back where it came from
func (s *MatchServiceImpl) refund(ctx context.Context, accountID string, fee decimal.Decimal, receipt *model.EntryFeeReceipt) error {
	var box outbox
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}
		account, err := set.mustGet(accountID)
		if err != nil {
			return err
		}

		account.Wallet.Bonus = account.Wallet.Bonus.Add(receipt.BonusPortion)
		account.Wallet.Cash = account.Wallet.Cash.Add(receipt.CashPortion)
		set.touch(account)

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}

		tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TxRefund,
			Amount:    fee,
			BonusUsed: receipt.BonusPortion,
		})
		if err != nil {
			return fmt.Errorf("append refund: %w", err)
		}
		box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))
		return nil
	})
	if err != nil {
		return err
	}

	s.deps.Logger.Info().Str("account_id", accountID).Str("fee", fee.StringFixed(2)).Msg("entry fee refunded")
	box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	return nil
}

func (s *MatchServiceImpl) GetMatch(ctx context.Context, matchID string) (*model.Match, error) {
	match, err := s.deps.Matches.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, model.ErrMatchNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return match, nil
}
