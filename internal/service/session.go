package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/events"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionServiceImpl struct {
	deps    Dependencies
	economy config.EconomyConfig
	admin   config.AdminConfig
}

func NewSessionService(deps Dependencies, economy config.EconomyConfig, admin config.AdminConfig) SessionService {
	return &SessionServiceImpl{
		deps:    deps.withDefaults(),
		economy: economy,
		admin:   admin,
	}
}

func (s *SessionServiceImpl) Login(ctx context.Context, phone, password, referralCode string) (*model.Session, error) {
	phone = strings.TrimSpace(phone)
	if len(phone) < s.economy.MinPhoneLength {
		return nil, fmt.Errorf("%w: at least %d digits required", model.ErrInvalidPhone, s.economy.MinPhoneLength)
	}

	if phone == s.admin.Phone {
		if subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) != 1 {
			s.deps.Logger.Warn().Msg("admin login rejected")
			return nil, model.ErrInvalidCredentials
		}
		account, created, err := s.ResolveOrCreate(ctx, phone, "")
		if err != nil {
			return nil, err
		}
		return &model.Session{Account: account, IsAdmin: true, Created: created}, nil
	}

	account, created, err := s.ResolveOrCreate(ctx, phone, referralCode)
	if err != nil {
		return nil, err
	}
	return &model.Session{Account: account, Created: created}, nil
}

// ResolveOrCreate looks the phone up and creates the account if it is new. The lookup
// and the insert share one commit, so concurrent first logins create one account.
func (s *SessionServiceImpl) ResolveOrCreate(ctx context.Context, phone, referralCode string) (*model.Account, bool, error) {
	referralCode = strings.ToUpper(strings.TrimSpace(referralCode))

	var (
		account *model.Account
		created bool
		box     outbox
	)
	err := s.deps.DB.WithTransaction(ctx, func(ctx context.Context) error {
		set, err := loadAccounts(ctx, s.deps.Accounts, s.deps.Now())
		if err != nil {
			return fmt.Errorf("list accounts: %w", err)
		}

		if existing := set.byPhone(phone); existing != nil {
			account = existing
			return nil
		}

		account = &model.Account{
			ID:       uuid.NewString(),
			Phone:    phone,
			Username: ledger.DisplayName(phone),
			ReferralCode: ledger.NewReferralCode(func(code string) bool {
				return set.byReferralCode(code) != nil
			}),
			ReferredBy:         referralCode,
			TotalReferralBonus: decimal.Zero,
			Level:              model.LevelSilver,
			Status:             model.StatusActive,
		}
		referrer := set.byReferralCode(referralCode)
		set.add(account)
		if referrer != nil {
			ledger.ApplyReferral(referrer, s.economy.ReferralReward)
			set.touch(referrer)
		}

		if err := set.save(ctx, s.deps.Accounts); err != nil {
			return fmt.Errorf("save accounts: %w", err)
		}
		box.add(events.SubjectAccountCreated, events.NewAccountCreated(account))

		if referrer != nil {
			tx, err := s.deps.Transactions.Append(ctx, &model.Transaction{
				AccountID: referrer.ID,
				Type:      model.TxReferralBonus,
				Amount:    s.economy.ReferralReward,
				BonusUsed: decimal.Zero,
			})
			if err != nil {
				return fmt.Errorf("append referral bonus: %w", err)
			}
			box.add(events.SubjectTransactionAppended, events.NewTransactionAppended(tx))

			s.deps.Logger.Info().Str("account_id", account.ID).Str("referrer_id", referrer.ID).
				Str("reward", s.economy.ReferralReward.StringFixed(2)).
				Msg("referral bonus credited")
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.deps.Logger.Info().Str("account_id", account.ID).Str("username", account.Username).Msg("account created")
		box.flush(ctx, s.deps.Publisher, s.deps.Logger)
	}
	return account, created, nil
}
