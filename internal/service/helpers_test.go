package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/ledger"
	"wallet-ledger/internal/model"
	"wallet-ledger/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.subjects...)
}

type fixture struct {
	store *memory.Store
	pub   *recordingPublisher
	deps  Dependencies
}

func newFixture() *fixture {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	return &fixture{
		store: store,
		pub:   pub,
		deps: Dependencies{
			Accounts:     store.Accounts(),
			Transactions: store.Transactions(),
			Matches:      store.Matches(),
			DB:           store,
			Publisher:    pub,
			Logger:       zerolog.Nop(),
			Now:          func() time.Time { return testNow },
		},
	}
}

func testEconomy() config.EconomyConfig {
	return config.EconomyConfig{
		CommissionRate: decimal.RequireFromString("0.06"),
		MinEntry:       decimal.NewFromInt(10),
		MinDeposit:     decimal.NewFromInt(10),
		MinWithdrawal:  decimal.NewFromInt(10),
		MinPhoneLength: 10,
		ReferralReward: decimal.NewFromInt(15),
		BonusLadder:    ledger.DefaultBonusLadder(),
	}
}

// seed stores an account with the given balances directly, bypassing the services
func (f *fixture) seed(t *testing.T, phone, cash, bonus string) *model.Account {
	t.Helper()
	ctx := context.Background()

	accounts, err := f.store.Accounts().ListAll(ctx)
	require.NoError(t, err)

	a := &model.Account{
		ID:           uuid.NewString(),
		Phone:        phone,
		Username:     ledger.DisplayName(phone),
		Wallet:       model.Wallet{Cash: decimal.RequireFromString(cash), Bonus: decimal.RequireFromString(bonus)},
		ReferralCode: ledger.NewReferralCode(func(string) bool { return false }),
		Level:        model.LevelSilver,
		Status:       model.StatusActive,
		Version:      1,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, f.store.Accounts().ReplaceAll(ctx, append(accounts, a)))
	return a
}

func (f *fixture) account(t *testing.T, id string) *model.Account {
	t.Helper()
	accounts, err := f.store.Accounts().ListAll(context.Background())
	require.NoError(t, err)
	for _, a := range accounts {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("account %s not found", id)
	return nil
}

func (f *fixture) log(t *testing.T) []*model.Transaction {
	t.Helper()
	txs, err := f.store.Transactions().ListAll(context.Background())
	require.NoError(t, err)
	return txs
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// passthrough makes a mocked DBManager run fn on the caller's context
func passthrough(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
