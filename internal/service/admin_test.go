package service

import (
	"context"
	"errors"
	"testing"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/model"
	mocks "wallet-ledger/mocks/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.seed(t, "01712345678", "0", "0")
	b := f.seed(t, "01700000001", "0", "0")

	wallet := NewWalletService(f.deps, testEconomy(), config.PolicyConfig{})
	matches := newMatchService(f, config.PolicyConfig{}, 0)

	_, err := wallet.Deposit(ctx, a.ID, dec("1000"))
	require.NoError(t, err)
	_, err = wallet.Deposit(ctx, b.ID, dec("500"))
	require.NoError(t, err)
	_, err = wallet.Withdraw(ctx, a.ID, dec("200"))
	require.NoError(t, err)

	settled, err := matches.CreateMatch(ctx, model.Mode2P, dec("10"), []string{a.ID, "Bot_1"})
	require.NoError(t, err)
	_, err = matches.SettleWin(ctx, settled.ID, a.ID)
	require.NoError(t, err)
	_, err = matches.CreateMatch(ctx, model.Mode4P, dec("50"), []string{b.ID, "Bot_1", "Bot_2", "Bot_3"})
	require.NoError(t, err)

	d, err := NewAdminService(f.deps).Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, d.TotalUsers)
	assert.Equal(t, "1500.00", d.TotalDeposits.StringFixed(2))
	assert.Equal(t, "200.00", d.TotalWithdrawals.StringFixed(2))
	assert.Equal(t, "1300.00", d.NetRevenue.StringFixed(2))
	assert.Equal(t, "1.20", d.TotalCommission.StringFixed(2), "only completed matches count")
	assert.Equal(t, 1, d.CompletedMatches)
}

func TestDashboard_Empty(t *testing.T) {
	d, err := NewAdminService(newFixture().deps).Dashboard(context.Background())

	require.NoError(t, err)
	assert.Zero(t, d.TotalUsers)
	assert.True(t, d.NetRevenue.IsZero())
}

func TestDashboard_StoreError(t *testing.T) {
	ctx := context.Background()
	mockAccounts := mocks.NewAccountStore(t)
	mockAccounts.On("ListAll", ctx).Return(nil, errors.New("timeout"))

	svc := NewAdminService(Dependencies{Accounts: mockAccounts, Logger: zerolog.Nop()})
	_, err := svc.Dashboard(ctx)

	assert.ErrorContains(t, err, "list accounts: timeout")
}

func TestSetStatus(t *testing.T) {
	f := newFixture()
	a := f.seed(t, "01712345678", "0", "0")
	svc := NewAdminService(f.deps)
	ctx := context.Background()

	account, err := svc.SetStatus(ctx, a.ID, model.StatusBanned)
	require.NoError(t, err)
	assert.Equal(t, model.StatusBanned, account.Status)
	assert.Equal(t, 2, f.account(t, a.ID).Version)

	_, err = svc.SetStatus(ctx, a.ID, model.StatusBanned)
	require.NoError(t, err)
	assert.Equal(t, 2, f.account(t, a.ID).Version, "unchanged status is not rewritten")

	_, err = svc.SetStatus(ctx, a.ID, model.AccountStatus("SUSPENDED"))
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, "missing", model.StatusActive)
	assert.ErrorIs(t, err, model.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	f := newFixture()
	f.seed(t, "01712345678", "0", "0")
	f.seed(t, "01700000001", "0", "0")

	accounts, err := NewAdminService(f.deps).ListAccounts(context.Background())

	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}
