package service

import (
	"context"
	"testing"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullLogging = config.PolicyConfig{LogEntryFees: true, LogWinCredits: true, RefundOnCancel: true}

func TestAudit_Enabled(t *testing.T) {
	deps := newFixture().deps
	assert.False(t, NewAuditService(deps, config.PolicyConfig{}).Enabled())
	assert.False(t, NewAuditService(deps, config.PolicyConfig{LogEntryFees: true}).Enabled())
	assert.True(t, NewAuditService(deps, fullLogging).Enabled())
}

func TestAudit_ReconcileCleanLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	session := NewSessionService(f.deps, testEconomy(), testAdmin)
	wallet := NewWalletService(f.deps, testEconomy(), fullLogging)
	matches := newMatchService(f, fullLogging, 0)

	a, _, err := session.ResolveOrCreate(ctx, "01712345678", "")
	require.NoError(t, err)
	_, _, err = session.ResolveOrCreate(ctx, "01700000001", a.ReferralCode)
	require.NoError(t, err)

	_, err = wallet.Deposit(ctx, a.ID, dec("1000"))
	require.NoError(t, err)
	match, err := matches.FindMatch(ctx, a.ID, model.Mode2P, dec("100"))
	require.NoError(t, err)
	_, err = matches.SettleWin(ctx, match.ID, a.ID)
	require.NoError(t, err)
	_, err = wallet.Withdraw(ctx, a.ID, dec("300"))
	require.NoError(t, err)

	discrepancies, err := NewAuditService(f.deps, fullLogging).Reconcile(ctx)

	require.NoError(t, err)
	assert.Empty(t, discrepancies)
}

func TestAudit_ReconcileDetectsDrift(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a := f.seed(t, "01712345678", "0", "0")
	_, err := NewWalletService(f.deps, testEconomy(), fullLogging).Deposit(ctx, a.ID, dec("100"))
	require.NoError(t, err)

	// balance edited outside the services
	accounts, err := f.store.Accounts().ListAll(ctx)
	require.NoError(t, err)
	accounts[0].Wallet.Cash = dec("250")
	accounts[0].Version++
	require.NoError(t, f.store.Accounts().ReplaceAll(ctx, accounts))

	discrepancies, err := NewAuditService(f.deps, fullLogging).Reconcile(ctx)

	require.NoError(t, err)
	require.Len(t, discrepancies, 1)
	assert.Equal(t, a.ID, discrepancies[0].AccountID)
	assert.Equal(t, "250.00", discrepancies[0].Stored.StringFixed(2))
	assert.Equal(t, "100.00", discrepancies[0].Expected.StringFixed(2))
}
