package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"wallet-ledger/internal/config"
	"wallet-ledger/internal/events"
	"wallet-ledger/internal/model"
	mocks "wallet-ledger/mocks/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAdmin = config.AdminConfig{Phone: "01577378394", Password: "AnAmFJAaj@1"}

func TestLogin_InvalidPhone(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	_, err := svc.Login(context.Background(), "017123", "", "")

	assert.ErrorIs(t, err, model.ErrInvalidPhone)
	accounts, _ := f.store.Accounts().ListAll(context.Background())
	assert.Empty(t, accounts)
}

func TestLogin_AdminWrongPassword(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	_, err := svc.Login(context.Background(), testAdmin.Phone, "guess", "")

	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	accounts, _ := f.store.Accounts().ListAll(context.Background())
	assert.Empty(t, accounts, "rejected admin login must not create an account")
}

func TestLogin_AdminIgnoresReferral(t *testing.T) {
	f := newFixture()
	referrer := f.seed(t, "01700000001", "0", "0")
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	session, err := svc.Login(context.Background(), testAdmin.Phone, testAdmin.Password, referrer.ReferralCode)

	require.NoError(t, err)
	assert.True(t, session.IsAdmin)
	assert.True(t, session.Created)
	assert.Empty(t, session.Account.ReferredBy)
	assert.True(t, f.account(t, referrer.ID).Wallet.Bonus.IsZero())
}

func TestLogin_PlayerIsNotAdmin(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	session, err := svc.Login(context.Background(), " 01712345678 ", "anything", "")

	require.NoError(t, err)
	assert.False(t, session.IsAdmin)
	assert.Equal(t, "01712345678", session.Account.Phone)
}

func TestResolveOrCreate_NewAccount(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	account, created, err := svc.ResolveOrCreate(context.Background(), "01712345678", "")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Player_5678", account.Username)
	assert.Regexp(t, `^[0-9A-F]{6}$`, account.ReferralCode)
	assert.Equal(t, model.LevelSilver, account.Level)
	assert.Equal(t, model.StatusActive, account.Status)
	assert.True(t, account.Wallet.Cash.IsZero())
	assert.True(t, account.Wallet.Bonus.IsZero())
	assert.Equal(t, 1, account.Version)
	assert.Equal(t, []string{events.SubjectAccountCreated}, f.pub.published())
}

func TestResolveOrCreate_ExistingPhoneUnchanged(t *testing.T) {
	f := newFixture()
	existing := f.seed(t, "01712345678", "50", "5")
	referrer := f.seed(t, "01700000001", "0", "0")
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	account, created, err := svc.ResolveOrCreate(context.Background(), existing.Phone, referrer.ReferralCode)

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, account.ID)
	assert.Equal(t, "50.00", account.Wallet.Cash.StringFixed(2))
	assert.True(t, f.account(t, referrer.ID).Wallet.Bonus.IsZero(), "existing phone must not trigger referral")
	assert.Empty(t, f.log(t))
	assert.Empty(t, f.pub.published())
}

func TestResolveOrCreate_ReferralCascade(t *testing.T) {
	f := newFixture()
	referrer := f.seed(t, "01700000001", "0", "2")
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	account, created, err := svc.ResolveOrCreate(context.Background(), "01712345678", referrer.ReferralCode)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, referrer.ReferralCode, account.ReferredBy)

	updated := f.account(t, referrer.ID)
	assert.Equal(t, "17.00", updated.Wallet.Bonus.StringFixed(2))
	assert.Equal(t, 1, updated.ReferredCount)
	assert.Equal(t, "15.00", updated.TotalReferralBonus.StringFixed(2))
	assert.Equal(t, 2, updated.Version)

	log := f.log(t)
	require.Len(t, log, 1)
	assert.Equal(t, model.TxReferralBonus, log[0].Type)
	assert.Equal(t, referrer.ID, log[0].AccountID)
	assert.Equal(t, "15.00", log[0].Amount.StringFixed(2))
	assert.Equal(t, model.TxStatusSuccess, log[0].Status)
}

func TestResolveOrCreate_LowercaseReferralCodeMatches(t *testing.T) {
	f := newFixture()
	referrer := f.seed(t, "01700000001", "0", "0")
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	_, _, err := svc.ResolveOrCreate(context.Background(), "01712345678", " "+strings.ToLower(referrer.ReferralCode))

	require.NoError(t, err)
	assert.Equal(t, 1, f.account(t, referrer.ID).ReferredCount)
}

func TestResolveOrCreate_UnknownReferralIgnored(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	account, created, err := svc.ResolveOrCreate(context.Background(), "01712345678", "NOPE00")

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "NOPE00", account.ReferredBy)
	assert.Empty(t, f.log(t))
}

func TestResolveOrCreate_ConcurrentSamePhone(t *testing.T) {
	f := newFixture()
	svc := NewSessionService(f.deps, testEconomy(), testAdmin)

	const workers = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[string]struct{}{}
	)
	barrier := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-barrier
			account, isNew, err := svc.ResolveOrCreate(context.Background(), "01712345678", "")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if isNew {
				created++
			}
			ids[account.ID] = struct{}{}
		}()
	}
	close(barrier)
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)
	accounts, err := f.store.Accounts().ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestResolveOrCreate_SaveFailure(t *testing.T) {
	ctx := context.Background()

	mockAccounts := mocks.NewAccountStore(t)
	mockLog := mocks.NewTransactionLog(t)
	mockDBManager := mocks.NewDBManager(t)

	mockDBManager.On("WithTransaction", ctx, mock.Anything).Return(passthrough)
	mockAccounts.On("ListAll", ctx).Return([]*model.Account{}, nil)
	mockAccounts.On("ReplaceAll", ctx, mock.MatchedBy(func(accounts []*model.Account) bool {
		return len(accounts) == 1 && accounts[0].Phone == "01712345678"
	})).Return(errors.New("disk full"))

	svc := NewSessionService(Dependencies{
		Accounts:     mockAccounts,
		Transactions: mockLog,
		DB:           mockDBManager,
		Logger:       zerolog.Nop(),
	}, testEconomy(), testAdmin)

	_, _, err := svc.ResolveOrCreate(ctx, "01712345678", "")

	assert.ErrorContains(t, err, "disk full")
	mockLog.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
