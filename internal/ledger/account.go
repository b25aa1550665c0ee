package ledger

import (
	"strings"

	"wallet-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const referralCodeLength = 6

// NewReferralCode returns a code for which taken reports false.
func NewReferralCode(taken func(code string) bool) string {
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		code := strings.ToUpper(raw[:referralCodeLength])
		if !taken(code) {
			return code
		}
	}
}

// DisplayName is the default username for a phone number.
func DisplayName(phone string) string {
	if len(phone) > 4 {
		phone = phone[len(phone)-4:]
	}
	return "Player_" + phone
}

// ApplyReferral credits the referrer for bringing in a new account.
func ApplyReferral(referrer *model.Account, reward decimal.Decimal) {
	referrer.Wallet.Bonus = referrer.Wallet.Bonus.Add(reward)
	referrer.ReferredCount++
	referrer.TotalReferralBonus = referrer.TotalReferralBonus.Add(reward)
}

// ExpectedCash replays the cash effect of every transaction in the log.
// It only matches the stored balance when entry fees and win credits are logged.
func ExpectedCash(txs []*model.Transaction) decimal.Decimal {
	cash := decimal.Zero
	for _, tx := range txs {
		if tx.Status != model.TxStatusSuccess {
			continue
		}
		cash = cash.Add(tx.CashEffect())
	}
	return cash
}

type Discrepancy struct {
	AccountID string
	Stored    decimal.Decimal
	Expected  decimal.Decimal
}

// Reconcile compares the cached cash balance with the log. It returns nil when they agree.
func Reconcile(account *model.Account, txs []*model.Transaction) *Discrepancy {
	expected := ExpectedCash(txs)
	if expected.Equal(account.Wallet.Cash) {
		return nil
	}
	return &Discrepancy{
		AccountID: account.ID,
		Stored:    account.Wallet.Cash,
		Expected:  expected,
	}
}
