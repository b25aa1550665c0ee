package ledger

import (
	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
)

// SplitEntryFee takes the fee from bonus first and the remainder from cash.
// It fails with ErrInsufficientBalance when cash and bonus together do not cover the fee.
func SplitEntryFee(w model.Wallet, fee decimal.Decimal) (bonusPortion, cashPortion decimal.Decimal, err error) {
	if !fee.IsPositive() {
		return decimal.Zero, decimal.Zero, model.ErrInvalidAmount
	}
	if w.Total().LessThan(fee) {
		return decimal.Zero, decimal.Zero, model.ErrInsufficientBalance
	}

	bonusPortion = decimal.Min(w.Bonus, fee)
	cashPortion = fee.Sub(bonusPortion)
	return bonusPortion, cashPortion, nil
}

// PrizePool is entryFee * seats * (1 - commissionRate), floored to cents.
// The sub-cent remainder stays with the platform as commission.
func PrizePool(entryFee decimal.Decimal, seats int, commissionRate decimal.Decimal) decimal.Decimal {
	return entryFee.
		Mul(decimal.NewFromInt(int64(seats))).
		Mul(decimal.NewFromInt(1).Sub(commissionRate)).
		RoundFloor(2)
}
