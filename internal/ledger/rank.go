// Package ledger holds the pure wallet and match arithmetic. Nothing in here
// touches storage; services call these functions inside their own commits.
package ledger

import (
	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
)

var (
	silverCeiling    = decimal.NewFromInt(30)
	plutoniumCeiling = decimal.NewFromInt(50)
	goldenCeiling    = decimal.NewFromInt(80)
	hundred          = decimal.NewFromInt(100)
)

// ComputeRank derives the level from the win rate. Each band includes its upper bound.
func ComputeRank(wins, matchesPlayed int) model.Level {
	if matchesPlayed <= 0 {
		return model.LevelSilver
	}

	winRate := decimal.NewFromInt(int64(wins)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(matchesPlayed)))

	switch {
	case winRate.LessThanOrEqual(silverCeiling):
		return model.LevelSilver
	case winRate.LessThanOrEqual(plutoniumCeiling):
		return model.LevelPlutonium
	case winRate.LessThanOrEqual(goldenCeiling):
		return model.LevelGolden
	default:
		return model.LevelSuperMan
	}
}

// RefreshRank recomputes the cached level after wins or matches played changed.
func RefreshRank(a *model.Account) {
	a.Level = ComputeRank(a.Wins, a.MatchesPlayed)
}
