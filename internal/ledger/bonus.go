package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type BonusTier struct {
	Threshold decimal.Decimal
	Rate      decimal.Decimal
}

// BonusLadder is the deposit incentive table. Order does not matter, the
// highest qualifying threshold always wins.
type BonusLadder []BonusTier

// DefaultBonusLadder gives 2% from 500 and 5% from 1000.
func DefaultBonusLadder() BonusLadder {
	return BonusLadder{
		{Threshold: decimal.NewFromInt(500), Rate: decimal.RequireFromString("0.02")},
		{Threshold: decimal.NewFromInt(1000), Rate: decimal.RequireFromString("0.05")},
	}
}

// Rate returns the rate of the highest tier whose threshold is <= amount, or zero.
func (l BonusLadder) Rate(amount decimal.Decimal) decimal.Decimal {
	tiers := slices.Clone(l)
	slices.SortFunc(tiers, func(a, b BonusTier) int {
		return b.Threshold.Cmp(a.Threshold)
	})

	for _, tier := range tiers {
		if tier.Threshold.LessThanOrEqual(amount) {
			return tier.Rate
		}
	}
	return decimal.Zero
}

// Bonus is the bonus credit earned by a deposit of amount.
func (l BonusLadder) Bonus(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(l.Rate(amount))
}

// UnmarshalText parses "threshold:rate" pairs separated by commas, e.g. "500:0.02,1000:0.05".
func (l *BonusLadder) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*l = BonusLadder{}
		return nil
	}

	var ladder BonusLadder
	for _, pair := range strings.Split(raw, ",") {
		threshold, rate, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return fmt.Errorf("bonus tier %q: expected threshold:rate", pair)
		}

		t, err := decimal.NewFromString(strings.TrimSpace(threshold))
		if err != nil {
			return fmt.Errorf("bonus tier %q threshold: %w", pair, err)
		}
		r, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return fmt.Errorf("bonus tier %q rate: %w", pair, err)
		}
		if t.IsNegative() || r.IsNegative() {
			return fmt.Errorf("bonus tier %q: negative values are not allowed", pair)
		}

		ladder = append(ladder, BonusTier{Threshold: t, Rate: r})
	}

	*l = ladder
	return nil
}

func (l BonusLadder) String() string {
	parts := make([]string, 0, len(l))
	for _, tier := range l {
		parts = append(parts, tier.Threshold.String()+":"+tier.Rate.String())
	}
	return strings.Join(parts, ",")
}
