package service

import (
	"context"
	"fmt"

	"wallet-ledger/internal/model"
)

// OpponentSource fills the seats left after the searching account
type OpponentSource interface {
	Opponents(ctx context.Context, mode model.MatchMode, count int) ([]string, error)
}

// BotOpponents seats simulated players named Bot_1, Bot_2, ...
type BotOpponents struct{}

func (BotOpponents) Opponents(_ context.Context, _ model.MatchMode, count int) ([]string, error) {
	bots := make([]string, count)
	for i := range bots {
		bots[i] = fmt.Sprintf("Bot_%d", i+1)
	}
	return bots, nil
}
