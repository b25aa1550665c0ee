package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"wallet-ledger/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (c *recordingConn) Publish(subj string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subj)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *recordingConn) Drain() error {
	c.drained = true
	return nil
}

func TestNatsPublisher_PublishEncodesJSON(t *testing.T) {
	conn := &recordingConn{}
	pub := NewNatsPublisher(conn)

	tx := &model.Transaction{
		ID:        "tx-1",
		AccountID: "acc-1",
		Type:      model.TxDeposit,
		Amount:    decimal.NewFromInt(600),
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	err := pub.Publish(context.Background(), SubjectTransactionAppended, NewTransactionAppended(tx))
	require.NoError(t, err)

	require.Equal(t, []string{SubjectTransactionAppended}, conn.subjects)
	var got map[string]any
	require.NoError(t, json.Unmarshal(conn.payloads[0], &got))
	assert.Equal(t, "acc-1", got["account_id"])
	assert.Equal(t, "DEPOSIT", got["type"])
	assert.Equal(t, "600.00", got["amount"])
	assert.Equal(t, "0.00", got["bonus_used"])
	assert.NotContains(t, got, "match_id")
}

func TestNatsPublisher_PublishError(t *testing.T) {
	pub := NewNatsPublisher(&recordingConn{err: errors.New("connection closed")})

	err := pub.Publish(context.Background(), SubjectMatchCreated, MatchEvent{MatchID: "m-1"})

	assert.ErrorContains(t, err, "failed to publish wallet.match.created")
}

func TestNatsPublisher_CancelledContext(t *testing.T) {
	conn := &recordingConn{}
	pub := NewNatsPublisher(conn)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pub.Publish(ctx, SubjectMatchCreated, MatchEvent{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, conn.subjects)
}

func TestNatsPublisher_CloseDrains(t *testing.T) {
	conn := &recordingConn{}
	require.NoError(t, NewNatsPublisher(conn).Close())
	assert.True(t, conn.drained)
}

func TestNewMatchEvent(t *testing.T) {
	winner := "acc-1"
	m := &model.Match{
		ID:           "m-1",
		Participants: []string{"acc-1", "Bot_1"},
		EntryFee:     decimal.NewFromInt(10),
		PrizePool:    decimal.RequireFromString("18.8"),
		Mode:         model.Mode2P,
		Status:       model.MatchCompleted,
		WinnerID:     &winner,
	}

	e := NewMatchEvent(m)

	assert.Equal(t, "18.80", e.PrizePool)
	assert.Equal(t, "acc-1", e.WinnerID)
	assert.Equal(t, "2P", e.Mode)
	assert.Equal(t, "COMPLETED", e.Status)
}
